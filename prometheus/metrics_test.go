package prometheus

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusClass(t *testing.T) {
	tests := map[int]string{
		0:   "network",
		200: "2xx",
		204: "2xx",
		302: "3xx",
		401: "4xx",
		422: "4xx",
		500: "5xx",
		503: "5xx",
	}
	for status, want := range tests {
		assert.Equal(t, want, StatusClass(status), "status %d", status)
	}
}

func TestInitMetrics_ExposesPrefixedMetrics(t *testing.T) {
	InitMetrics("test_console")

	RecordAPICall("category", http.MethodGet, 200, 10*time.Millisecond)
	RecordListQuery("category", "superseded")
	RecordMutation("category.create", "success")
	RecordSessionDecision("redirect")

	families, err := Registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["test_console_list_queries_total"])
	assert.True(t, names["test_console_mutations_total"])

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "test_console_api_calls_total"))
	assert.True(t, strings.Contains(body, "test_console_session_decisions_total"))
}
