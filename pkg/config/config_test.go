package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("console")
	require.NoError(t, err)

	assert.Equal(t, "console", cfg.ServiceName)
	assert.Equal(t, "http://localhost:4000/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 10, cfg.API.PageSize)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, SessionStoreFile, cfg.Session.Store)
	assert.Equal(t, "console", cfg.Metrics.Prefix)
	assert.True(t, cfg.Sandbox.Seed)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.sneakerx.test")
	t.Setenv("API_PAGE_SIZE", "25")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_STORE", SessionStoreMemory)
	t.Setenv("SANDBOX_SEED", "false")

	cfg, err := Load("console")
	require.NoError(t, err)

	assert.Equal(t, "https://api.sneakerx.test", cfg.API.BaseURL)
	assert.Equal(t, 25, cfg.API.PageSize)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.False(t, cfg.Sandbox.Seed)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"empty base url", "API_BASE_URL", ""},
		{"zero page size", "API_PAGE_SIZE", "0"},
		{"unknown session store", "SESSION_STORE", "redis"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			_, err := Load("console")
			assert.Error(t, err)
		})
	}
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", c.GetDSN())
}
