package apiclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/karanch577/sneakerx-admin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		message  string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"success":false,"message":"Please login"}`, ErrAuth, "Please login"},
		{"bad request", http.StatusBadRequest, `{"success":false,"message":"Category already exists"}`, ErrValidation, "Category already exists"},
		{"not found", http.StatusNotFound, `{"message":"Category not found"}`, ErrValidation, "Category not found"},
		{"server", http.StatusInternalServerError, `oops`, ErrServer, GenericMessage},
		{"success false on 200", http.StatusOK, `{"success":false,"message":"Coupon expired"}`, ErrValidation, "Coupon expired"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := stubServer(t, tt.status, tt.body)
			_, err := NewAPI(c).Categories.Create(context.Background(), model.CategoryInput{Name: "Sneakers"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)
			assert.Equal(t, tt.message, Message(err))

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, "POST /category/create", apiErr.Op)
		})
	}
}

func TestNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := New(addr, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = NewAPI(c).Coupons.List(context.Background(), 1, 10, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.NotErrorIs(t, err, ErrServer)
	assert.Equal(t, GenericMessage, Message(err))
}

func TestEmptySuccessBody(t *testing.T) {
	c := stubServer(t, http.StatusNoContent, "")
	deleted, err := NewAPI(c).Categories.Remove(context.Background(), "cat-1")
	require.NoError(t, err)
	assert.True(t, deleted.Success)
	assert.Empty(t, deleted.Message)

	c = stubServer(t, http.StatusOK, "  \n")
	_, err = NewAPI(c).Coupons.Remove(context.Background(), "cp-1")
	assert.NoError(t, err)
}

func TestMessage_NonAPIError(t *testing.T) {
	assert.Equal(t, GenericMessage, Message(errors.New("boom")))
	assert.Equal(t, GenericMessage, Message(nil))
}

func TestUnsupportedOperations(t *testing.T) {
	c := stubServer(t, http.StatusOK, `{}`)
	api := NewAPI(c)

	_, err := api.Categories.Get(context.Background(), "id")
	assert.ErrorIs(t, err, ErrUnsupported)
	_, err = api.Orders.Create(context.Background(), struct{}{})
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestNew_InvalidBaseURL(t *testing.T) {
	_, err := New("not a url")
	assert.Error(t, err)
}

func TestList_RequestShape(t *testing.T) {
	seen := make(chan *url.URL, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.URL
		_, _ = w.Write([]byte(`{"success":true,"products":[{"_id":"p1","name":"Air Max"}],"currentPage":2,"totalPage":5}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/api/v1/")
	require.NoError(t, err)

	page, err := NewAPI(c).Products.List(context.Background(), 2, 10, map[string]string{ProductCategoryFilter: "cat-1", "empty": ""})
	require.NoError(t, err)

	got := <-seen
	assert.Equal(t, "/api/v1/product/list", got.Path)
	assert.Equal(t, "2", got.Query().Get("page"))
	assert.Equal(t, "10", got.Query().Get("limit"))
	assert.Equal(t, "cat-1", got.Query().Get("categoryId"))
	assert.False(t, got.Query().Has("empty"))

	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 5, page.TotalPages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Air Max", page.Items[0].Name)
}

func TestList_MissingItemsIsEmpty(t *testing.T) {
	c := stubServer(t, http.StatusOK, `{"success":true,"currentPage":1,"totalPage":0}`)
	page, err := NewAPI(c).Users.List(context.Background(), 1, 10, nil)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalPages)
}
