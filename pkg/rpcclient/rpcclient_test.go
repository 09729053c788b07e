package rpcclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	c := New("http://localhost:8080")
	assert.NotNil(t, c)
	assert.Equal(t, "http://localhost:8080", c.baseURL)
}

func TestWithToken(t *testing.T) {
	c := New("http://localhost:8080").WithToken("test-token")
	assert.Equal(t, "test-token", c.token)
}

func TestDoWithSuccess(t *testing.T) {
	type response struct {
		Message string `json:"message"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode(response{Message: "ok"})
	}))
	defer server.Close()

	c := New(server.URL)
	var resp response
	err := c.Do(context.Background(), "/test", map[string]string{"k": "v"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Message)
}

func TestDoWithAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(APIError{Code: "UNAVAILABLE", Message: "try again"})
	}))
	defer server.Close()

	c := New(server.URL)
	err := c.Do(context.Background(), "/test", nil, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, "UNAVAILABLE", apiErr.Code)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestDoWithAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
	}))
	defer server.Close()

	c := New(server.URL).WithToken("test-token")
	err := c.Do(context.Background(), "/test", nil, nil)
	require.NoError(t, err)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(server.URL)
	err := c.Do(ctx, "/test", nil, nil)
	assert.Error(t, err)
}
