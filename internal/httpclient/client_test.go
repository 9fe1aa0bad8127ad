package httpclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerly/grocery-sync-server/internal/httpclient"
)

// newTestServer creates a new test server with keep-alives disabled.
// This prevents flaky tests when running in parallel, as closing a server
// with keep-alives enabled can affect other tests sharing the HTTP transport.
func newTestServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	server.Config.SetKeepAlivesEnabled(false)
	return server
}

func TestNewDefaultClient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		timeout time.Duration
	}{
		{
			name:    "create client with custom timeout",
			timeout: 5 * time.Second,
		},
		{
			name:    "create client with zero timeout uses default",
			timeout: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := httpclient.NewDefaultClient(tt.timeout)

			require.NotNil(t, client, "client should not be nil")
		})
	}
}

func TestDefaultClient_Get(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		statusCode   int
		responseBody string
		headers      map[string]string
		wantErr      bool
		wantBody     string
	}{
		{
			name:         "successful JSON response",
			statusCode:   http.StatusOK,
			responseBody: `{"message": "success"}`,
			wantBody:     `{"message": "success"}`,
		},
		{
			name:         "custom headers are forwarded",
			statusCode:   http.StatusOK,
			responseBody: `{}`,
			headers:      map[string]string{"Authorization": "Bearer token-123"},
			wantBody:     `{}`,
		},
		{
			name:       "server error returns HTTPError",
			statusCode: http.StatusInternalServerError,
			wantErr:    true,
		},
		{
			name:       "unauthorized returns HTTPError",
			statusCode: http.StatusUnauthorized,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotAuth string
			server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			client := httpclient.NewDefaultClient(0)
			body, err := client.Get(context.Background(), server.URL, tt.headers)

			if tt.wantErr {
				require.Error(t, err)
				var httpErr *httpclient.HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.statusCode, httpErr.StatusCode)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantBody, string(body))
			if want, ok := tt.headers["Authorization"]; ok {
				assert.Equal(t, want, gotAuth)
			}
		})
	}
}

func TestDefaultClient_PostJSON(t *testing.T) {
	t.Parallel()

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "value", payload["key"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := httpclient.NewDefaultClient(0)
	body, err := client.PostJSON(context.Background(), server.URL, map[string]string{"key": "value"}, nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(body))
}

func TestDefaultClient_PostForm(t *testing.T) {
	t.Parallel()

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "user@example.com", r.Form.Get("email"))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := httpclient.NewDefaultClient(0)
	body, err := client.PostForm(context.Background(), server.URL, "email=user%40example.com", nil)

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok": true}`, string(body))
}

func TestDefaultClient_TransportError(t *testing.T) {
	t.Parallel()

	// Server is closed before the request is made, so the connection fails.
	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	url := server.URL
	server.Close()

	client := httpclient.NewDefaultClient(time.Second)
	_, err := client.Get(context.Background(), url, nil)

	require.Error(t, err)
	var httpErr *httpclient.HTTPError
	assert.False(t, errors.As(err, &httpErr), "connection failures should not be HTTPErrors")
}

func TestDefaultClient_ResponseSizeLimit(t *testing.T) {
	t.Parallel()

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "20971520") // 20MB
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := httpclient.NewDefaultClient(0)
	_, err := client.Get(context.Background(), server.URL, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum allowed size")
}
