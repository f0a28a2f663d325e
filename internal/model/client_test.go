package model

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/inboxpilot-ai/inboxpilot/internal/errors"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c := NewClient(&ClientConfig{
		Endpoint: url,
		APIToken: "tok-123",
		Timeout:  5 * time.Second,
	})
	t.Cleanup(c.client.CloseIdleConnections)
	return c
}

func invokeRequest() *Request {
	return &Request{
		Messages:  []Message{{Role: "user", Content: "Classify this email."}},
		MaxTokens: 1000,
	}
}

func TestInvokeParsesResponse(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotVersion, _ = body["anthropic_version"].(string)

		json.NewEncoder(w).Encode(map[string]any{
			"content":     []map[string]any{{"type": "text", "text": "skip"}},
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 10, "output_tokens": 2},
		})
	}))
	defer srv.Close()

	resp, err := newTestClient(t, srv.URL).Invoke(context.Background(), "test-model", invokeRequest())
	require.NoError(t, err)

	assert.Equal(t, "/model/test-model/invoke", gotPath)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "bedrock-2023-05-31", gotVersion)
	assert.Equal(t, "skip", resp.TextContent())
	assert.Equal(t, 10, resp.Usage.InputTokens)
	// A response without a model field is attributed to the requested one.
	assert.Equal(t, "test-model", resp.Model)
}

func TestInvokeClassifiesStatusCodes(t *testing.T) {
	tests := []struct {
		status    int
		code      string
		retryable bool
		denied    bool
	}{
		{http.StatusForbidden, apperrors.CodeModelAccessDenied, false, true},
		{http.StatusUnauthorized, apperrors.CodeModelAccessDenied, false, true},
		{http.StatusTooManyRequests, apperrors.CodeModelThrottled, true, false},
		{http.StatusRequestTimeout, apperrors.CodeModelTimeout, true, false},
		{http.StatusInternalServerError, apperrors.CodeModelUnavailable, true, false},
		{http.StatusBadRequest, apperrors.CodeInvalidInput, false, false},
	}

	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "nope", tc.status)
			}))
			defer srv.Close()

			_, err := newTestClient(t, srv.URL).Invoke(context.Background(), "test-model", invokeRequest())
			require.Error(t, err)

			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tc.code, appErr.Code)
			assert.Equal(t, tc.retryable, apperrors.IsRetryable(err))
			assert.Equal(t, tc.denied, apperrors.IsAccessDenied(err))
		})
	}
}

func TestInvokeEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Invoke(context.Background(), "test-model", invokeRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeModelEmptyResponse, appErr.Code)
}

func TestInvokeMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv.URL).Invoke(context.Background(), "test-model", invokeRequest())
	require.Error(t, err)
	assert.False(t, apperrors.IsRetryable(err))
}

func TestInvokeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := newTestClient(t, srv.URL).Invoke(context.Background(), "test-model", invokeRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))
}
