package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGatewayStub(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newStubClient(srv *httptest.Server) *Client {
	return NewClient(&Config{
		BaseURL: srv.URL + "/v1",
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
	})
}

const completionBody = `{
	"id": "chatcmpl-1",
	"object": "chat.completion",
	"model": "gpt-4o-mini",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "hello there"}, "finish_reason": "stop"}]
}`

func errorBody(message string) string {
	return fmt.Sprintf(`{"error": {"message": %q, "type": "invalid_request_error"}}`, message)
}

func TestCompleteSuccess(t *testing.T) {
	srv, _ := newGatewayStub(t, http.StatusOK, completionBody)
	client := newStubClient(srv)

	text, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}

func TestCompleteMissingAPIKey(t *testing.T) {
	srv, hits := newGatewayStub(t, http.StatusOK, completionBody)
	client := NewClient(&Config{BaseURL: srv.URL + "/v1", APIKey: ""})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	gwErr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, KindConfiguration, gwErr.Kind)
	assert.Zero(t, *hits, "a missing credential must fail before any network call")
}

func TestCompleteClassification(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		wantKind Kind
	}{
		{"rate limited", http.StatusTooManyRequests, KindRateLimited},
		{"payment required", http.StatusPaymentRequired, KindPaymentRequired},
		{"server error", http.StatusInternalServerError, KindUpstream},
		{"bad gateway", http.StatusBadGateway, KindUpstream},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newGatewayStub(t, tt.status, errorBody("upstream says no"))
			client := newStubClient(srv)

			_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
			require.Error(t, err)
			gwErr, ok := AsGatewayError(err)
			require.True(t, ok, "got %T: %v", err, err)
			assert.Equal(t, tt.wantKind, gwErr.Kind)
			assert.Equal(t, tt.status, gwErr.StatusCode)
		})
	}
}

func TestCompleteConfiguredStatusCodes(t *testing.T) {
	// A gateway that signals throttling with 503 instead of 429.
	srv, _ := newGatewayStub(t, http.StatusServiceUnavailable, errorBody("throttled"))
	client := NewClient(&Config{
		BaseURL:         srv.URL + "/v1",
		APIKey:          "test-key",
		RateLimitStatus: http.StatusServiceUnavailable,
	})

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	gwErr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, KindRateLimited, gwErr.Kind)
}

func TestCompleteEmptyChoices(t *testing.T) {
	srv, _ := newGatewayStub(t, http.StatusOK, `{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`)
	client := newStubClient(srv)

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	gwErr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, KindUpstream, gwErr.Kind)
}

func TestCompleteEmptyContent(t *testing.T) {
	body := `{
		"id": "chatcmpl-1",
		"object": "chat.completion",
		"choices": [{"index": 0, "message": {"role": "assistant", "content": ""}, "finish_reason": "stop"}]
	}`
	srv, _ := newGatewayStub(t, http.StatusOK, body)
	client := newStubClient(srv)

	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})
	require.Error(t, err)
	gwErr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, KindUpstream, gwErr.Kind)
}
