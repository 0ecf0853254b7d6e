package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/king120kw/research-weaver-sub001/plugin/llm"
	"github.com/king120kw/research-weaver-sub001/server/service/chat"
	"github.com/king120kw/research-weaver-sub001/store"
)

type stubHistoryStore struct {
	conversations []*store.Conversation
	createErr     error
}

func (s *stubHistoryStore) ListConversations(_ context.Context, find *store.FindConversation) ([]*store.Conversation, error) {
	if find.UID == nil {
		return s.conversations, nil
	}
	var list []*store.Conversation
	for _, c := range s.conversations {
		if c.UID == *find.UID {
			list = append(list, c)
		}
	}
	return list, nil
}

func (s *stubHistoryStore) UpdateConversation(_ context.Context, update *store.UpdateConversation) (*store.Conversation, error) {
	return &store.Conversation{ID: update.ID}, nil
}

func (s *stubHistoryStore) ListMessages(_ context.Context, _ *store.FindMessage) ([]*store.Message, error) {
	return nil, nil
}

func (s *stubHistoryStore) CreateMessage(_ context.Context, create *store.Message) (*store.Message, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return create, nil
}

type stubGateway struct {
	text string
	err  error
}

func (s *stubGateway) Complete(_ context.Context, _ []llm.Message) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func postChat(t *testing.T, gateway *stubGateway, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	service := &APIV1Service{
		ChatService: chat.NewService(&stubHistoryStore{}, gateway),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return rec, service.Chat(e.NewContext(req, rec))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *ChatErrorResponse {
	t.Helper()
	resp := &ChatErrorResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), resp))
	return resp
}

func TestChatHandlerSuccess(t *testing.T) {
	rec, err := postChat(t, &stubGateway{text: "an answer"}, `{"message": "hello"}`)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := &ChatResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), resp))
	assert.Equal(t, "an answer", resp.Response)
	assert.Equal(t, "verified", resp.VerificationStatus)
	assert.Empty(t, resp.StorageError)
}

func TestChatHandlerEmptyMessage(t *testing.T) {
	rec, err := postChat(t, &stubGateway{text: "unused"}, `{"message": "  "}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeError(t, rec)
	assert.NotEmpty(t, resp.Error)
	assert.False(t, resp.RateLimited)
	assert.False(t, resp.PaymentRequired)
}

func TestChatHandlerRateLimited(t *testing.T) {
	gateway := &stubGateway{err: &llm.GatewayError{Kind: llm.KindRateLimited, StatusCode: 429}}
	rec, err := postChat(t, gateway, `{"message": "hello"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	resp := decodeError(t, rec)
	assert.True(t, resp.RateLimited)
	assert.False(t, resp.PaymentRequired)
	assert.Empty(t, resp.Fallback)
}

func TestChatHandlerPaymentRequired(t *testing.T) {
	gateway := &stubGateway{err: &llm.GatewayError{Kind: llm.KindPaymentRequired, StatusCode: 402}}
	rec, err := postChat(t, gateway, `{"message": "hello"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	resp := decodeError(t, rec)
	assert.True(t, resp.PaymentRequired)
	assert.False(t, resp.RateLimited)
}

func TestChatHandlerUpstreamFailure(t *testing.T) {
	gateway := &stubGateway{err: &llm.GatewayError{Kind: llm.KindUpstream, StatusCode: 500}}
	rec, err := postChat(t, gateway, `{"message": "hello"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, chat.FallbackMessage, resp.Fallback)
	assert.False(t, resp.RateLimited)
	assert.False(t, resp.PaymentRequired)
}

func TestChatHandlerConfigurationFailure(t *testing.T) {
	gateway := &stubGateway{err: &llm.GatewayError{Kind: llm.KindConfiguration}}
	rec, err := postChat(t, gateway, `{"message": "hello"}`)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, chat.FallbackMessage, resp.Fallback)
}

func TestChatHandlerStorageFailureKeepsAnswer(t *testing.T) {
	service := &APIV1Service{
		ChatService: chat.NewService(&stubHistoryStore{
			conversations: []*store.Conversation{{ID: 1, UID: "conv-1"}},
			createErr:     assert.AnError,
		}, &stubGateway{text: "the answer"}),
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat",
		strings.NewReader(`{"message": "hello", "conversationId": "conv-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, service.Chat(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := &ChatResponse{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), resp))
	assert.Equal(t, "the answer", resp.Response)
	assert.NotEmpty(t, resp.StorageError)
}
