package v1

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/king120kw/research-weaver-sub001/store"
)

// CreateConversationRequest is the wire request for a new conversation.
type CreateConversationRequest struct {
	Title string `json:"title"`
}

// ConversationResponse is the wire shape of a conversation.
type ConversationResponse struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	CreatedTs int64  `json:"createdTs"`
	UpdatedTs int64  `json:"updatedTs"`
}

// MessageResponse is the wire shape of a persisted message.
type MessageResponse struct {
	UID                string `json:"uid"`
	Role               string `json:"role"`
	Content            string `json:"content"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
	CreatedTs          int64  `json:"createdTs"`
}

// CreateConversation handles POST /api/v1/conversations.
func (s *APIV1Service) CreateConversation(c echo.Context) error {
	req := &CreateConversationRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	now := time.Now().Unix()
	conversation, err := s.Store.CreateConversation(c.Request().Context(), &store.Conversation{
		UID:       shortuuid.New(),
		Title:     req.Title,
		CreatedTs: now,
		UpdatedTs: now,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create conversation")
	}

	return c.JSON(http.StatusOK, &ConversationResponse{
		UID:       conversation.UID,
		Title:     conversation.Title,
		CreatedTs: conversation.CreatedTs,
		UpdatedTs: conversation.UpdatedTs,
	})
}

// ListConversationMessages handles GET /api/v1/conversations/:uid/messages.
// Messages come back in ascending creation order.
func (s *APIV1Service) ListConversationMessages(c echo.Context) error {
	uid := c.Param("uid")
	ctx := c.Request().Context()

	conversations, err := s.Store.ListConversations(ctx, &store.FindConversation{UID: &uid})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read conversation")
	}
	if len(conversations) == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "conversation not found")
	}

	messages, err := s.Store.ListMessages(ctx, &store.FindMessage{ConversationID: &conversations[0].ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to read messages")
	}

	list := make([]*MessageResponse, 0, len(messages))
	for _, m := range messages {
		list = append(list, &MessageResponse{
			UID:                m.UID,
			Role:               string(m.Role),
			Content:            m.Content,
			VerificationStatus: string(m.VerificationStatus),
			CreatedTs:          m.CreatedTs,
		})
	}
	return c.JSON(http.StatusOK, list)
}
