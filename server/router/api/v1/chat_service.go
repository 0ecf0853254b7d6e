package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	errs "github.com/king120kw/research-weaver-sub001/server/internal/errors"
	"github.com/king120kw/research-weaver-sub001/server/service/chat"
)

// ChatRequest is the wire request for one conversation turn.
type ChatRequest struct {
	Message        string `json:"message"`
	ConversationID string `json:"conversationId,omitempty"`
	DepthLevel     int32  `json:"depthLevel,omitempty"`
}

// ChatResponse is the wire response for a successful turn. StorageError is
// populated when the answer was generated but could not be persisted; the
// answer is still delivered.
type ChatResponse struct {
	Response           string `json:"response"`
	VerificationStatus string `json:"verification_status"`
	StorageError       string `json:"storage_error,omitempty"`
}

// ChatErrorResponse is the wire shape of every failed turn. Exactly one of
// RateLimited / PaymentRequired / Fallback distinguishes the branch.
type ChatErrorResponse struct {
	Error           string `json:"error"`
	RateLimited     bool   `json:"rateLimited,omitempty"`
	PaymentRequired bool   `json:"paymentRequired,omitempty"`
	Fallback        string `json:"fallback,omitempty"`
}

// Chat handles POST /api/v1/chat.
func (s *APIV1Service) Chat(c echo.Context) error {
	req := &ChatRequest{}
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, &ChatErrorResponse{Error: "malformed request body"})
	}

	result, err := s.ChatService.Chat(c.Request().Context(), &chat.Request{
		Message:         req.Message,
		ConversationUID: req.ConversationID,
		DepthLevel:      req.DepthLevel,
	})
	if err != nil {
		return s.chatError(c, err)
	}

	resp := &ChatResponse{
		Response:           result.Response,
		VerificationStatus: "verified",
	}
	if result.StorageErr != nil {
		resp.StorageError = "the response could not be saved to the conversation"
	}
	return c.JSON(http.StatusOK, resp)
}

// chatError maps the service error taxonomy onto the wire contract.
func (s *APIV1Service) chatError(c echo.Context, err error) error {
	switch errs.GetCodeFromError(err, errs.ErrCodeUpstream) {
	case errs.ErrCodeInvalidArgument:
		return c.JSON(http.StatusBadRequest, &ChatErrorResponse{Error: err.Error()})
	case errs.ErrCodeRateLimited:
		return c.JSON(http.StatusTooManyRequests, &ChatErrorResponse{
			Error:       "the assistant is receiving too many requests, try again later",
			RateLimited: true,
		})
	case errs.ErrCodePaymentRequired:
		return c.JSON(http.StatusPaymentRequired, &ChatErrorResponse{
			Error:           "the assistant subscription requires attention",
			PaymentRequired: true,
		})
	default:
		// CONFIGURATION_ERROR, UPSTREAM_ERROR and STORAGE_ERROR collapse to a
		// generic failure with a safe display message; details stay in logs.
		return c.JSON(http.StatusBadGateway, &ChatErrorResponse{
			Error:    "the assistant could not process the request",
			Fallback: chat.FallbackMessage,
		})
	}
}

// localRateLimit enforces the per-client request ceiling on the chat route.
// This is local throttling; an upstream 429 is classified by the gateway
// client and reaches the same wire shape through chatError.
func (s *APIV1Service) localRateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.rateLimiter.Allow(c.RealIP()) {
			return c.JSON(http.StatusTooManyRequests, &ChatErrorResponse{
				Error:       "too many requests, slow down",
				RateLimited: true,
			})
		}
		return next(c)
	}
}
