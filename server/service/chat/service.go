package chat

import (
	"context"
	"log/slog"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/king120kw/research-weaver-sub001/plugin/llm"
	errs "github.com/king120kw/research-weaver-sub001/server/internal/errors"
	"github.com/king120kw/research-weaver-sub001/server/internal/observability"
	"github.com/king120kw/research-weaver-sub001/store"
)

// emptyMetadata is the default empty JSON object for message metadata.
const emptyMetadata = "{}"

// FallbackMessage is the safe display text for unclassified failures. It must
// never leak upstream details.
const FallbackMessage = "The research assistant is temporarily unavailable. Please try again."

// state tracks the pipeline through a single chat invocation.
type state int

const (
	stateIdle state = iota
	stateHistoryLoaded
	statePromptReady
	stateGatewayPending
	statePersisted
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateHistoryLoaded:
		return "history_loaded"
	case statePromptReady:
		return "prompt_ready"
	case stateGatewayPending:
		return "gateway_pending"
	case statePersisted:
		return "persisted"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// HistoryStore is the persistence surface the orchestrator consumes.
type HistoryStore interface {
	ListConversations(ctx context.Context, find *store.FindConversation) ([]*store.Conversation, error)
	UpdateConversation(ctx context.Context, update *store.UpdateConversation) (*store.Conversation, error)
	ListMessages(ctx context.Context, find *store.FindMessage) ([]*store.Message, error)
	CreateMessage(ctx context.Context, create *store.Message) (*store.Message, error)
}

// Request is one chat invocation.
type Request struct {
	Message string
	// ConversationUID groups the exchange into a stored conversation.
	// Empty means stateless single-turn mode: no history, no persistence.
	ConversationUID string
	DepthLevel      int32
}

// Result is a successful chat outcome. StorageErr is set when the gateway
// call succeeded but persistence failed afterwards; the answer is still
// returned and the storage failure is reported separately, never swallowed.
type Result struct {
	Response           string
	VerificationStatus store.VerificationStatus
	StorageErr         error
}

// Service is the conversation orchestrator. Each invocation owns its own
// history snapshot, read once; there is no shared mutable state across calls.
type Service struct {
	store   HistoryStore
	gateway llm.Completer
	now     func() time.Time
}

// NewService creates the orchestrator with its collaborators injected, so the
// pipeline is testable with fakes for the gateway and the history store.
func NewService(historyStore HistoryStore, gateway llm.Completer) *Service {
	return &Service{
		store:   historyStore,
		gateway: gateway,
		now:     time.Now,
	}
}

// Chat runs the pipeline: history read, depth policy resolution, prompt
// assembly, gateway call, persistence. It performs no retries anywhere.
func (s *Service) Chat(ctx context.Context, req *Request) (*Result, error) {
	depth := DepthLevelFromInt32(req.DepthLevel)
	logger := observability.NewRequestContext(slog.Default(), depth.String())
	logger.Info("chat started",
		slog.Int(observability.LogFieldMessageLen, len(req.Message)),
		slog.String(observability.LogFieldConversationID, req.ConversationUID),
	)

	st := stateIdle

	// Idle -> HistoryLoaded. A read failure short-circuits before any
	// gateway call so failed requests are never charged upstream.
	var conversation *store.Conversation
	var history []*store.Message
	if req.ConversationUID != "" {
		var err error
		conversation, history, err = s.loadHistory(ctx, req.ConversationUID)
		if err != nil {
			return nil, s.fail(logger, &st, err)
		}
	}
	st = stateHistoryLoaded
	logger.Debug("history loaded",
		slog.String(observability.LogFieldState, st.String()),
		slog.Int("history_count", len(history)),
	)

	// HistoryLoaded -> PromptReady.
	prompt, err := AssemblePrompt(SystemInstruction(depth), history, req.Message)
	if err != nil {
		return nil, s.fail(logger, &st, err)
	}
	st = statePromptReady

	// PromptReady -> GatewayPending.
	st = stateGatewayPending
	text, err := s.gateway.Complete(ctx, prompt)
	if err != nil {
		return nil, s.fail(logger, &st, classifyGatewayErr(err))
	}

	result := &Result{
		Response:           text,
		VerificationStatus: store.VerificationStatusVerified,
	}

	// GatewayPending -> Persisted. Without a conversation there is nothing to
	// persist; the single-turn exchange is complete.
	if conversation != nil {
		if err := s.persistExchange(ctx, conversation, req.Message, text); err != nil {
			// The answer is already generated; report the storage failure
			// alongside it instead of retracting the response.
			logger.Error("failed to persist exchange", err,
				slog.String(observability.LogFieldState, st.String()),
			)
			result.StorageErr = errs.Storage("failed to persist exchange", err)
		}
	}
	st = statePersisted

	logger.Info("chat completed",
		slog.String(observability.LogFieldState, st.String()),
		slog.Int64(observability.LogFieldDuration, logger.DurationMs()),
	)
	return result, nil
}

// loadHistory resolves the conversation and reads its messages in ascending
// creation order.
func (s *Service) loadHistory(ctx context.Context, conversationUID string) (*store.Conversation, []*store.Message, error) {
	conversations, err := s.store.ListConversations(ctx, &store.FindConversation{UID: &conversationUID})
	if err != nil {
		return nil, nil, errs.Storage("failed to read conversation", err)
	}
	if len(conversations) == 0 {
		return nil, nil, errs.InvalidArgument("conversation not found")
	}
	conversation := conversations[0]

	history, err := s.store.ListMessages(ctx, &store.FindMessage{ConversationID: &conversation.ID})
	if err != nil {
		return nil, nil, errs.Storage("failed to read history", err)
	}
	return conversation, history, nil
}

// persistExchange appends the user message and the verified assistant message
// as one logical append, then touches the conversation timestamp.
func (s *Service) persistExchange(ctx context.Context, conversation *store.Conversation, userMessage, assistantMessage string) error {
	now := s.now().Unix()

	if _, err := s.store.CreateMessage(ctx, &store.Message{
		UID:            shortuuid.New(),
		ConversationID: conversation.ID,
		Role:           store.MessageRoleUser,
		Content:        userMessage,
		Metadata:       emptyMetadata,
		CreatedTs:      now,
	}); err != nil {
		return err
	}

	if _, err := s.store.CreateMessage(ctx, &store.Message{
		UID:                shortuuid.New(),
		ConversationID:     conversation.ID,
		Role:               store.MessageRoleAssistant,
		Content:            assistantMessage,
		VerificationStatus: store.VerificationStatusVerified,
		Metadata:           emptyMetadata,
		CreatedTs:          now,
	}); err != nil {
		return err
	}

	if _, err := s.store.UpdateConversation(ctx, &store.UpdateConversation{
		ID:        conversation.ID,
		UpdatedTs: &now,
	}); err != nil {
		// The exchange itself is stored; a stale conversation timestamp is
		// not worth surfacing to the caller.
		slog.Warn("failed to update conversation timestamp",
			slog.Int64("conversation_id", int64(conversation.ID)),
			slog.String("error", err.Error()),
		)
	}
	return nil
}

func (s *Service) fail(logger *observability.RequestContext, st *state, err error) error {
	*st = stateFailed
	logger.Error("chat failed", err,
		slog.String(observability.LogFieldState, st.String()),
		slog.String(observability.LogFieldErrorCode, string(errs.GetCodeFromError(err, errs.ErrCodeUpstream))),
	)
	return err
}

// classifyGatewayErr maps a gateway client error onto the service error
// taxonomy.
func classifyGatewayErr(err error) error {
	gwErr, ok := llm.AsGatewayError(err)
	if !ok {
		return errs.Upstream("gateway call failed", err)
	}
	switch gwErr.Kind {
	case llm.KindRateLimited:
		return errs.RateLimited("upstream rate limit exceeded")
	case llm.KindPaymentRequired:
		return errs.PaymentRequired("upstream billing failure")
	case llm.KindConfiguration:
		return errs.Configuration(gwErr.Detail)
	default:
		return errs.Upstream("gateway call failed", gwErr)
	}
}
