package store

type Conversation struct {
	ID        int32
	UID       string
	Title     string
	CreatedTs int64
	UpdatedTs int64
}

type FindConversation struct {
	ID  *int32
	UID *string
}

type UpdateConversation struct {
	ID        int32
	Title     *string
	UpdatedTs *int64
}

type DeleteConversation struct {
	ID int32
}

type MessageRole string

const (
	MessageRoleUser      MessageRole = "USER"
	MessageRoleAssistant MessageRole = "ASSISTANT"
	// MessageRoleSystem is synthesized at call time and never persisted.
	MessageRoleSystem MessageRole = "SYSTEM"
)

type VerificationStatus string

const (
	// VerificationStatusNone applies to user messages.
	VerificationStatusNone VerificationStatus = ""
	// VerificationStatusVerified marks an assistant message produced under the
	// accuracy clause. Set by the orchestrator, never parsed from model text.
	VerificationStatusVerified     VerificationStatus = "VERIFIED"
	VerificationStatusUnverifiable VerificationStatus = "UNVERIFIABLE"
)

// Message is one persisted turn of a conversation. Rows are immutable;
// within a conversation they form a sequence ascending by CreatedTs.
type Message struct {
	ID                 int32
	UID                string
	ConversationID     int32
	Role               MessageRole
	Content            string
	VerificationStatus VerificationStatus
	Metadata           string // JSON string
	CreatedTs          int64
}

type FindMessage struct {
	ID             *int32
	UID            *string
	ConversationID *int32
}

type DeleteMessage struct {
	ID             *int32
	ConversationID *int32
}
