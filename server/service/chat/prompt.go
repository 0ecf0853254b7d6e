package chat

import (
	"strings"

	"github.com/king120kw/research-weaver-sub001/plugin/llm"
	errs "github.com/king120kw/research-weaver-sub001/server/internal/errors"
	"github.com/king120kw/research-weaver-sub001/store"
)

const (
	roleSystem    = "system"
	roleUser      = "user"
	roleAssistant = "assistant"
)

// AssemblePrompt builds the ordered instruction sequence for the gateway:
// one system entry, the stored history in original order with stored roles,
// then the new user message. Side-effect free.
func AssemblePrompt(systemInstruction string, history []*store.Message, userMessage string) ([]llm.Message, error) {
	if strings.TrimSpace(userMessage) == "" {
		return nil, errs.InvalidArgument("message must not be empty")
	}

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: roleSystem, Content: systemInstruction})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: wireRole(m.Role), Content: m.Content})
	}
	messages = append(messages, llm.Message{Role: roleUser, Content: userMessage})
	return messages, nil
}

func wireRole(role store.MessageRole) string {
	switch role {
	case store.MessageRoleAssistant:
		return roleAssistant
	case store.MessageRoleSystem:
		return roleSystem
	default:
		return roleUser
	}
}
