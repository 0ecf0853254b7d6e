package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/king120kw/research-weaver-sub001/server/internal/errors"
	"github.com/king120kw/research-weaver-sub001/store"
)

func TestAssemblePromptOrdering(t *testing.T) {
	history := []*store.Message{
		{Role: store.MessageRoleUser, Content: "What is CRISPR?"},
		{Role: store.MessageRoleAssistant, Content: "CRISPR is a genome editing tool."},
		{Role: store.MessageRoleUser, Content: "Who discovered it?"},
		{Role: store.MessageRoleAssistant, Content: "Doudna and Charpentier are credited."},
	}

	messages, err := AssemblePrompt("system instruction", history, "What are the ethical concerns?")
	require.NoError(t, err)
	require.Len(t, messages, 6)

	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "system instruction", messages[0].Content)

	// History preserved in original order with stored roles.
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "What is CRISPR?", messages[1].Content)
	assert.Equal(t, "assistant", messages[2].Role)
	assert.Equal(t, "user", messages[3].Role)
	assert.Equal(t, "assistant", messages[4].Role)

	// Exactly one new entry at the end.
	assert.Equal(t, "user", messages[5].Role)
	assert.Equal(t, "What are the ethical concerns?", messages[5].Content)
}

func TestAssemblePromptEmptyHistory(t *testing.T) {
	messages, err := AssemblePrompt("system instruction", nil, "hello")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)
}

func TestAssemblePromptRejectsEmptyMessage(t *testing.T) {
	for _, message := range []string{"", "   ", "\n\t "} {
		_, err := AssemblePrompt("system instruction", nil, message)
		require.Error(t, err)
		assert.True(t, errs.IsCode(err, errs.ErrCodeInvalidArgument), "expected INVALID_ARGUMENT for %q", message)
	}
}
