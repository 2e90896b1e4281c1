package repo

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRepositoryRoundTrip(t *testing.T) {
	r := NewMemoryConversationRepository()
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("hello")))
	require.NoError(t, r.AddMessage(ctx, "c1", schema.AssistantMessage("hi there", nil)))

	history, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, history.Messages, 2)
	assert.Equal(t, "c1", history.ConversationID)
	assert.Equal(t, schema.User, history.Messages[0].Role)
	assert.Equal(t, "hi there", history.Messages[1].Content)

	count, err := r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMemoryRepositoryEmptyConversation(t *testing.T) {
	r := NewMemoryConversationRepository()
	ctx := context.Background()

	history, err := r.LoadHistory(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, history.Messages)

	count, err := r.GetMessageCount(ctx, "missing")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryRepositoryClearHistory(t *testing.T) {
	r := NewMemoryConversationRepository()
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("hello")))
	require.NoError(t, r.ClearHistory(ctx, "c1"))

	count, err := r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryRepositoryLoadReturnsCopy(t *testing.T) {
	r := NewMemoryConversationRepository()
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("hello")))

	history, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	history.Messages[0] = schema.UserMessage("mutated")

	again, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "hello", again.Messages[0].Content)
}
