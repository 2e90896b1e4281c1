package conversations

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
)

// MessagesManager assembles per-turn conversation context on top of the
// conversation repository.
type MessagesManager struct {
	conversationRepo model.ConversationRepository
	contextMax       int
}

func NewMessagesManager(conversationRepo model.ConversationRepository, config model.ConversationConfig) *MessagesManager {
	return &MessagesManager{
		conversationRepo: conversationRepo,
		contextMax:       config.Context.MaxMessages,
	}
}

// ContextMax returns the history window size used for prompt context.
func (m *MessagesManager) ContextMax() int {
	return m.contextMax
}

// BeginTurn persists the user's message and returns the full history
// including it. The returned slice is the turn's message view; the last
// element is always the current user message.
func (m *MessagesManager) BeginTurn(ctx context.Context, conversationID, query string) ([]*schema.Message, error) {
	if err := m.conversationRepo.AddMessage(ctx, conversationID, schema.UserMessage(query)); err != nil {
		return nil, err
	}
	history, err := m.conversationRepo.LoadHistory(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	return history.Messages, nil
}

// SaveResponse persists the assistant's final response for the turn.
func (m *MessagesManager) SaveResponse(ctx context.Context, conversationID, content string) error {
	return m.conversationRepo.AddMessage(ctx, conversationID, schema.AssistantMessage(content, nil))
}

// FormatRecent renders the most recent messages as "User:"/"Assistant:"
// lines for prompt context. Empty and non-chat messages are skipped.
func FormatRecent(messages []*schema.Message, lastN int) string {
	recent := trimTail(messages, lastN)

	var b strings.Builder
	for _, msg := range recent {
		if msg == nil || msg.Content == "" {
			continue
		}
		switch msg.Role {
		case schema.User:
			b.WriteString("User: " + msg.Content + "\n")
		case schema.Assistant:
			b.WriteString("Assistant: " + msg.Content + "\n")
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func trimTail(messages []*schema.Message, maxMessages int) []*schema.Message {
	if maxMessages <= 0 || len(messages) <= maxMessages {
		return messages
	}
	return messages[len(messages)-maxMessages:]
}
