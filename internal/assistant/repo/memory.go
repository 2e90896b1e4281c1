package repo

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/schema"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
)

// MemoryConversationRepository keeps conversation history in process memory.
// Intended for tests; production conversations live in Redis.
type MemoryConversationRepository struct {
	mu       sync.RWMutex
	messages map[string][]*schema.Message
}

func NewMemoryConversationRepository() *MemoryConversationRepository {
	return &MemoryConversationRepository{messages: make(map[string][]*schema.Message)}
}

func (r *MemoryConversationRepository) AddMessage(ctx context.Context, conversationID string, message *schema.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[conversationID] = append(r.messages[conversationID], message)
	return nil
}

func (r *MemoryConversationRepository) LoadHistory(ctx context.Context, conversationID string) (*model.ConversationHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	msgs := r.messages[conversationID]
	out := make([]*schema.Message, len(msgs))
	copy(out, msgs)
	return &model.ConversationHistory{ConversationID: conversationID, Messages: out}, nil
}

func (r *MemoryConversationRepository) ClearHistory(ctx context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.messages, conversationID)
	return nil
}

func (r *MemoryConversationRepository) GetMessageCount(ctx context.Context, conversationID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages[conversationID]), nil
}

var _ model.ConversationRepository = (*MemoryConversationRepository)(nil)
