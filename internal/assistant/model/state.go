package model

import (
	"github.com/cloudwego/eino/schema"
)

// TurnInput is the public input for processing one user turn.
type TurnInput struct {
	ConversationID string `json:"conversation_id"`
	Query          string `json:"query"`
}

// TravelState is threaded through every graph node for one turn.
//
// Message history is append-only; nodes overlay their own fields and leave
// the rest untouched. FinalResponse is terminal: once a node sets it, no
// downstream node may overwrite it for the rest of the turn.
//
// Error carries a non-fatal diagnostic for observability only. A populated
// Error never stops the turn; every node degrades to a valid state.
type TravelState struct {
	ConversationID     string
	Messages           []*schema.Message
	UserQuery          string
	Intent             IntentType
	Criteria           *FlightCriteria
	SearchResults      []Flight
	RAGContext         string
	FinalResponse      string
	NeedsClarification bool
	Error              string
}

// RecordError stores the first diagnostic of the turn; later ones append.
func (s *TravelState) RecordError(err error) {
	if err == nil {
		return
	}
	if s.Error == "" {
		s.Error = err.Error()
		return
	}
	s.Error = s.Error + "; " + err.Error()
}

// PreviousAssistantMessage returns the content of the most recent assistant
// turn, or "" when the conversation has none.
func (s *TravelState) PreviousAssistantMessage() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		m := s.Messages[i]
		if m != nil && m.Role == schema.Assistant && m.Content != "" {
			return m.Content
		}
	}
	return ""
}
