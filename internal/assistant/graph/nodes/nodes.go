// Package nodes contains the processing nodes of the travel assistant graph.
//
// Every node is a thin adapter: it reads the fields it needs from the turn
// state, delegates to a leaf package (search engine, RAG tool, parsers), and
// overlays its own outputs. A node never lets an internal failure escape the
// graph: errors are recorded in state and converted into a degraded but
// valid outcome, so the turn always reaches the finalizer.
package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/conversations"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// Node identifiers used as graph keys.
const (
	NodeInputLoader        = "input_loader"
	NodeRouter             = "router"
	NodeCriteriaExtraction = "criteria_extraction"
	NodeFlightSearch       = "flight_search"
	NodeRAGQuery           = "rag_query"
	NodeResponseGeneration = "response_generation"
	NodeClarification      = "clarification"
	NodeFinalizer          = "finalizer"
)

// FallbackResponse ends the turn when every other path failed to produce
// output. The finalizer guarantees a non-empty final response.
const FallbackResponse = "I'm sorry, something went wrong. Please try again."

// NewInputLoaderNode persists the incoming user message and seeds the turn
// state with the conversation history. A history failure degrades to a
// single-message view so the turn still proceeds.
func NewInputLoaderNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TurnInput) (*model.TravelState, error) {
		state := &model.TravelState{
			ConversationID: in.ConversationID,
			UserQuery:      in.Query,
		}

		messages, err := mm.BeginTurn(ctx, in.ConversationID, in.Query)
		if err != nil {
			logx.Error().Err(err).Str("conversation_id", in.ConversationID).Msg("failed to load conversation history")
			state.RecordError(err)
			state.Messages = []*schema.Message{schema.UserMessage(in.Query)}
			return state, nil
		}

		state.Messages = messages
		return state, nil
	})
}

// NewFinalizerNode guarantees a non-empty final response and persists it.
func NewFinalizerNode(mm *conversations.MessagesManager) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TravelState) (*model.TravelState, error) {
		if s.FinalResponse == "" {
			logx.Warn().Str("conversation_id", s.ConversationID).Msg("turn ended without a response; using fallback")
			s.FinalResponse = FallbackResponse
		}

		if err := mm.SaveResponse(ctx, s.ConversationID, s.FinalResponse); err != nil {
			logx.Error().Err(err).Str("conversation_id", s.ConversationID).Msg("failed to save assistant response")
			s.RecordError(err)
		}

		s.Messages = append(s.Messages, schema.AssistantMessage(s.FinalResponse, nil))
		return s, nil
	})
}
