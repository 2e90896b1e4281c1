package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/conversations"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph/prompts"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/llm"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// NewRouterNode classifies the turn's intent. The classifier sees the recent
// conversation excluding the current message; its raw response is matched by
// substring against the known labels in enumeration order. A provider
// failure defaults the intent to CLARIFICATION_NEEDED.
func NewRouterNode(provider llm.Provider, contextMax int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TravelState) (*model.TravelState, error) {
		conversationContext := ""
		if len(s.Messages) > 1 {
			if recent := conversations.FormatRecent(s.Messages[:len(s.Messages)-1], contextMax); recent != "" {
				conversationContext = "Recent conversation:\n" + recent + "\n\n"
			}
		}

		prompt, err := prompts.RenderIntentClassification(ctx, s.UserQuery, conversationContext)
		if err != nil {
			logx.Error().Err(err).Msg("router prompt render failed")
			s.RecordError(err)
			s.Intent = model.IntentClarificationNeeded
			return s, nil
		}

		response, err := provider.Generate(ctx, prompt)
		if err != nil {
			logx.Error().Err(err).Msg("intent classification failed")
			s.RecordError(err)
			s.Intent = model.IntentClarificationNeeded
			return s, nil
		}

		s.Intent = model.MatchIntent(response)
		logx.Info().Str("intent", string(s.Intent)).Str("conversation_id", s.ConversationID).Msg("classified intent")
		return s, nil
	})
}

// NewIntentCondition routes from the router by classified intent.
func NewIntentCondition() func(context.Context, *model.TravelState) (string, error) {
	return func(ctx context.Context, s *model.TravelState) (string, error) {
		switch {
		case s.Intent == model.IntentFlightSearch:
			return NodeCriteriaExtraction, nil
		case s.Intent.IsKnowledgeIntent():
			return NodeRAGQuery, nil
		default:
			return NodeClarification, nil
		}
	}
}
