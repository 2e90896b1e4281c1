package nodes

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/conversations"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph/prompts"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/llm"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

const clarificationFallback = "Could you provide more details about your travel plans?"

// NewClarificationNode asks the user for the single most specific missing
// piece of information.
func NewClarificationNode(provider llm.Provider, contextMax int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TravelState) (*model.TravelState, error) {
		conversationContext := conversations.FormatRecent(s.Messages, contextMax)

		prompt, err := prompts.RenderClarification(ctx, s.UserQuery, MissingFields(s.Criteria), conversationContext)
		if err != nil {
			logx.Error().Err(err).Msg("clarification prompt render failed")
			s.RecordError(err)
			s.FinalResponse = clarificationFallback
			return s, nil
		}

		response, err := provider.Generate(ctx, prompt)
		if err != nil {
			logx.Error().Err(err).Msg("clarification generation failed")
			s.RecordError(err)
			s.FinalResponse = clarificationFallback
			return s, nil
		}

		s.FinalResponse = response
		return s, nil
	})
}

// MissingFields names the single most specific gap in the criteria:
// destination first, then origin-or-dates, then a generic fallback.
func MissingFields(criteria *model.FlightCriteria) string {
	if criteria != nil {
		if !criteria.HasDestination() {
			return "destination city"
		}
		if strings.TrimSpace(criteria.Origin) == "" {
			return "origin city or dates"
		}
	}
	return "travel details"
}
