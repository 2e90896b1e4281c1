package nodes

import (
	"context"

	"github.com/cloudwego/eino/compose"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/conversations"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph/parsers"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph/prompts"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/llm"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// NewCriteriaExtractionNode turns the query plus recent conversation into
// structured flight criteria. Cross-turn references (a destination named two
// turns ago) resolve through the conversation context fed to the prompt, not
// through explicit slot memory. Unrecoverable extractor output forces the
// clarification branch.
func NewCriteriaExtractionNode(provider llm.Provider, contextMax int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TravelState) (*model.TravelState, error) {
		conversationContext := ""
		if len(s.Messages) > 1 {
			if recent := conversations.FormatRecent(s.Messages, contextMax); recent != "" {
				conversationContext = "Conversation:\n" + recent + "\n\n"
			}
		}

		prompt, err := prompts.RenderCriteriaExtraction(ctx, s.UserQuery, conversationContext)
		if err != nil {
			logx.Error().Err(err).Msg("criteria prompt render failed")
			s.RecordError(err)
			s.NeedsClarification = true
			return s, nil
		}

		response, err := provider.Generate(ctx, prompt)
		if err != nil {
			logx.Error().Err(err).Msg("criteria extraction failed")
			s.RecordError(err)
			s.NeedsClarification = true
			return s, nil
		}

		criteria, err := parsers.ParseCriteria(response)
		if err != nil {
			logx.Warn().Err(err).Msg("criteria response unparseable")
			s.RecordError(err)
			s.NeedsClarification = true
			return s, nil
		}

		s.Criteria = criteria
		s.NeedsClarification = !criteria.HasDestination()
		logx.Info().Str("criteria", criteria.Summary()).Msg("extracted criteria")
		return s, nil
	})
}

// NewClarificationCondition routes from extraction: a clarification flag
// short-circuits the search.
func NewClarificationCondition() func(context.Context, *model.TravelState) (string, error) {
	return func(ctx context.Context, s *model.TravelState) (string, error) {
		if s.NeedsClarification {
			return NodeClarification, nil
		}
		return NodeFlightSearch, nil
	}
}
