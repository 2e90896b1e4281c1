package nodes

import (
	"context"
	"encoding/json"

	"github.com/cloudwego/eino/compose"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph/prompts"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/llm"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

const responseErrorFallback = "I apologize, but I encountered an error generating the response."

// NewResponseGenerationNode renders search results (or their absence) into a
// user-facing reply. A final response set upstream is terminal and passes
// through untouched.
func NewResponseGenerationNode(provider llm.Provider, maxResults int) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TravelState) (*model.TravelState, error) {
		if s.FinalResponse != "" {
			return s, nil
		}

		criteriaJSON := "{}"
		if s.Criteria != nil {
			if b, err := json.MarshalIndent(s.Criteria, "", "  "); err == nil {
				criteriaJSON = string(b)
			}
		}

		var prompt string
		var err error
		if len(s.SearchResults) == 0 {
			prompt, err = prompts.RenderNoResults(ctx, criteriaJSON)
		} else {
			shown := s.SearchResults
			if maxResults > 0 && len(shown) > maxResults {
				shown = shown[:maxResults]
			}
			var resultsJSON []byte
			resultsJSON, err = json.MarshalIndent(shown, "", "  ")
			if err == nil {
				prompt, err = prompts.RenderFlightResults(ctx, criteriaJSON, string(resultsJSON), len(s.SearchResults))
			}
		}
		if err != nil {
			logx.Error().Err(err).Msg("response prompt construction failed")
			s.RecordError(err)
			s.FinalResponse = responseErrorFallback
			return s, nil
		}

		response, err := provider.Generate(ctx, prompt)
		if err != nil {
			logx.Error().Err(err).Msg("response generation failed")
			s.RecordError(err)
			s.FinalResponse = responseErrorFallback
			return s, nil
		}

		s.FinalResponse = response
		return s, nil
	})
}
