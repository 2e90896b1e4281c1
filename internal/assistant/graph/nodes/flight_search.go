package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/search"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// NewFlightSearchNode runs the catalog search. No matches is a valid empty
// result, never an error.
func NewFlightSearchNode(engine *search.Engine) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TravelState) (*model.TravelState, error) {
		if s.Criteria == nil {
			s.SearchResults = []model.Flight{}
			s.RecordError(fmt.Errorf("no criteria extracted"))
			return s, nil
		}

		s.SearchResults = engine.Search(*s.Criteria)
		logx.Info().Int("results", len(s.SearchResults)).Str("conversation_id", s.ConversationID).Msg("flight search complete")
		return s, nil
	})
}
