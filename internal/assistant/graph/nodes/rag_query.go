package nodes

import (
	"context"
	"strings"

	"github.com/cloudwego/eino/compose"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/rag"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

const ragErrorResponse = "I'm sorry, I encountered an error retrieving that information."

// NewRAGQueryNode answers knowledge-base intents. The tool sees the previous
// assistant message so short follow-ups resolve against it.
func NewRAGQueryNode(tool *rag.Tool) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, s *model.TravelState) (*model.TravelState, error) {
		result, err := tool.Query(ctx, s.UserQuery, s.PreviousAssistantMessage())
		if err != nil {
			logx.Error().Err(err).Str("conversation_id", s.ConversationID).Msg("knowledge-base query failed")
			s.RecordError(err)
			s.FinalResponse = ragErrorResponse
			return s, nil
		}

		s.FinalResponse = result.Answer
		s.RAGContext = strings.Join(result.Sources, "\n")
		logx.Info().
			Int("sources", len(result.Sources)).
			Float64("confidence", result.Confidence).
			Msg("knowledge-base answer ready")
		return s, nil
	})
}
