// Package rag answers knowledge-base questions by similarity search over the
// vector index followed by a single grounded generation call.
package rag

import (
	"context"
	"strings"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph/prompts"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/llm"
	"github.com/Voyago-core-poc-v1/server/internal/vectorstore"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// NoInfoMessage is the fixed answer when the knowledge base has nothing.
const NoInfoMessage = "I don't have that information in my knowledge base."

const (
	// Truncation limits for follow-up handling: the previous answer feeds
	// the similarity query and the rewritten question at different lengths.
	followUpSearchLimit   = 300
	followUpQuestionLimit = 500
)

var followUpCues = []string{"this", "that", "it", "mean", "explain", "what", "how"}

type Tool struct {
	provider llm.Provider
	store    vectorstore.Store
	topK     int
}

func NewTool(provider llm.Provider, store vectorstore.Store, topK int) *Tool {
	if topK <= 0 {
		topK = 3
	}
	return &Tool{provider: provider, store: store, topK: topK}
}

// Query answers a question from the knowledge base. previousAnswer is the
// immediately preceding assistant message, or "" when the conversation has
// none; it is only consulted when the question reads as a follow-up.
//
// Zero retrieved documents short-circuit to the fixed no-information answer
// without a generation call.
func (t *Tool) Query(ctx context.Context, question, previousAnswer string) (model.RAGResult, error) {
	followUp := previousAnswer != "" && isFollowUp(question)

	searchQuery := question
	if followUp {
		searchQuery = truncate(previousAnswer, followUpSearchLimit) + " " + question
	}

	vec, err := t.provider.Embed(ctx, searchQuery)
	if err != nil {
		return model.RAGResult{}, err
	}
	docs, err := t.store.Query(ctx, vec, t.topK)
	if err != nil {
		return model.RAGResult{}, err
	}

	if len(docs) == 0 {
		logx.Debug().Str("question", question).Msg("no knowledge-base matches")
		return model.RAGResult{
			Answer:     NoInfoMessage,
			Sources:    []string{},
			Confidence: 0.0,
		}, nil
	}

	sources := make([]string, len(docs))
	for i, d := range docs {
		sources[i] = d.Content
	}
	contextText := strings.Join(sources, "\n\n")

	promptQuestion := question
	if followUp {
		promptQuestion = rewriteFollowUp(question, truncate(previousAnswer, followUpQuestionLimit))
	}

	prompt, err := prompts.RenderRAGAnswer(ctx, promptQuestion, contextText)
	if err != nil {
		return model.RAGResult{}, err
	}
	answer, err := t.provider.Generate(ctx, prompt)
	if err != nil {
		return model.RAGResult{}, err
	}
	answer = strings.TrimSpace(answer)

	confidence := 1.0
	if answer == "" || strings.Contains(strings.ToLower(answer), strings.ToLower(NoInfoMessage)) {
		confidence = 0.0
	}
	if answer == "" {
		answer = NoInfoMessage
	}

	logx.Debug().
		Int("sources", len(sources)).
		Float64("confidence", confidence).
		Msg("knowledge-base answer generated")
	return model.RAGResult{Answer: answer, Sources: sources, Confidence: confidence}, nil
}

// isFollowUp detects questions that refer back to the previous answer: short
// questions carrying a referential cue word, or explicit clarification
// phrasing anywhere.
func isFollowUp(question string) bool {
	q := strings.ToLower(strings.TrimSpace(question))
	if len(strings.Fields(q)) <= 5 {
		for _, cue := range followUpCues {
			if strings.Contains(q, cue) {
				return true
			}
		}
	}
	return strings.Contains(q, "what do you mean") ||
		strings.Contains(q, "explain") ||
		strings.Contains(q, "can you clarify")
}

func rewriteFollowUp(question, previousAnswer string) string {
	var b strings.Builder
	b.WriteString("[Follow-up question. Previous assistant answer: ")
	b.WriteString(previousAnswer)
	b.WriteString("]\nUser asks: ")
	b.WriteString(question)
	b.WriteString("\nAnswer in the context of the previous answer if the user is asking for clarification or more detail.")
	return b.String()
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
