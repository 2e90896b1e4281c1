// Package prompts renders the assistant's prompt templates. Templates embed
// as plain text and interpolate via a token replacer so JSON braces inside
// them survive; the final wrap through the Eino prompt component emits
// prompt callbacks.
package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/intent_prompt.txt
var intentPrompt string

//go:embed template/criteria_prompt.txt
var criteriaPrompt string

//go:embed template/rag_prompt.txt
var ragPrompt string

//go:embed template/flight_results_prompt.txt
var flightResultsPrompt string

//go:embed template/no_results_prompt.txt
var noResultsPrompt string

//go:embed template/clarification_prompt.txt
var clarificationPrompt string

// render substitutes tokens and pushes the result through the Eino prompt
// component so prompt callbacks fire.
func render(ctx context.Context, template string, pairs ...string) (string, error) {
	content := strings.NewReplacer(pairs...).Replace(template)

	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("prompt render: empty result")
	}
	return msgs[0].Content, nil
}

// RenderIntentClassification builds the router's classification prompt.
// conversationContext is pre-formatted recent history, or "" on a first turn.
func RenderIntentClassification(ctx context.Context, query, conversationContext string) (string, error) {
	return render(ctx, intentPrompt,
		"{conversation_context}", conversationContext,
		"{query}", query,
	)
}

// RenderCriteriaExtraction builds the strict-JSON extraction prompt.
func RenderCriteriaExtraction(ctx context.Context, query, conversationContext string) (string, error) {
	return render(ctx, criteriaPrompt,
		"{conversation_context}", conversationContext,
		"{query}", query,
	)
}

// RenderRAGAnswer builds the answer-only-from-context prompt.
func RenderRAGAnswer(ctx context.Context, question, contextText string) (string, error) {
	return render(ctx, ragPrompt,
		"{context}", contextText,
		"{question}", question,
	)
}

// RenderFlightResults builds the result formatting prompt.
func RenderFlightResults(ctx context.Context, criteriaJSON, resultsJSON string, count int) (string, error) {
	return render(ctx, flightResultsPrompt,
		"{criteria}", criteriaJSON,
		"{results}", resultsJSON,
		"{count}", fmt.Sprintf("%d", count),
	)
}

// RenderNoResults builds the empty-result messaging prompt.
func RenderNoResults(ctx context.Context, criteriaJSON string) (string, error) {
	return render(ctx, noResultsPrompt,
		"{criteria}", criteriaJSON,
	)
}

// RenderClarification builds the missing-information prompt.
func RenderClarification(ctx context.Context, query, missingFields, conversationContext string) (string, error) {
	if conversationContext == "" {
		conversationContext = "(none yet)"
	}
	return render(ctx, clarificationPrompt,
		"{conversation_context}", conversationContext,
		"{query}", query,
		"{missing_fields}", missingFields,
	)
}
