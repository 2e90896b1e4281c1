package rag

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Voyago-core-poc-v1/server/internal/vectorstore"
)

type fakeProvider struct {
	generateCalls int
	embedCalls    int
	lastPrompt    string
	lastEmbedText string
	answer        string
}

func (p *fakeProvider) Generate(_ context.Context, prompt string) (string, error) {
	p.generateCalls++
	p.lastPrompt = prompt
	return p.answer, nil
}

func (p *fakeProvider) Embed(_ context.Context, text string) ([]float32, error) {
	p.embedCalls++
	p.lastEmbedText = text
	return []float32{0.1, 0.2, 0.3}, nil
}

func (p *fakeProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, err := p.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

type fakeStore struct {
	matches []vectorstore.Match
}

func (s *fakeStore) Upsert(context.Context, []vectorstore.Document) error { return nil }

func (s *fakeStore) Query(context.Context, []float32, int) ([]vectorstore.Match, error) {
	return s.matches, nil
}

func TestQueryAnswersFromRetrievedContext(t *testing.T) {
	provider := &fakeProvider{answer: "Thai citizens get visa-free entry to Japan for 15 days."}
	store := &fakeStore{matches: []vectorstore.Match{
		{Content: "Japan grants Thai passport holders 15 days visa free.", Source: "visa_rules.md"},
		{Content: "Japan entry requires a passport valid for the stay.", Source: "visa_rules.md"},
	}}

	tool := NewTool(provider, store, 3)
	result, err := tool.Query(context.Background(), "Do Thai citizens need a visa for Japan?", "")
	require.NoError(t, err)

	assert.Equal(t, provider.answer, result.Answer)
	assert.Len(t, result.Sources, 2)
	assert.Equal(t, 1.0, result.Confidence)
	assert.Equal(t, 1, provider.generateCalls)
	assert.Contains(t, provider.lastPrompt, "15 days visa free")
}

func TestQueryEmptyRetrievalSkipsGeneration(t *testing.T) {
	provider := &fakeProvider{answer: "should never be used"}
	tool := NewTool(provider, &fakeStore{}, 3)

	result, err := tool.Query(context.Background(), "What about Mars visas?", "")
	require.NoError(t, err)

	assert.Equal(t, NoInfoMessage, result.Answer)
	assert.Empty(t, result.Sources)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, 0, provider.generateCalls, "no generation without retrieved context")
	assert.Equal(t, 1, provider.embedCalls)
}

func TestQueryNoInfoAnswerDropsConfidence(t *testing.T) {
	provider := &fakeProvider{answer: "Sorry, " + NoInfoMessage}
	store := &fakeStore{matches: []vectorstore.Match{{Content: "irrelevant chunk"}}}

	tool := NewTool(provider, store, 3)
	result, err := tool.Query(context.Background(), "Tell me about visas", "")
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Confidence)
}

func TestQueryBlankAnswerFallsBack(t *testing.T) {
	provider := &fakeProvider{answer: "   "}
	store := &fakeStore{matches: []vectorstore.Match{{Content: "a chunk"}}}

	tool := NewTool(provider, store, 3)
	result, err := tool.Query(context.Background(), "Tell me about visas", "")
	require.NoError(t, err)

	assert.Equal(t, NoInfoMessage, result.Answer)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestQueryFollowUpEnrichesSearchAndPrompt(t *testing.T) {
	provider := &fakeProvider{answer: "It means you can enter without applying beforehand."}
	store := &fakeStore{matches: []vectorstore.Match{{Content: "visa free entry rules"}}}
	previous := "Thai citizens get visa-free entry to Japan for 15 days."

	tool := NewTool(provider, store, 3)
	_, err := tool.Query(context.Background(), "what does that mean?", previous)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(provider.lastEmbedText, previous))
	assert.Contains(t, provider.lastEmbedText, "what does that mean?")
	assert.Contains(t, provider.lastPrompt, "[Follow-up question. Previous assistant answer:")
}

func TestQueryFollowUpIgnoredWithoutPreviousAnswer(t *testing.T) {
	provider := &fakeProvider{answer: "answer"}
	store := &fakeStore{matches: []vectorstore.Match{{Content: "chunk"}}}

	tool := NewTool(provider, store, 3)
	_, err := tool.Query(context.Background(), "what does that mean?", "")
	require.NoError(t, err)

	assert.Equal(t, "what does that mean?", provider.lastEmbedText)
	assert.NotContains(t, provider.lastPrompt, "[Follow-up question")
}

func TestQueryFollowUpTruncatesLongPreviousAnswer(t *testing.T) {
	provider := &fakeProvider{answer: "answer"}
	store := &fakeStore{matches: []vectorstore.Match{{Content: "chunk"}}}
	previous := strings.Repeat("x", 1000)

	tool := NewTool(provider, store, 3)
	_, err := tool.Query(context.Background(), "explain that", previous)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(provider.lastEmbedText, strings.Repeat("x", followUpSearchLimit)+" "))
	assert.NotContains(t, provider.lastEmbedText, strings.Repeat("x", followUpSearchLimit+1))
	assert.Contains(t, provider.lastPrompt, strings.Repeat("x", followUpQuestionLimit))
	assert.NotContains(t, provider.lastPrompt, strings.Repeat("x", followUpQuestionLimit+1))
}

func TestIsFollowUp(t *testing.T) {
	tests := []struct {
		question string
		want     bool
	}{
		{"what does that mean?", true},
		{"explain", true},
		{"can you clarify the second point about baggage allowances?", true},
		{"what do you mean by visa on arrival exactly, in this case?", true},
		{"how so?", true},
		{"Do Thai citizens need a visa for Japan?", false},
		{"What documents are required for a Schengen visa application process?", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isFollowUp(tt.question), "question %q", tt.question)
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "abcde", truncate("abcdefgh", 5))
	assert.Equal(t, "", truncate("", 5))
}
