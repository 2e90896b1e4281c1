package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	errx "github.com/Voyago-core-poc-v1/server/internal/core/error"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// GeminiConfig holds everything needed to construct the Gemini provider.
type GeminiConfig struct {
	APIKey     string
	BaseURL    string
	Generation model.GenerationModelConfig
}

// GeminiProvider implements Provider on top of the Gemini API: the Eino chat
// model component for generation and the genai client for embeddings.
type GeminiProvider struct {
	chatModel  einomodel.BaseChatModel
	client     *genai.Client
	embedModel string
}

// NewGeminiProvider creates the shared genai client and the chat model.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Generation.Model,
		Temperature: &cfg.Generation.Temperature,
		MaxTokens:   &cfg.Generation.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating chat model")
		return nil, fmt.Errorf("error creating chat model: %w", err)
	}

	logx.Debug().
		Str("model", cfg.Generation.Model).
		Str("embedding_model", cfg.Generation.EmbeddingModel).
		Msg("Gemini provider initialised")

	return &GeminiProvider{
		chatModel:  chatModel,
		client:     client,
		embedModel: cfg.Generation.EmbeddingModel,
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := p.chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", errx.WrapLLM(err)
	}
	if out == nil {
		return "", errx.WrapLLM(fmt.Errorf("empty model response"))
	}
	return out.Content, nil
}

func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := p.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

func (p *GeminiProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}
	resp, err := p.client.Models.EmbedContent(ctx, p.embedModel, contents, nil)
	if err != nil {
		return nil, errx.WrapLLM(err)
	}
	if resp == nil || len(resp.Embeddings) != len(texts) {
		return nil, errx.WrapLLM(fmt.Errorf("embedding count mismatch: want %d", len(texts)))
	}
	vecs := make([][]float32, len(texts))
	for i, e := range resp.Embeddings {
		if e == nil || len(e.Values) == 0 {
			return nil, errx.WrapLLM(fmt.Errorf("empty embedding at index %d", i))
		}
		vecs[i] = e.Values
	}
	return vecs, nil
}

var _ Provider = (*GeminiProvider)(nil)
