package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/repo"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/search"
	"github.com/Voyago-core-poc-v1/server/internal/core"
	"github.com/Voyago-core-poc-v1/server/internal/kb"
	"github.com/Voyago-core-poc-v1/server/internal/llm"
	"github.com/Voyago-core-poc-v1/server/internal/vectorstore"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
	pkgredis "github.com/Voyago-core-poc-v1/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the assistant, sourced
// from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Assistant configs
	Generation   model.GenerationModelConfig
	Conversation model.ConversationConfig
	Search       model.SearchConfig
	RAG          model.RAGConfig
}

func main() {
	initKB := flag.Bool("init-kb", false, "index the knowledge base and exit")
	kbDir := flag.String("kb-dir", "data/knowledge_base", "knowledge base directory")
	flag.Parse()

	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var envCfg AppConfig
	if err := envconfig.Process("", &envCfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(envCfg.Environment)})

	rdb, err := envCfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	provider, err := llm.NewGeminiProvider(ctx, llm.GeminiConfig{
		APIKey:     envCfg.APIKey,
		BaseURL:    envCfg.BaseURL,
		Generation: envCfg.Generation,
	})
	if err != nil {
		log.Fatalf("Failed to initialise LLM provider: %v", err)
	}

	store := vectorstore.NewRedisStore(rdb, envCfg.RAG.IndexName, envCfg.RAG.KeyPrefix)

	if *initKB {
		if err := store.Reset(ctx); err != nil {
			log.Fatalf("Failed to reset vector index: %v", err)
		}
		indexer := kb.NewIndexer(provider, store, envCfg.RAG.ChunkSize)
		n, err := indexer.IndexDirectory(ctx, *kbDir)
		if err != nil {
			log.Fatalf("Failed to index knowledge base: %v", err)
		}
		fmt.Printf("Knowledge base initialised with %d chunks\n", n)
		return
	}

	// The catalog must exist to serve search: a load failure aborts startup.
	catalog, err := search.LoadCatalog(envCfg.Search.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load flight catalog: %v", err)
	}
	engine := search.NewEngine(catalog)

	ttl, err := time.ParseDuration(envCfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", envCfg.Conversation.TTL, err)
	}

	runner, err := graph.BuildAssistantGraph(ctx, graph.Config{
		Provider:         provider,
		Engine:           engine,
		VectorStore:      store,
		ConversationRepo: repo.NewRedisConversationRepository(rdb, ttl),
		Conversation:     envCfg.Conversation,
		Search:           envCfg.Search,
		RAG:              envCfg.RAG,
	})
	if err != nil {
		log.Fatalf("Failed to build graph: %v", err)
	}

	runChatLoop(ctx, runner)
}

// runChatLoop reads user turns from stdin until EOF or an exit command.
func runChatLoop(ctx context.Context, runner graph.Runner) {
	conversationID := fmt.Sprintf("cli-%d", time.Now().Unix())
	fmt.Println("Travel Assistant. Type your message and press Enter (Ctrl+D or 'exit' to quit).")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		switch strings.ToLower(input) {
		case "exit", "quit", "q":
			return
		}

		state, err := runner.Invoke(ctx, model.TurnInput{
			ConversationID: conversationID,
			Query:          input,
		})
		if err != nil {
			logx.Error().Err(err).Msg("turn failed")
			fmt.Println("Assistant: I'm sorry, something went wrong. Please try again.")
			continue
		}
		fmt.Printf("Assistant: %s\n", state.FinalResponse)
	}
}
