// Package graph composes the travel assistant's conversation state machine:
// router → criteria extraction / knowledge-base query / clarification, with
// criteria extraction branching into flight search or clarification. Every
// path converges on the finalizer, which guarantees a non-empty response.
package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/Voyago-core-poc-v1/server/internal/assistant/conversations"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph/nodes"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/graph/observers"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/model"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/rag"
	"github.com/Voyago-core-poc-v1/server/internal/assistant/search"
	"github.com/Voyago-core-poc-v1/server/internal/llm"
	"github.com/Voyago-core-poc-v1/server/internal/vectorstore"
	logx "github.com/Voyago-core-poc-v1/server/pkg/logger"
)

// Runner executes one user turn through the compiled graph.
type Runner interface {
	Invoke(ctx context.Context, in model.TurnInput) (*model.TravelState, error)
}

// Config holds every collaborator needed to compose the assistant graph.
// All dependencies are injected here; nothing is ambient.
type Config struct {
	Provider         llm.Provider
	Engine           *search.Engine
	VectorStore      vectorstore.Store
	ConversationRepo model.ConversationRepository

	Conversation model.ConversationConfig
	Search       model.SearchConfig
	RAG          model.RAGConfig
}

type graphRunner struct {
	runnable compose.Runnable[model.TurnInput, *model.TravelState]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.TurnInput) (*model.TravelState, error) {
	state, err := r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewGraphCallbacks()))
	if err != nil {
		// Nodes swallow their own failures, so this is the graph machinery
		// itself failing. The turn still ends with a usable response.
		logx.Error().Err(err).Str("conversation_id", in.ConversationID).Msg("graph invocation failed")
		return &model.TravelState{
			ConversationID: in.ConversationID,
			UserQuery:      in.Query,
			FinalResponse:  nodes.FallbackResponse,
			Error:          err.Error(),
		}, nil
	}
	return state, nil
}

// BuildAssistantGraph validates the config, composes the graph, and returns
// a Runner.
func BuildAssistantGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("llm provider is nil")
	}
	if cfg.Engine == nil {
		return nil, fmt.Errorf("search engine is nil")
	}
	if cfg.VectorStore == nil {
		return nil, fmt.Errorf("vector store is nil")
	}
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)
	ragTool := rag.NewTool(cfg.Provider, cfg.VectorStore, cfg.RAG.TopK)
	contextMax := mm.ContextMax()

	g := compose.NewGraph[model.TurnInput, *model.TravelState]()

	g.AddLambdaNode(nodes.NodeInputLoader, nodes.NewInputLoaderNode(mm))
	g.AddLambdaNode(nodes.NodeRouter, nodes.NewRouterNode(cfg.Provider, contextMax))
	g.AddLambdaNode(nodes.NodeCriteriaExtraction, nodes.NewCriteriaExtractionNode(cfg.Provider, contextMax))
	g.AddLambdaNode(nodes.NodeFlightSearch, nodes.NewFlightSearchNode(cfg.Engine))
	g.AddLambdaNode(nodes.NodeRAGQuery, nodes.NewRAGQueryNode(ragTool))
	g.AddLambdaNode(nodes.NodeResponseGeneration, nodes.NewResponseGenerationNode(cfg.Provider, cfg.Search.MaxResults))
	g.AddLambdaNode(nodes.NodeClarification, nodes.NewClarificationNode(cfg.Provider, contextMax))
	g.AddLambdaNode(nodes.NodeFinalizer, nodes.NewFinalizerNode(mm))

	edges := [][2]string{
		{compose.START, nodes.NodeInputLoader},
		{nodes.NodeInputLoader, nodes.NodeRouter},
		{nodes.NodeFlightSearch, nodes.NodeResponseGeneration},
		{nodes.NodeRAGQuery, nodes.NodeFinalizer},
		{nodes.NodeResponseGeneration, nodes.NodeFinalizer},
		{nodes.NodeClarification, nodes.NodeFinalizer},
		{nodes.NodeFinalizer, compose.END},
	}
	for _, edge := range edges {
		g.AddEdge(edge[0], edge[1])
	}

	intentBranch := compose.NewGraphBranch(
		nodes.NewIntentCondition(),
		map[string]bool{
			nodes.NodeCriteriaExtraction: true,
			nodes.NodeRAGQuery:           true,
			nodes.NodeClarification:      true,
		},
	)
	if err := g.AddBranch(nodes.NodeRouter, intentBranch); err != nil {
		logx.Error().Err(err).Msg("error adding intent branch")
		return nil, fmt.Errorf("error adding intent branch: %w", err)
	}

	clarificationBranch := compose.NewGraphBranch(
		nodes.NewClarificationCondition(),
		map[string]bool{
			nodes.NodeClarification: true,
			nodes.NodeFlightSearch:  true,
		},
	)
	if err := g.AddBranch(nodes.NodeCriteriaExtraction, clarificationBranch); err != nil {
		logx.Error().Err(err).Msg("error adding clarification branch")
		return nil, fmt.Errorf("error adding clarification branch: %w", err)
	}

	runnable, err := g.Compile(ctx, compose.WithMaxRunSteps(len(edges)+4))
	if err != nil {
		logx.Error().Err(err).Msg("error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("assistant graph compiled successfully")
	return &graphRunner{runnable: runnable}, nil
}
