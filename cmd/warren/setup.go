package main

import (
	"context"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/internal/providers/embed"
	"github.com/warrenhq/warren/internal/providers/llm"
	"github.com/warrenhq/warren/internal/service/budget"
	"github.com/warrenhq/warren/internal/service/conversation"
	"github.com/warrenhq/warren/internal/service/generation"
	"github.com/warrenhq/warren/internal/service/search"
	"github.com/warrenhq/warren/internal/storage/sqlite"
	"github.com/warrenhq/warren/pkg/log"
	"github.com/warrenhq/warren/pkg/srv"
)

// pipeline is the fully wired library: the orchestrator plus the background
// services the command must start and drain around it.
type pipeline struct {
	orchestrator *generation.Orchestrator
	services     []srv.Service
}

// newPipeline wires the whole dependency graph explicitly. Wiring failures
// are fatal; per-request degradation is handled inside the components.
func newPipeline(ctx context.Context) *pipeline {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	searchCfg := config.NewSearchConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	// 2. Storage
	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	contentRepo := sqlite.NewContentRepo(db)
	keywordRepo := sqlite.NewKeywordRepo(db)
	conversationsRepo := sqlite.NewConversationsRepo(db)
	documentsRepo := sqlite.NewDocumentsRepo(db)

	// 3. Embeddings
	embedder, err := embed.NewOpenAI(llmCfg, searchCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize embedding provider")
	}

	// 4. Evidence retrieval
	vector := search.NewVectorRetriever(searchCfg, contentRepo, embedder)
	keyword := search.NewKeywordRetriever(searchCfg, keywordRepo)
	retriever := search.NewOrchestrator(vector, keyword, search.NewAssessor(), search.NewMerger())

	// 5. Session context and background turn recording
	sessions := conversation.NewService(appCfg, conversationsRepo, documentsRepo)
	recorder := conversation.NewRecorder(conversationsRepo)
	services = append(services, recorder)

	// 6. Generation backends
	backend, err := llm.NewBackend(ctx, appCfg.LLMProvider, llmCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize generation backend")
	}
	emergencyBackend := backend
	if appCfg.EmergencyProvider != appCfg.LLMProvider {
		emergencyBackend, err = llm.NewBackend(ctx, appCfg.EmergencyProvider, llmCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize emergency backend")
		}
	}

	// 7. Generation pipeline
	prompts := generation.NewPromptBuilder(budget.NewCounter(ctx))
	selector := generation.NewSelector(generation.NewCascade(backend, prompts, llmCfg)...)
	emergency := generation.NewEmergency(emergencyBackend, llmCfg)

	orchestrator := generation.NewOrchestrator(retriever, sessions, recorder, selector, emergency)

	return &pipeline{orchestrator: orchestrator, services: services}
}

// ingestDeps is the slimmer graph the ingest command needs: the content
// library plus an optional embedder.
type ingestDeps struct {
	repo     *sqlite.ContentRepo
	embedder core.Embedder
	closeDB  func() error
}

// newIngestDeps keeps ingestion usable without an embedding key: entries
// stored without vectors stay reachable through keyword search.
func newIngestDeps(ctx context.Context) (*ingestDeps, error) {
	logger := log.FromCtx(ctx)

	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		return nil, err
	}

	appCfg := config.NewAppConfig(ctx)
	searchCfg := config.NewSearchConfig(ctx)
	llmCfg := config.NewLLMConfig(ctx)

	db, err := sqlite.NewDB(ctx, appCfg.GetDatabasePath())
	if err != nil {
		return nil, err
	}

	deps := &ingestDeps{repo: sqlite.NewContentRepo(db), closeDB: db.Close}

	embedder, err := embed.NewOpenAI(llmCfg, searchCfg)
	if err != nil {
		logger.Warn().Err(err).Msg("embedding provider unavailable, ingesting without vectors")
	} else {
		deps.embedder = embedder
	}

	return deps, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
