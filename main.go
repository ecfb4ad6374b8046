package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"medcart-agent/agent"
	"medcart-agent/catalog"
	"medcart-agent/config"
	"medcart-agent/database"
	"medcart-agent/llmclient"
	"medcart-agent/prompts"
	"medcart-agent/web"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	// .env is optional; env vars and config.yaml take over when absent
	godotenv.Load()

	// Initialize logger with default level to load config
	tempLogger, err := config.InitLogger("info")
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Load(tempLogger)

	// Re-initialize logger with configured level
	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		fmt.Printf("Failed to re-initialize logger with configured level: %v\n", err)
		os.Exit(1)
	}
	defer config.Cleanup()

	if cfg.GroqAPIKey == "" {
		logger.Warn("GROQ_API_KEY is not set; chat requests will fail until it is provided")
	}

	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.StoreRequestTimeout)
	store, err := database.NewMongoStore(connectCtx, cfg.MongoURI, cfg.MongoDatabase, logger)
	cancelConnect()
	if err != nil {
		logger.Fatal("Failed to connect to document store", zap.Error(err))
	}
	defer store.Close(ctx)

	// The snapshot must be populated before any chat request is served;
	// requests hitting an unloaded snapshot get a 503.
	snapshot := catalog.NewSnapshot(store, logger)
	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.StoreRequestTimeout)
	err = snapshot.Load(loadCtx)
	cancelLoad()
	if err != nil {
		logger.Fatal("Failed to load catalog snapshot", zap.Error(err))
	}

	llm := llmclient.New(cfg, logger)
	system := prompts.NewSource(cfg.SystemMessagePath, logger)
	recommender := agent.New(cfg, llm, snapshot, system, logger)

	sessions, err := agent.NewSessionManager(cfg.SessionCacheSize, logger)
	if err != nil {
		logger.Fatal("Failed to initialize session manager", zap.Error(err))
	}

	webServer := web.NewServer(recommender, sessions, snapshot, logger, cfg)

	// Create context that listens for interrupt signals
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	port := fmt.Sprintf(":%d", cfg.WebPort)
	logger.Info("Starting MedCart recommendation server", zap.String("port", port))
	if err := webServer.Start(ctx, port); err != nil {
		logger.Error("Web server error", zap.Error(err))
		os.Exit(1)
	}
}
