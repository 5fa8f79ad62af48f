package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/finlearn/finlearn/internal/api"
	"github.com/finlearn/finlearn/internal/auth"
	"github.com/finlearn/finlearn/internal/catalog"
	"github.com/finlearn/finlearn/internal/cloudsql"
	"github.com/finlearn/finlearn/internal/config"
	"github.com/finlearn/finlearn/internal/database"
	"github.com/finlearn/finlearn/internal/generative"
	"github.com/finlearn/finlearn/internal/inference"
	"github.com/finlearn/finlearn/internal/logging"
	"github.com/finlearn/finlearn/internal/marketdata"
	"github.com/finlearn/finlearn/internal/metrics"
	"github.com/finlearn/finlearn/internal/server"
	_ "github.com/lib/pq"
	"log/slog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting finlearn")

	// Resolve the database URL (supports DATABASE_URL and Cloud SQL)
	dbURL := cfg.Database.URL
	if dbURL == "" {
		dbURL, err = cloudsql.ResolveDatabaseURL()
		if err != nil {
			logger.Error("failed to resolve database URL", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("connecting to database", "url", cloudsql.RedactURL(dbURL))

	dbCfg := database.DefaultConfig()
	dbCfg.URL = dbURL
	db, err := database.Connect(context.Background(), dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	if err := database.RunMigrations(db, logger); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Inference telemetry for generative calls
	inferenceLogger := inference.NewLogger(database.NewInferenceLogRepository(db), logger)

	// Text-generation collaborator; nil when no API key is configured,
	// in which case all analysis runs on the deterministic path.
	llmClient := generative.NewClient(generative.Config{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		Timeout:  cfg.LLM.Timeout,
	}, logger, inferenceLogger)
	if llmClient == nil {
		logger.Warn("no LLM API key configured, running with deterministic analysis only")
	} else {
		logger.Info("generative client initialized", "provider", cfg.LLM.Provider, "model", cfg.LLM.Model)
	}

	collector, err := metrics.NewHTTPCollector()
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}

	synthesizer := generative.NewDescriptorSynthesizer(llmClient, logger)
	adapter := generative.NewImpactAdapter(llmClient, logger)
	adapter.SetPathHook(collector.RecordAnalysis)

	catalogService := catalog.NewService(
		database.NewScenarioRepository(db),
		database.NewUserScenarioRepository(db),
		database.NewTopicRepository(db),
		synthesizer,
		adapter,
		logger,
	)

	marketProvider := marketdata.NewHTTPProvider(
		cfg.MarketData.APIKey,
		cfg.MarketData.BaseURL,
		cfg.MarketData.CacheTTL,
		logger,
	)
	if cfg.MarketData.APIKey == "" {
		logger.Warn("MARKET_DATA_API_KEY not set, market data endpoints will not work")
	}

	authConfig := auth.LoadConfigFromEnv()

	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	api.SetupRoutes(mux, db, catalogService, llmClient, marketProvider, authConfig, logger)

	// Serve the built React frontend for everything that is not an API route
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "./frontend/dist"
	}
	handler := server.SPAMiddleware(collector.InstrumentHandler(mux), staticDir, filepath.Join(staticDir, "index.html"))

	srv := server.New(cfg.Server, logger, handler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("failed to shut down cleanly", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
