package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/config"
	"github.com/jonathan/interview-screener/internal/llm"
	"github.com/jonathan/interview-screener/internal/logger"
	"github.com/jonathan/interview-screener/internal/server"
	"github.com/jonathan/interview-screener/internal/store"
)

var (
	serveJSONLogs bool
	serveDebug    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for resume screening, interview setup, and transcript scoring.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveJSONLogs, "json-logs", true, "Emit JSON-encoded logs")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(serveJSONLogs, serveDebug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	repo, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}

	llmConfig := llm.DefaultConfig()
	llmConfig.MaxConcurrent = cfg.MaxConcurrentLLM
	llmConfig.MaxRetries = cfg.MaxRetries
	if cfg.LiteModel != "" {
		llmConfig = llmConfig.WithModel(llm.TierLite, cfg.LiteModel)
	}
	if cfg.StandardModel != "" {
		llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.StandardModel)
	}
	if cfg.AdvancedModel != "" {
		llmConfig = llmConfig.WithModel(llm.TierAdvanced, cfg.AdvancedModel)
	}

	client, err := llm.NewGeminiClient(ctx, llmConfig, cfg.APIKey, log)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		BaseURL:            cfg.BaseURL,
		WebhookSecret:      cfg.WebhookSecret,
		JWTSecret:          cfg.JWTSecret,
		JWTExpirationHours: cfg.JWTExpirationHours,
		BatchSize:          cfg.BatchSize,
		SessionTTLHours:    cfg.SessionTTLHours,
		MaxConcurrentLLM:   cfg.MaxConcurrentLLM,
	}, repo, client, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// openStore selects Postgres when DATABASE_URL is set, the in-memory store
// otherwise.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (store.Repository, error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL not set, using in-memory store; data is lost on restart")
		return store.NewMemory(), nil
	}
	pg, err := store.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return pg, nil
}
