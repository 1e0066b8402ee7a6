// Package server provides the HTTP REST API for the interview screener.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/interview-screener/internal/analysis"
	"github.com/jonathan/interview-screener/internal/batch"
	"github.com/jonathan/interview-screener/internal/llm"
	"github.com/jonathan/interview-screener/internal/questions"
	"github.com/jonathan/interview-screener/internal/scoring"
	"github.com/jonathan/interview-screener/internal/store"
	"github.com/jonathan/interview-screener/internal/transcript"
)

// Config holds server configuration.
type Config struct {
	Port               int
	BaseURL            string
	WebhookSecret      string
	JWTSecret          string
	JWTExpirationHours int
	BatchSize          int
	SessionTTLHours    int
	MaxConcurrentLLM   int64
}

// Server represents the HTTP server. Handlers are thin glue: decode, validate,
// call the core components, encode.
type Server struct {
	httpServer *http.Server
	repo       store.Repository
	client     llm.Client
	logger     *zap.Logger

	jobs      *analysis.JobAnalyzer
	processor *batch.Processor
	generator *questions.Generator
	scorer    *scoring.Scorer
	tokens    *TokenService
	validate  *validator.Validate

	baseURL       string
	webhookSecret string
	batchSize     int
	sessionTTL    time.Duration
}

// New creates a server wired to the given repository and completion client.
func New(cfg Config, repo store.Repository, client llm.Client, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = batch.DefaultBatchSize
	}
	if cfg.SessionTTLHours <= 0 {
		cfg.SessionTTLHours = 72
	}
	if cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("webhook secret is required")
	}

	tokens, err := NewTokenService(cfg.JWTSecret, cfg.JWTExpirationHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	resumes := analysis.NewResumeAnalyzer(client, logger)
	names := analysis.NewNameExtractor(client, logger)

	s := &Server{
		repo:   repo,
		client: client,
		logger: logger,

		jobs:      analysis.NewJobAnalyzer(client, logger),
		processor: batch.NewProcessor(resumes, names, cfg.MaxConcurrentLLM, logger),
		generator: questions.NewGenerator(client, logger),
		scorer:    scoring.NewScorer(client, transcript.DefaultMarkers(), logger),
		tokens:    tokens,
		validate:  validator.New(),

		baseURL:       cfg.BaseURL,
		webhookSecret: cfg.WebhookSecret,
		batchSize:     cfg.BatchSize,
		sessionTTL:    time.Duration(cfg.SessionTTLHours) * time.Hour,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Job endpoints
	mux.HandleFunc("POST /jobs", s.handleCreateJob)
	mux.HandleFunc("GET /jobs", s.handleListJobs)
	mux.HandleFunc("GET /jobs/{id}", s.handleGetJob)
	mux.HandleFunc("DELETE /jobs/{id}", s.handleDeleteJob)

	// Interview setup endpoints
	mux.HandleFunc("POST /jobs/{id}/setups", s.handleSaveSetup)
	mux.HandleFunc("GET /jobs/{id}/setups", s.handleListSetups)
	mux.HandleFunc("DELETE /setups/{id}", s.handleDeleteSetup)

	// Resume screening endpoints
	mux.HandleFunc("POST /jobs/{id}/resumes", s.handleUploadResumes)
	mux.HandleFunc("GET /jobs/{id}/status", s.handleProcessingStatus)
	mux.HandleFunc("GET /jobs/{id}/results", s.handleListResults)
	mux.HandleFunc("GET /jobs/{id}/results/{resume_id}", s.handleGetResult)

	// Interview session endpoints
	mux.HandleFunc("POST /jobs/{id}/results/{resume_id}/interview-link", s.handleGenerateInterviewLink)
	mux.HandleFunc("GET /jobs/{id}/sessions", s.handleListSessions)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("POST /sessions/{id}/rescore", s.handleRescoreSession)

	// Transcript provider webhook
	mux.HandleFunc("POST /webhooks/transcript", s.handleTranscriptWebhook)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Pool generation holds the request open
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-stop
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.repo.Close()
	s.logger.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Webhook-Signature")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{
		"status": "error",
		"error":  message,
	})
}
