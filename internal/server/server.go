// Package server provides the HTTP REST API for the career agent.
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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/config"
	"github.com/jonathan/career-agent/internal/orchestrator"
	"github.com/jonathan/career-agent/internal/types"
)

// Coach is the orchestrator surface the HTTP handlers call.
type Coach interface {
	RunFullAnalysis(ctx context.Context, userID uuid.UUID) orchestrator.Result
	AnalyzeAndPlan(ctx context.Context, userID uuid.UUID) orchestrator.Result
	SkillGaps(ctx context.Context, userID uuid.UUID, targetRole string) orchestrator.Result
	PrioritizeGaps(ctx context.Context, userID uuid.UUID, careerGoal string) orchestrator.Result
	ProcessFeedback(ctx context.Context, userID uuid.UUID, in types.FeedbackInput) orchestrator.Result
	WeeklyReport(ctx context.Context, userID uuid.UUID) orchestrator.Result
	DashboardData(ctx context.Context, userID uuid.UUID) orchestrator.Result
	OpportunityMatches(ctx context.Context, userID uuid.UUID) orchestrator.Result
	NextAction(ctx context.Context, userID uuid.UUID) types.Decision
	State(ctx context.Context, userID uuid.UUID) *types.Snapshot
	Memories(ctx context.Context, userID uuid.UUID, memType string, limit int) ([]types.Memory, error)
	Chat(ctx context.Context, userID uuid.UUID, message string) string
	ChatHistory(ctx context.Context, userID uuid.UUID) ([]types.ChatMessage, error)
	ClearChat(ctx context.Context, userID uuid.UUID) error
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	coach       Coach
	userService *UserService
	authHandler *AuthHandler
	jwtService  *JWTService
	log         *zap.Logger
}

// Config holds server configuration.
type Config struct {
	Port int
}

// New creates a new server instance.
func New(cfg Config, coach Coach, users UserStore, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}

	s := &Server{coach: coach, log: log}

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(users, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	protected := http.NewServeMux()
	protected.HandleFunc("POST /api/agent/analyze", s.handleAnalyze)
	protected.HandleFunc("POST /api/agent/plan", s.handlePlan)
	protected.HandleFunc("POST /api/agent/skills/gaps", s.handleSkillGaps)
	protected.HandleFunc("POST /api/agent/skills/prioritize", s.handlePrioritizeGaps)
	protected.HandleFunc("POST /api/agent/feedback/process", s.handleProcessFeedback)
	protected.HandleFunc("POST /api/agent/feedback/weekly-report", s.handleWeeklyReport)
	protected.HandleFunc("GET /api/agent/dashboard/{user_id}", s.handleDashboard)
	protected.HandleFunc("GET /api/agent/state/{user_id}", s.handleState)
	protected.HandleFunc("GET /api/agent/next-action/{user_id}", s.handleNextAction)
	protected.HandleFunc("GET /api/agent/opportunities/{user_id}", s.handleOpportunities)
	protected.HandleFunc("GET /api/agent/memory/{user_id}", s.handleMemories)
	protected.HandleFunc("POST /api/agent/chat", s.handleChat)
	protected.HandleFunc("GET /api/agent/chat/history/{user_id}", s.handleChatHistory)
	protected.HandleFunc("POST /api/agent/chat/clear/{user_id}", s.handleChatClear)
	mux.Handle("/api/", s.requireAuth(protected))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // analysis runs several model calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}

	s.log.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Warn("failed to encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
