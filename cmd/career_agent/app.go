package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/career-agent/internal/agents"
	"github.com/jonathan/career-agent/internal/config"
	"github.com/jonathan/career-agent/internal/db"
	"github.com/jonathan/career-agent/internal/llm"
	"github.com/jonathan/career-agent/internal/logger"
	"github.com/jonathan/career-agent/internal/observer"
	"github.com/jonathan/career-agent/internal/orchestrator"
)

// app holds the composed service: every collaborator built and wired once.
type app struct {
	cfg          config.Config
	log          *zap.Logger
	database     *db.DB
	gateway      *llm.Gateway
	orchestrator *orchestrator.Orchestrator
}

// loadConfig merges config file (when given), environment and flag values.
func loadConfig(configPath string) (config.Config, error) {
	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = cfg.MergeWithDefaults(*fileCfg)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	return cfg, nil
}

// newApp builds the full dependency graph.
func newApp(ctx context.Context, cfg config.Config) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	backend, err := llm.NewGeminiBackend(ctx, cfg.APIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create model backend: %w", err)
	}

	models := llm.DefaultConfig()
	if cfg.Model != "" {
		models.Primary = cfg.Model
	}
	if len(cfg.FallbackModels) > 0 {
		models.Fallbacks = cfg.FallbackModels
	}

	gateway := llm.NewGateway(backend, models, log)

	orch := orchestrator.New(orchestrator.Deps{
		Observer:  observer.New(database, log),
		Reasoning: agents.NewReasoningAgent(gateway, log),
		SkillGap:  agents.NewSkillGapAgent(gateway, log),
		Planner:   agents.NewPlannerAgent(gateway, log),
		Feedback:  agents.NewFeedbackAgent(gateway, log),
		Chatter:   gateway,
		Store:     database,
		Logger:    log,
	})

	return &app{
		cfg:          cfg,
		log:          log,
		database:     database,
		gateway:      gateway,
		orchestrator: orch,
	}, nil
}

// close releases the app's resources.
func (a *app) close() {
	if err := a.gateway.Close(); err != nil {
		a.log.Warn("failed to close gateway", zap.Error(err))
	}
	a.database.Close()
	_ = a.log.Sync()
}
