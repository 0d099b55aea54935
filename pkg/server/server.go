// Package server provides the public entry point for initializing the
// voice broker server.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/darnellt0/7-days-to-calm/internal/agent"
	"github.com/darnellt0/7-days-to-calm/internal/api"
	"github.com/darnellt0/7-days-to-calm/internal/api/handlers"
	"github.com/darnellt0/7-days-to-calm/internal/auth"
	"github.com/darnellt0/7-days-to-calm/internal/config"
	"github.com/darnellt0/7-days-to-calm/internal/goals"
	"github.com/darnellt0/7-days-to-calm/internal/issuer"
	"github.com/darnellt0/7-days-to-calm/internal/store"
	"github.com/darnellt0/7-days-to-calm/internal/telemetry"
)

// Server holds the initialized broker.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc func(context.Context) error
}

// New initializes all broker components from the environment.
func New(ctx context.Context) (*Server, error) {
	return NewWithConfig(ctx, config.Load())
}

// NewWithConfig initializes the broker with an explicit configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if missing := cfg.MissingEnv(); len(missing) > 0 {
		log.Error().Strs("missing", missing).Msg("Startup missing required environment variables")
	} else {
		log.Info().Msg("All required environment variables present")
	}

	shutdown, err := telemetry.Init(cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	resolver := agent.NewResolver(cfg)
	iss := issuer.FromConfig(cfg, resolver)
	guard := auth.NewGuard(cfg.ToolBearerToken)
	userStore := store.NewMemoryStore()

	log.Info().
		Str("strategy", string(cfg.Strategy)).
		Bool("tool_auth", guard.Enabled()).
		Msg("Broker initialized")

	h := handlers.New(cfg, resolver, iss, guard, goals.LogSink{}, userStore)
	router := api.NewRouter(cfg, h)

	return &Server{
		Handler:      router,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}
