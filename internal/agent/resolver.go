// Package agent resolves which upstream agent identity and credentials a
// request should use.
package agent

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/darnellt0/7-days-to-calm/internal/config"
	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// ConfigError indicates a mandatory configuration value is absent.
// It is fatal to the request, not to the process.
type ConfigError struct {
	Missing string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("missing required environment variable: %s", e.Missing)
}

// Resolver produces the agent identity for each issuance call.
type Resolver struct {
	cfg *config.Config
}

// NewResolver creates a resolver backed by the configuration snapshot.
func NewResolver(cfg *config.Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve returns the identity to use for a signed-URL request.
//
// The provider API key has no default: without it every URL the broker
// could produce would be broken or insecure, so absence is a hard
// failure. The agent ID falls back to config.DefaultAgentID, with a
// warning each time, so a misconfigured deployment is loud in the logs
// but still demoable.
func (r *Resolver) Resolve() (models.AgentIdentity, error) {
	if r.cfg.APIKey == "" {
		log.Error().Str("env", "ELEVENLABS_API_KEY").Msg("Missing required environment variable")
		return models.AgentIdentity{}, &ConfigError{Missing: "ELEVENLABS_API_KEY"}
	}

	agentID := r.cfg.AgentID
	if agentID == "" {
		agentID = config.DefaultAgentID
		log.Warn().
			Str("default_agent_id", agentID).
			Msg("AGENT_ID not set; falling back to default. Configure AGENT_ID for production.")
	}

	return models.AgentIdentity{AgentID: agentID, APIKey: r.cfg.APIKey}, nil
}

// AgentConfigured reports whether an explicit agent ID was provided.
func (r *Resolver) AgentConfigured() bool {
	return r.cfg.AgentID != ""
}

// AgentInUse returns the effective agent ID without logging.
func (r *Resolver) AgentInUse() string {
	if r.cfg.AgentID != "" {
		return r.cfg.AgentID
	}
	return config.DefaultAgentID
}
