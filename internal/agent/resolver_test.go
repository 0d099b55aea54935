package agent

import (
	"errors"
	"testing"

	"github.com/darnellt0/7-days-to-calm/internal/config"
)

func TestResolve_MissingAPIKey(t *testing.T) {
	r := NewResolver(&config.Config{AgentID: "agent_abc"})

	_, err := r.Resolve()
	if err == nil {
		t.Fatal("Resolve() with no API key should fail")
	}

	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Resolve() error = %T, want *ConfigError", err)
	}
	if cfgErr.Missing != "ELEVENLABS_API_KEY" {
		t.Errorf("ConfigError.Missing = %q, want ELEVENLABS_API_KEY", cfgErr.Missing)
	}
}

func TestResolve_ExplicitAgent(t *testing.T) {
	r := NewResolver(&config.Config{APIKey: "sk-test", AgentID: "agent_abc"})

	identity, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if identity.AgentID != "agent_abc" {
		t.Errorf("AgentID = %q, want agent_abc", identity.AgentID)
	}
	if identity.APIKey != "sk-test" {
		t.Errorf("APIKey = %q, want sk-test", identity.APIKey)
	}
	if !r.AgentConfigured() {
		t.Error("AgentConfigured() = false with explicit agent")
	}
}

func TestResolve_DefaultAgentFallback(t *testing.T) {
	r := NewResolver(&config.Config{APIKey: "sk-test"})

	identity, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if identity.AgentID != config.DefaultAgentID {
		t.Errorf("AgentID = %q, want default %q", identity.AgentID, config.DefaultAgentID)
	}
	if r.AgentConfigured() {
		t.Error("AgentConfigured() = true without explicit agent")
	}
	if r.AgentInUse() != config.DefaultAgentID {
		t.Errorf("AgentInUse() = %q, want default", r.AgentInUse())
	}
}
