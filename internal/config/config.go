// Package config loads the broker configuration from environment
// variables into an immutable snapshot taken once at process start.
// Business logic never reads the process environment directly; it reads
// the snapshot handed to it at construction time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultAgentID is the fallback agent identity used when AGENT_ID is
// unset. Running production on this fallback is a deployment error; the
// agent resolver logs a warning every time it is used.
const DefaultAgentID = "agent_4201k708pqxsed39y0vsz05gn66e"

// RequiredEnv lists the environment variables that must be present for
// signed-URL issuance to work. Health reporting is keyed off this list.
var RequiredEnv = []string{"ELEVENLABS_API_KEY"}

// Strategy selects how signed URLs are issued.
type Strategy string

const (
	// StrategyProvider delegates signing to the upstream provider
	// (default; the signing secret stays with the provider).
	StrategyProvider Strategy = "provider"
	// StrategyToken self-issues a signed token and embeds it in a
	// provider-shaped conversation URL.
	StrategyToken Strategy = "token"
)

// Config holds all configuration for the broker.
type Config struct {
	Port    int
	Version string

	// Upstream provider
	APIKey      string
	AgentID     string // empty means "use DefaultAgentID with a warning"
	ProviderURL string
	Strategy    Strategy

	// Self-issued token strategy
	SigningSecret string

	// Tool callback authorization; empty disables the guard
	ToolBearerToken string

	// Exact-origin CORS allowlist
	AllowedOrigins []string

	Telemetry TelemetryConfig
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

// defaultOrigins are the exact origins the frontend is served from.
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:3001",
	"http://127.0.0.1:3001",
	"http://localhost:3003",
	"http://127.0.0.1:3003",
	"https://7-days-to-calm.vercel.app",
	"https://7dtc.elevatedmovements.com",
	"https://7-days-to-calm.elevatedmovements.com",
	"https://elevatedmovements.com",
	"https://www.elevatedmovements.com",
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:            envInt("PORT", 8000),
		Version:         envStr("CALM_VERSION", "0.2.0"),
		APIKey:          os.Getenv("ELEVENLABS_API_KEY"),
		AgentID:         os.Getenv("AGENT_ID"),
		ProviderURL:     envStr("ELEVENLABS_API_URL", "https://api.elevenlabs.io"),
		Strategy:        Strategy(envStr("SIGNED_URL_STRATEGY", string(StrategyProvider))),
		SigningSecret:   os.Getenv("CONVAI_SIGNING_SECRET"),
		ToolBearerToken: os.Getenv("TOOL_BEARER_TOKEN"),
		AllowedOrigins:  envList("CORS_ALLOWLIST", defaultOrigins),
		Telemetry: TelemetryConfig{
			Enabled:      envBool("OTEL_ENABLED", false),
			OTLPEndpoint: envStr("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			ServiceName:  envStr("OTEL_SERVICE_NAME", "calm-voice-broker"),
		},
	}
}

// Validate rejects configurations that would operate insecurely. A
// missing provider API key is tolerated here (health reports it and each
// issuance fails with a configuration error), but a missing or
// placeholder signing secret under the token strategy is fatal: the
// process would silently mint tokens anyone can forge.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategyProvider:
	case StrategyToken:
		if c.SigningSecret == "" || c.SigningSecret == "change-me" {
			return fmt.Errorf("CONVAI_SIGNING_SECRET must be set to a real secret when SIGNED_URL_STRATEGY=token")
		}
	default:
		return fmt.Errorf("unknown SIGNED_URL_STRATEGY %q (want %q or %q)", c.Strategy, StrategyProvider, StrategyToken)
	}
	return nil
}

// MissingEnv returns the names of required variables that are unset.
func (c *Config) MissingEnv() []string {
	missing := []string{}
	if c.APIKey == "" {
		missing = append(missing, "ELEVENLABS_API_KEY")
	}
	return missing
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
