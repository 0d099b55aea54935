package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SIGNED_URL_STRATEGY", "")
	t.Setenv("CORS_ALLOWLIST", "")

	cfg := Load()

	if cfg.Port != 8000 {
		t.Errorf("Port = %d, want 8000", cfg.Port)
	}
	if cfg.Strategy != StrategyProvider {
		t.Errorf("Strategy = %q, want provider default", cfg.Strategy)
	}
	if len(cfg.AllowedOrigins) == 0 {
		t.Error("AllowedOrigins should have defaults")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ELEVENLABS_API_KEY", "sk-test")
	t.Setenv("AGENT_ID", "agent_custom")
	t.Setenv("CORS_ALLOWLIST", "https://a.example, https://b.example")

	cfg := Load()

	if cfg.Port != 9000 {
		t.Errorf("Port = %d, want 9000", cfg.Port)
	}
	if cfg.APIKey != "sk-test" || cfg.AgentID != "agent_custom" {
		t.Errorf("credentials not loaded: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("AllowedOrigins = %v, want trimmed pair", cfg.AllowedOrigins)
	}
}

func TestMissingEnv(t *testing.T) {
	cfg := &Config{}
	missing := cfg.MissingEnv()
	if len(missing) != 1 || missing[0] != "ELEVENLABS_API_KEY" {
		t.Errorf("MissingEnv() = %v, want [ELEVENLABS_API_KEY]", missing)
	}

	cfg.APIKey = "sk-test"
	if got := cfg.MissingEnv(); len(got) != 0 {
		t.Errorf("MissingEnv() = %v, want empty", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"provider strategy needs no secret", Config{Strategy: StrategyProvider}, false},
		{"token strategy with real secret", Config{Strategy: StrategyToken, SigningSecret: "a-long-random-secret"}, false},
		{"token strategy missing secret", Config{Strategy: StrategyToken}, true},
		{"token strategy placeholder secret", Config{Strategy: StrategyToken, SigningSecret: "change-me"}, true},
		{"unknown strategy", Config{Strategy: "magic"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
