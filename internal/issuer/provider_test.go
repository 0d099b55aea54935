package issuer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/darnellt0/7-days-to-calm/internal/agent"
	"github.com/darnellt0/7-days-to-calm/internal/config"
	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

func newProviderIssuer(t *testing.T, upstream string) *ProviderIssuer {
	t.Helper()
	cfg := &config.Config{
		APIKey:      "sk-test",
		AgentID:     "agent_test",
		ProviderURL: upstream,
	}
	return NewProviderIssuer(cfg, agent.NewResolver(cfg))
}

func TestIssue_PrimarySuccess(t *testing.T) {
	var gotBody map[string]interface{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || !strings.Contains(r.URL.Path, "/v1/convai/agents/agent_test/signed-url") {
			t.Errorf("unexpected primary request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("xi-api-key"); got != "sk-test" {
			t.Errorf("xi-api-key = %q, want sk-test", got)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]string{"signed_url": "wss://live.example/session?token=abc"})
	}))
	defer upstream.Close()

	pi := newProviderIssuer(t, upstream.URL)
	signed, err := pi.Issue(context.Background(), 3)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if signed.URL != "wss://live.example/session?token=abc" {
		t.Errorf("URL = %q", signed.URL)
	}
	if signed.ChallengeDay != 3 {
		t.Errorf("ChallengeDay = %d, want 3", signed.ChallengeDay)
	}
	if signed.Path != models.PathPrimary {
		t.Errorf("Path = %q, want primary", signed.Path)
	}

	extra, ok := gotBody["custom_llm_extra_body"].(map[string]interface{})
	if !ok {
		t.Fatalf("primary request body missing custom_llm_extra_body: %v", gotBody)
	}
	if day, _ := extra["challenge_day"].(float64); int(day) != 3 {
		t.Errorf("challenge_day in body = %v, want 3", extra["challenge_day"])
	}
}

func TestIssue_PrimaryAcceptsRenamedURLField(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "wss://live.example/renamed"})
	}))
	defer upstream.Close()

	signed, err := newProviderIssuer(t, upstream.URL).Issue(context.Background(), 1)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if signed.URL != "wss://live.example/renamed" {
		t.Errorf("URL = %q, want value from renamed field", signed.URL)
	}
	if signed.Path != models.PathPrimary {
		t.Errorf("Path = %q, want primary", signed.Path)
	}
}

func TestIssue_FallbackOnPrimaryFailure(t *testing.T) {
	fallbackCalls := 0
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			http.Error(w, "agent api unavailable", http.StatusBadGateway)
			return
		}
		fallbackCalls++
		if got := r.URL.Query().Get("agent_id"); got != "agent_test" {
			t.Errorf("fallback agent_id = %q, want agent_test", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"signed_url": "https://host/path?x=1"})
	}))
	defer upstream.Close()

	signed, err := newProviderIssuer(t, upstream.URL).Issue(context.Background(), 3)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if signed.Path != models.PathFallback {
		t.Errorf("Path = %q, want fallback", signed.Path)
	}
	if fallbackCalls != 1 {
		t.Errorf("fallback called %d times, want exactly 1", fallbackCalls)
	}

	// Day context must ride on the URL since the fallback endpoint
	// cannot carry it natively.
	wantSuffix := "&custom_llm_extra_body=" + url.QueryEscape(`{"challenge_day":3}`)
	if !strings.HasSuffix(signed.URL, wantSuffix) {
		t.Errorf("URL = %q, want suffix %q", signed.URL, wantSuffix)
	}
	if !strings.HasPrefix(signed.URL, "https://host/path?x=1") {
		t.Errorf("URL = %q, want original fallback URL preserved", signed.URL)
	}
}

func TestIssue_FallbackOnMissingPrimaryField(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			// 200 but no URL under any accepted field name
			json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"url": "https://host/bare"})
	}))
	defer upstream.Close()

	signed, err := newProviderIssuer(t, upstream.URL).Issue(context.Background(), 5)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if signed.Path != models.PathFallback {
		t.Errorf("Path = %q, want fallback", signed.Path)
	}
	// No existing query string: context appended with "?"
	if !strings.Contains(signed.URL, "https://host/bare?custom_llm_extra_body=") {
		t.Errorf("URL = %q, want ? separator before context", signed.URL)
	}
}

func TestIssue_BothPathsFail(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	_, err := newProviderIssuer(t, upstream.URL).Issue(context.Background(), 2)
	if err == nil {
		t.Fatal("Issue() should fail when both paths fail")
	}
	var issueErr *IssueError
	if !errors.As(err, &issueErr) {
		t.Fatalf("error = %T, want *IssueError", err)
	}
}

func TestIssue_FallbackMissingURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			http.Error(w, "down", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer upstream.Close()

	_, err := newProviderIssuer(t, upstream.URL).Issue(context.Background(), 1)
	if err == nil {
		t.Fatal("Issue() should fail when fallback omits the URL")
	}
	if !strings.Contains(err.Error(), "signed url missing from provider response") {
		t.Errorf("error = %q, want missing-url cause", err)
	}
}

func TestIssue_MissingAPIKeyPropagatesConfigError(t *testing.T) {
	cfg := &config.Config{AgentID: "agent_test", ProviderURL: "http://unused.invalid"}
	pi := NewProviderIssuer(cfg, agent.NewResolver(cfg))

	_, err := pi.Issue(context.Background(), 1)
	var cfgErr *agent.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error = %T (%v), want *agent.ConfigError unchanged", err, err)
	}
}

func TestAppendDayContext(t *testing.T) {
	tests := []struct {
		in   string
		day  int
		want string
	}{
		{"https://h/p", 4, "https://h/p?custom_llm_extra_body=" + url.QueryEscape(`{"challenge_day":4}`)},
		{"https://h/p?a=1", 7, "https://h/p?a=1&custom_llm_extra_body=" + url.QueryEscape(`{"challenge_day":7}`)},
	}
	for _, tt := range tests {
		if got := appendDayContext(tt.in, tt.day); got != tt.want {
			t.Errorf("appendDayContext(%q, %d) = %q, want %q", tt.in, tt.day, got, tt.want)
		}
	}
}
