package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/darnellt0/7-days-to-calm/internal/agent"
	"github.com/darnellt0/7-days-to-calm/internal/config"
	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// ProviderIssuer obtains signed URLs from the upstream provider. The
// primary capability is agent-scoped and accepts the challenge day as a
// structured body field; when it fails for any reason (transport error,
// non-2xx, missing URL field) the issuer makes exactly one fallback call
// to the identity-scoped capability and carries the day context on the
// URL itself.
type ProviderIssuer struct {
	cfg      *config.Config
	resolver *agent.Resolver
	client   *http.Client
}

// NewProviderIssuer creates the provider-delegated issuer with a bounded
// upstream client. Worst-case latency is two upstream round trips.
func NewProviderIssuer(cfg *config.Config, resolver *agent.Resolver) *ProviderIssuer {
	return &ProviderIssuer{
		cfg:      cfg,
		resolver: resolver,
		client: &http.Client{
			Timeout: 8 * time.Second,
		},
	}
}

// signedURLPayload is the provider's URL-bearing response. Providers have
// renamed the field across versions, so both spellings are decoded and
// checked in order: signed_url, then url.
type signedURLPayload struct {
	SignedURL string `json:"signed_url"`
	URL       string `json:"url"`
}

func (p signedURLPayload) value() string {
	if p.SignedURL != "" {
		return p.SignedURL
	}
	return p.URL
}

// Issue resolves the agent identity and runs the primary/fallback chain.
func (pi *ProviderIssuer) Issue(ctx context.Context, day int) (*models.SignedURL, error) {
	identity, err := pi.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	signed, err := pi.issuePrimary(ctx, identity, day)
	if err == nil {
		return &models.SignedURL{URL: signed, ChallengeDay: day, Path: models.PathPrimary}, nil
	}
	log.Warn().
		Err(err).
		Str("agent_id", identity.AgentID).
		Int("challenge_day", day).
		Msg("Primary signed-url request failed, attempting fallback")

	signed, err = pi.issueFallback(ctx, identity, day)
	if err != nil {
		return nil, &IssueError{Cause: err}
	}
	return &models.SignedURL{URL: signed, ChallengeDay: day, Path: models.PathFallback}, nil
}

// issuePrimary calls the agent-scoped signed-url capability, passing the
// challenge day as structured context the agent reads at conversation
// start.
func (pi *ProviderIssuer) issuePrimary(ctx context.Context, identity models.AgentIdentity, day int) (string, error) {
	body, _ := json.Marshal(map[string]interface{}{
		contextParam: map[string]int{"challenge_day": day},
	})

	endpoint := fmt.Sprintf("%s/v1/convai/agents/%s/signed-url",
		strings.TrimRight(pi.cfg.ProviderURL, "/"), url.PathEscape(identity.AgentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", identity.APIKey)

	resp, err := pi.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	var payload signedURLPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	signed := payload.value()
	if signed == "" {
		return "", fmt.Errorf("missing signed_url in agent response")
	}
	return signed, nil
}

// issueFallback calls the identity-scoped capability, which takes no
// structured context, then appends the day context as a URL-safe-encoded
// query parameter so the agent can still recover it.
func (pi *ProviderIssuer) issueFallback(ctx context.Context, identity models.AgentIdentity, day int) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/convai/conversation/get-signed-url?agent_id=%s",
		strings.TrimRight(pi.cfg.ProviderURL, "/"), url.QueryEscape(identity.AgentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("xi-api-key", identity.APIKey)

	resp, err := pi.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))
	}

	var payload signedURLPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	signed := payload.value()
	if signed == "" {
		return "", fmt.Errorf("signed url missing from provider response")
	}

	return appendDayContext(signed, day), nil
}

// appendDayContext attaches the challenge day to a signed URL as an
// encoded JSON query parameter, respecting any existing query string.
func appendDayContext(signed string, day int) string {
	contextJSON, _ := json.Marshal(map[string]int{"challenge_day": day})
	separator := "?"
	if strings.Contains(signed, "?") {
		separator = "&"
	}
	return signed + separator + contextParam + "=" + url.QueryEscape(string(contextJSON))
}
