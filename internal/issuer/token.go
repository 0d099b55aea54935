package issuer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/darnellt0/7-days-to-calm/internal/agent"
	"github.com/darnellt0/7-days-to-calm/internal/config"
	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// tokenTTL bounds how long a self-issued conversation token is accepted.
const tokenTTL = 24 * time.Hour

// TokenIssuer self-issues signed conversation tokens instead of
// delegating signing to the provider. The token carries the agent ID and
// challenge day and is embedded as a query parameter on a
// provider-shaped conversation URL. There is no fallback on this path;
// config.Validate rejects placeholder signing secrets before the issuer
// is ever constructed.
type TokenIssuer struct {
	cfg      *config.Config
	resolver *agent.Resolver
	now      func() time.Time
}

// NewTokenIssuer creates the self-issued token strategy.
func NewTokenIssuer(cfg *config.Config, resolver *agent.Resolver) *TokenIssuer {
	return &TokenIssuer{cfg: cfg, resolver: resolver, now: time.Now}
}

// Issue signs {agent_id, challenge_day, iat, exp} with the shared secret
// and builds the conversation URL around it.
func (ti *TokenIssuer) Issue(ctx context.Context, day int) (*models.SignedURL, error) {
	identity, err := ti.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	issuedAt := ti.now().UTC()
	claims := jwt.MapClaims{
		"agent_id":      identity.AgentID,
		"challenge_day": day,
		"iat":           issuedAt.Unix(),
		"exp":           issuedAt.Add(tokenTTL).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ti.cfg.SigningSecret))
	if err != nil {
		return nil, &IssueError{Cause: fmt.Errorf("sign conversation token: %w", err)}
	}

	base := strings.TrimRight(ti.cfg.ProviderURL, "/")
	base = strings.Replace(base, "https://", "wss://", 1)
	signed := fmt.Sprintf("%s/v1/convai/conversation?agent_id=%s&token=%s",
		base, url.QueryEscape(identity.AgentID), url.QueryEscape(token))

	return &models.SignedURL{URL: signed, ChallengeDay: day, Path: models.PathPrimary}, nil
}
