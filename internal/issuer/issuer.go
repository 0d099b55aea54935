// Package issuer produces signed connection URLs that let a browser open
// a live voice conversation scoped to a specific challenge day.
//
// Two strategies exist and are never active simultaneously:
//
//   - ProviderIssuer (default) delegates signing to the upstream
//     provider. It tries the agent-scoped capability that accepts
//     structured context, and degrades to the identity-scoped capability
//     with the day context appended to the URL.
//   - TokenIssuer signs a compact claim set itself and embeds the token
//     in a provider-shaped conversation URL. There is nothing to fall
//     back to on this path.
package issuer

import (
	"context"
	"fmt"

	"github.com/darnellt0/7-days-to-calm/internal/agent"
	"github.com/darnellt0/7-days-to-calm/internal/config"
	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// contextParam is the query parameter / body field carrying the
// challenge-day context to the agent. The name is part of the provider's
// widget contract.
const contextParam = "custom_llm_extra_body"

// Issuer mints a signed URL for a challenge day.
type Issuer interface {
	Issue(ctx context.Context, day int) (*models.SignedURL, error)
}

// IssueError wraps the last observed upstream cause when no usable URL
// could be produced. Callers never see raw transport errors.
type IssueError struct {
	Cause error
}

func (e *IssueError) Error() string {
	return fmt.Sprintf("signed url issuance failed: %v", e.Cause)
}

func (e *IssueError) Unwrap() error { return e.Cause }

// FromConfig selects the active strategy.
func FromConfig(cfg *config.Config, resolver *agent.Resolver) Issuer {
	if cfg.Strategy == config.StrategyToken {
		return NewTokenIssuer(cfg, resolver)
	}
	return NewProviderIssuer(cfg, resolver)
}
