package onboarding

import (
	"context"

	coreport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/core"
	obport "github.com/amirhossein-jamali/wallet-ledger/internal/domain/port/onboarding"
)

// Verdict is the guard's definite answer on whether a prospective user
// may be admitted. When Admissible is false, Reason is always populated.
type Verdict struct {
	Admissible bool
	Reason     string
}

// Guard resolves whether a prospective user may be admitted, consulting
// the external reputation service with a fail-closed policy: a transport
// error, timeout, non-success status or malformed response all resolve to
// rejection, exactly like an explicit blacklist verdict. A single attempt
// is made per call; the caller's own registration retry is the retry path.
type Guard struct {
	client obport.ReputationClient
	logger coreport.Logger
}

// NewGuard creates a new onboarding guard
func NewGuard(client obport.ReputationClient, logger coreport.Logger) *Guard {
	return &Guard{
		client: client,
		logger: logger,
	}
}

// CheckAdmissible screens the email and phone number against the
// reputation service. Every code path returns a definite verdict.
func (g *Guard) CheckAdmissible(ctx context.Context, email, phoneNumber string) Verdict {
	report, err := g.client.Check(ctx, email, phoneNumber)
	if err != nil {
		g.logger.Warn("Reputation check failed, rejecting registration", map[string]any{
			"email": email,
			"error": err.Error(),
		})
		return Verdict{
			Admissible: false,
			Reason:     "reputation check unavailable: " + err.Error(),
		}
	}

	if report == nil {
		g.logger.Warn("Reputation check returned no report, rejecting registration", map[string]any{
			"email": email,
		})
		return Verdict{
			Admissible: false,
			Reason:     "reputation check returned an empty verdict",
		}
	}

	if report.Blacklisted {
		reason := report.Reason
		if reason == "" {
			reason = "identity is blacklisted"
		}
		g.logger.Info("Registration rejected by reputation service", map[string]any{
			"email":  email,
			"reason": reason,
		})
		return Verdict{Admissible: false, Reason: reason}
	}

	g.logger.Debug("Reputation check passed", map[string]any{
		"email": email,
	})
	return Verdict{Admissible: true}
}
