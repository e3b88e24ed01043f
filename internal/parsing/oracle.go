package parsing

import (
	"context"

	"github.com/jonathan/resume-ats/internal/types"
)

// Oracle is an external parser that may supply a complete profile in place of
// the rule-based pipeline. Implementations may block on network calls and must
// honour ctx cancellation.
type Oracle interface {
	ParseProfile(ctx context.Context, text string) (*types.CandidateProfile, error)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context, text string) (*types.CandidateProfile, error)

// ParseProfile calls f.
func (f OracleFunc) ParseProfile(ctx context.Context, text string) (*types.CandidateProfile, error) {
	return f(ctx, text)
}
