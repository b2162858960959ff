package probe

import (
	"context"

	"github.com/hamed0406/urlpinger/internal/domain"
)

// Outcome is what a single GET produced.
//
// StatusCode is the server's status when Cause is empty and
// domain.SentinelStatus otherwise.
type Outcome struct {
	StatusCode int
	Cause      domain.Cause
}

// Checker performs one GET against a target. Implementations must be safe
// for concurrent use.
type Checker interface {
	Check(ctx context.Context, target string) Outcome
}
