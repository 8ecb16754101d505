// Package attempts keeps the append-only login attempt ledger used for
// lockout auditing. Recording never blocks a login decision.
package attempts

import (
	"context"
	"time"
)

// RetentionCap bounds the ledger; older entries are pruned.
const RetentionCap = 1000

type Record struct {
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
	Success    bool      `json:"success"`
	SourceAddr string    `json:"source_addr,omitempty"`
}

// Ledger stores login attempts in recency order, newest first on read.
type Ledger interface {
	Record(ctx context.Context, r Record) error
	For(ctx context.Context, email string) ([]Record, error)
	All(ctx context.Context) ([]Record, error)
}
