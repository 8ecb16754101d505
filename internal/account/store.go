package account

import (
	"context"
	"time"
)

// Stats is the aggregate view exposed on the admin surface.
type Stats struct {
	TotalUsers    int `json:"total_users"`
	VerifiedUsers int `json:"verified_users"`
	LockedUsers   int `json:"locked_users"`
}

// Store is the persistence contract for accounts. Lookups return ErrNotFound
// when no account matches. Implementations must return copies; callers own
// whatever they get back.
type Store interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	FindByVerificationToken(ctx context.Context, token string) (*Account, error)
	FindByResetToken(ctx context.Context, token string) (*Account, error)
	Save(ctx context.Context, a *Account) error
	Stats(ctx context.Context, now time.Time) (Stats, error)
}
