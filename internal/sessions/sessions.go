// Package sessions records per-user study sessions, the raw activity feed
// behind the progress dashboard.
package sessions

import (
	"context"
	"time"
)

type Session struct {
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Activity  string    `json:"activity"`
	Duration  int       `json:"duration"`
	Score     *int      `json:"score,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type Log interface {
	Append(ctx context.Context, s Session) error
	For(ctx context.Context, userID string, limit int) ([]Session, error)
}
