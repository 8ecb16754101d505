package sessions

import (
	"context"
	"sync"
)

type MemoryLog struct {
	mu       sync.RWMutex
	sessions []Session
}

func NewMemoryLog() *MemoryLog {
	return &MemoryLog{}
}

func (l *MemoryLog) Append(_ context.Context, s Session) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.sessions = append(l.sessions, s)
	return nil
}

func (l *MemoryLog) For(_ context.Context, userID string, limit int) ([]Session, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Session
	for i := len(l.sessions) - 1; i >= 0 && len(out) < limit; i-- {
		if l.sessions[i].UserID == userID {
			out = append(out, l.sessions[i])
		}
	}
	return out, nil
}
