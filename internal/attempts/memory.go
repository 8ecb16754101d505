package attempts

import (
	"context"
	"sync"
)

type MemoryLedger struct {
	mu      sync.RWMutex
	records []Record
	cap     int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{cap: RetentionCap}
}

func (l *MemoryLedger) Record(_ context.Context, r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = append(l.records, r)
	if len(l.records) > l.cap {
		l.records = l.records[len(l.records)-l.cap:]
	}
	return nil
}

func (l *MemoryLedger) For(_ context.Context, email string) ([]Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []Record
	for i := len(l.records) - 1; i >= 0; i-- {
		if l.records[i].Email == email {
			out = append(out, l.records[i])
		}
	}
	return out, nil
}

func (l *MemoryLedger) All(_ context.Context) ([]Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, 0, len(l.records))
	for i := len(l.records) - 1; i >= 0; i-- {
		out = append(out, l.records[i])
	}
	return out, nil
}
