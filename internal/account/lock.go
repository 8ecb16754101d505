package account

import "sync"

// Locker serializes read-modify-write sequences per account. Login, progress
// updates and achievement evaluation are check-then-act over the same record,
// so concurrent requests for one account must queue; unrelated accounts
// proceed in parallel. Entries are reference counted and evicted once the
// last holder releases, so the map stays bounded by in-flight requests.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	sync.Mutex
	refs int
}

func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*accountLock)}
}

// Lock acquires the mutex for the given account id and returns its unlock
// function.
func (l *Locker) Lock(id string) func() {
	l.mu.Lock()
	m, ok := l.locks[id]
	if !ok {
		m = &accountLock{}
		l.locks[id] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()

		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
