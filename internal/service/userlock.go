package service

import "sync"

// userLock serializes survey operations per user so concurrent updates from
// the same chat cannot interleave. Locks are kept for the life of the
// process; the map only grows by distinct user, which stays small.
type userLock struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newUserLock() *userLock {
	return &userLock{locks: make(map[int64]*sync.Mutex)}
}

func (l *userLock) lock(userID int64) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}
