package cart

import "sync"

// userLocks serializes mutations per user id. Two rapid mutations from the
// same user would otherwise both read the same prior items map and the
// store's last-writer-wins Replace would drop one of them.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) lock(key string) *sync.Mutex {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m
}
