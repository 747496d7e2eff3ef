package server

import (
	"sync"

	"github.com/google/uuid"
)

// documentLocks serialises read-modify-write cycles per document
type documentLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*documentLock
}

type documentLock struct {
	mu   sync.Mutex
	refs int
}

func newDocumentLocks() *documentLocks {
	return &documentLocks{locks: make(map[uuid.UUID]*documentLock)}
}

// lock blocks until the document is free and returns its unlock function
func (l *documentLocks) lock(id uuid.UUID) func() {
	l.mu.Lock()
	dl, ok := l.locks[id]
	if !ok {
		dl = &documentLock{}
		l.locks[id] = dl
	}
	dl.refs++
	l.mu.Unlock()

	dl.mu.Lock()
	return func() {
		dl.mu.Unlock()
		l.mu.Lock()
		dl.refs--
		if dl.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

func (l *documentLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
