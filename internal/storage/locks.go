package storage

import "sync"

// Locks hands out one mutex per namespace so a load-mutate-save cycle on a
// client's state is never interleaved with another request for the same client.
type Locks struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewLocks() *Locks {
	return &Locks{entries: make(map[string]*lockEntry)}
}

// Lock blocks until namespace is free and returns the matching unlock func.
func (l *Locks) Lock(namespace string) func() {
	l.mu.Lock()
	e, ok := l.entries[namespace]
	if !ok {
		e = &lockEntry{}
		l.entries[namespace] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.entries, namespace)
		}
		l.mu.Unlock()
	}
}

// Len reports how many namespaces are currently locked or waited on.
func (l *Locks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
