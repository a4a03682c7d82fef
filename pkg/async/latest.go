package async

import (
	"context"
	"sync"
)

// Ticket identifies one unit of work started through Latest.
type Ticket struct {
	Key        string
	Generation uint64
}

// Latest tracks the newest unit of work per key. Starting new work for a
// key supersedes the previous one: its context is cancelled and its
// ticket stops being current, so late results can be recognised and
// dropped (last write wins).
type Latest struct {
	mu      sync.Mutex
	gens    map[string]uint64
	cancels map[string]context.CancelFunc
}

// NewLatest returns an empty tracker.
func NewLatest() *Latest {
	return &Latest{
		gens:    make(map[string]uint64),
		cancels: make(map[string]context.CancelFunc),
	}
}

// Begin supersedes any outstanding work for key and returns a ticket plus
// a context derived from parent that is cancelled when the work is
// superseded or cancelled.
func (l *Latest) Begin(parent context.Context, key string) (Ticket, context.Context) {
	ctx, cancel := context.WithCancel(parent)

	l.mu.Lock()
	defer l.mu.Unlock()

	if prev, ok := l.cancels[key]; ok {
		prev()
	}
	l.gens[key]++
	l.cancels[key] = cancel

	return Ticket{Key: key, Generation: l.gens[key]}, ctx
}

// Finish marks t as done if it is current. It reports whether it was.
// A finished ticket is no longer current.
func (l *Latest) Finish(t Ticket) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	cancel, outstanding := l.cancels[t.Key]
	if !outstanding || l.gens[t.Key] != t.Generation {
		return false
	}
	delete(l.cancels, t.Key)
	cancel()
	return true
}

// Cancel supersedes outstanding work for key without starting new work.
func (l *Latest) Cancel(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if cancel, ok := l.cancels[key]; ok {
		cancel()
		delete(l.cancels, key)
	}
	l.gens[key]++
}

// CancelAll cancels outstanding work for every key.
func (l *Latest) CancelAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for key, cancel := range l.cancels {
		cancel()
		delete(l.cancels, key)
		l.gens[key]++
	}
}

// Outstanding returns the number of keys with work in flight.
func (l *Latest) Outstanding() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cancels)
}
