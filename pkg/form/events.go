package form

import (
	"context"
	"sync"
)

// EventType names what changed in the form.
type EventType string

const (
	EventValueChanged   EventType = "value_changed"
	EventCheckStarted   EventType = "check_started"
	EventCheckResolved  EventType = "check_resolved"
	EventCheckDiscarded EventType = "check_discarded"
	EventReset          EventType = "reset"
	EventSubmitted      EventType = "submitted"
)

// Event is delivered to subscribers after each state change. Field is
// empty for form-wide events.
type Event struct {
	Type     EventType
	Field    string
	Snapshot Snapshot
}

// Subscription receives form events until it is closed, its context ends
// or the form is closed.
type Subscription struct {
	ch     chan Event
	done   chan struct{}
	closed bool
	mu     sync.RWMutex
	hub    *eventHub
}

// C returns the event channel. It is closed when the subscription ends.
func (s *Subscription) C() <-chan Event {
	return s.ch
}

// Close ends the subscription. It is idempotent.
func (s *Subscription) Close() error {
	s.hub.unsubscribe(s)
	return nil
}

func (s *Subscription) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		close(s.ch)
		close(s.done)
		s.closed = true
	}
}

// send never blocks: a full buffer drops the event for this subscriber.
func (s *Subscription) send(ev Event) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- ev:
		return true
	default:
		return false
	}
}

type eventHub struct {
	subs       map[*Subscription]struct{}
	bufferSize int
	closed     bool
	mu         sync.RWMutex
	cleanupWg  sync.WaitGroup
}

func newEventHub(bufferSize int) *eventHub {
	return &eventHub{
		subs:       make(map[*Subscription]struct{}),
		bufferSize: max(bufferSize, 1),
	}
}

func (h *eventHub) subscribe(ctx context.Context) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &Subscription{
		ch:   make(chan Event, h.bufferSize),
		done: make(chan struct{}),
		hub:  h,
	}
	if h.closed {
		sub.close()
		return sub
	}
	h.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		h.cleanupWg.Add(1)
		go func() {
			defer h.cleanupWg.Done()
			select {
			case <-ctx.Done():
				h.unsubscribe(sub)
			case <-sub.done:
			}
		}()
	}
	return sub
}

func (h *eventHub) publish(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return
	}
	for sub := range h.subs {
		sub.send(ev)
	}
}

func (h *eventHub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
	sub.close()
}

func (h *eventHub) close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	for sub := range h.subs {
		sub.close()
	}
	clear(h.subs)
	h.mu.Unlock()

	h.cleanupWg.Wait()
}
