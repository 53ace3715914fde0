package store

import (
	"sync"
)

// Store owns the current State. Pass it explicitly to whatever needs it; there
// is no package-level instance.
type Store struct {
	mu     sync.RWMutex
	state  State
	ticket uint64

	subs    map[int]chan struct{}
	nextSub int
}

func New() *Store {
	return &Store{subs: make(map[int]chan struct{})}
}

// State returns a snapshot. Callers must treat it as read-only.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch reduces a into the current state and returns the result.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return s.state
}

// Subscribe returns a channel signalled after dispatches. Signals coalesce:
// a slow reader sees one pending signal, not one per action. Call cancel to
// stop.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan struct{}, 1)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Ticket hands out the next sequence number. Take it right before issuing the
// request whose result will be dispatched with it.
func (s *Store) Ticket() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ticket++
	return s.ticket
}
