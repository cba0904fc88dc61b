// Package session holds the single piece of state the bot carries across
// interactions: whether an admin's next text message is broadcast content.
package session

import (
	"sync"
)

// State is the per-admin navigation state.
type State int

const (
	Idle State = iota
	AwaitingBroadcastText
)

// Store is an explicit state machine per admin identity. Only identities in
// a non-Idle state occupy memory.
type Store struct {
	mu     sync.Mutex
	states map[int64]State
}

func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Expect transitions the identity to AwaitingBroadcastText.
func (s *Store) Expect(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[id] = AwaitingBroadcastText
}

// Consume returns whether the identity was awaiting broadcast text and
// unconditionally transitions it back to Idle.
func (s *Store) Consume(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[id]
	if ok {
		delete(s.states, id)
	}
	return ok && state == AwaitingBroadcastText
}

// Cancel resets the identity to Idle.
func (s *Store) Cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
}
