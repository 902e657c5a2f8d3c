// Package reminders holds per-connection reminders and the scheduler that fires them.
package reminders

import (
	"sync"

	"bubble-server/models"
)

// Fired is a reminder that came due on a tick, together with its owner.
type Fired struct {
	ConnectionID string
	Reminder     models.Reminder
}

// Store maps connection ids to their pending reminders in insertion order.
// Every operation holds the lock for its whole mutation, so a tick, an append
// and a disconnect never interleave inside one connection's list.
type Store struct {
	mu      sync.Mutex
	pending map[string][]models.Reminder
}

func NewStore() *Store {
	return &Store{pending: make(map[string][]models.Reminder)}
}

// Add appends a reminder for connID, creating its list on first use.
func (s *Store) Add(connID string, r models.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[connID] = append(s.pending[connID], r)
}

// TakeDue removes and returns every reminder whose time equals clock.
// Reminders of one connection come back in insertion order; order across
// connections is unspecified.
func (s *Store) TakeDue(clock string) []Fired {
	s.mu.Lock()
	defer s.mu.Unlock()

	var fired []Fired
	for connID, list := range s.pending {
		notDue := list[:0:0]
		for _, r := range list {
			if r.Time == clock {
				fired = append(fired, Fired{ConnectionID: connID, Reminder: r})
			} else {
				notDue = append(notDue, r)
			}
		}
		if len(notDue) == 0 {
			delete(s.pending, connID)
		} else {
			s.pending[connID] = notDue
		}
	}
	return fired
}

// RemoveAll drops every reminder owned by connID and returns how many there were.
func (s *Store) RemoveAll(connID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.pending[connID])
	delete(s.pending, connID)
	return n
}

// List returns a copy of connID's pending reminders.
func (s *Store) List(connID string) []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.pending[connID]
	if len(list) == 0 {
		return nil
	}
	out := make([]models.Reminder, len(list))
	copy(out, list)
	return out
}

// Len is the total number of pending reminders across all connections.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, list := range s.pending {
		n += len(list)
	}
	return n
}
