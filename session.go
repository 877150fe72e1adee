package casinotable

import (
	"sync"

	"github.com/weedbox/casinotable/model"
)

// Binding ties a connection to the one table it currently occupies.
type Binding struct {
	ConnID   string         `json:"conn_id"`
	TableID  string         `json:"table_id"`
	GameType model.GameType `json:"game_type"`
	Role     model.Role     `json:"role"`
	Name     string         `json:"name"`
}

type Sessions struct {
	mu        sync.RWMutex
	bindings  map[string]Binding
	occupants map[string][]string // tableID -> connIDs in join order
}

func NewSessions() *Sessions {
	return &Sessions{
		bindings:  make(map[string]Binding),
		occupants: make(map[string][]string),
	}
}

// Bind seats a connection at a table. A connection occupies at most one table.
func (s *Sessions) Bind(b Binding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exist := s.bindings[b.ConnID]; exist {
		return model.ErrAlreadySeated
	}

	s.bindings[b.ConnID] = b
	s.occupants[b.TableID] = append(s.occupants[b.TableID], b.ConnID)
	return nil
}

func (s *Sessions) Unbind(connID string) (Binding, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, exist := s.bindings[connID]
	if !exist {
		return Binding{}, false
	}
	delete(s.bindings, connID)

	remaining := make([]string, 0, len(s.occupants[b.TableID]))
	for _, id := range s.occupants[b.TableID] {
		if id != connID {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) == 0 {
		delete(s.occupants, b.TableID)
	} else {
		s.occupants[b.TableID] = remaining
	}

	return b, true
}

func (s *Sessions) Get(connID string) (Binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, exist := s.bindings[connID]
	return b, exist
}

func (s *Sessions) Occupants(tableID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.occupants[tableID]...)
}

// UnbindTable drops every binding of a table and returns them in join order.
func (s *Sessions) UnbindTable(tableID string) []Binding {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := make([]Binding, 0, len(s.occupants[tableID]))
	for _, connID := range s.occupants[tableID] {
		if b, exist := s.bindings[connID]; exist {
			dropped = append(dropped, b)
			delete(s.bindings, connID)
		}
	}
	delete(s.occupants, tableID)
	return dropped
}

func (s *Sessions) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.bindings)
}
