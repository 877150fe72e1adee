package readiness

import (
	"sort"

	"github.com/weedbox/syncsaga"
)

// NewTracker reports through onCompleted when every participant of an open round is ready.
func NewTracker(onCompleted func(state State)) Tracker {
	return &tracker{
		onCompleted: onCompleted,
		rg:          syncsaga.NewReadyGroup(),
		state: &State{
			Participants: make(map[string]*Participant),
		},
	}
}

// Sync brings the round in line with the table. Readiness of remaining participants is kept.
func (t *tracker) Sync(participantIDs []string, readyIDs []string) {
	t.mu.Lock()

	var pending []int64
	switch {
	case !t.state.IsOpen:
		t.state.Round++
		t.state.IsOpen = true
		t.state.Completed = false
		t.state.Participants = make(map[string]*Participant)
		pending = t.rebuild(participantIDs, readyIDs)
	case !t.sameParticipants(participantIDs):
		pending = t.rebuild(participantIDs, readyIDs)
	default:
		for _, id := range readyIDs {
			p, ok := t.state.Participants[id]
			if ok && !p.IsReady {
				p.IsReady = true
				pending = append(pending, p.Index)
			}
		}
	}
	t.mu.Unlock()

	// the ready group may complete synchronously, so it is driven outside the lock
	for _, idx := range pending {
		t.rg.Ready(idx)
	}
}

func (t *tracker) Ready(participantID string) error {
	t.mu.Lock()
	p, ok := t.state.Participants[participantID]
	if !ok {
		t.mu.Unlock()
		return ErrParticipantNotFound
	}
	p.IsReady = true
	idx := p.Index
	t.mu.Unlock()

	t.rg.Ready(idx)
	return nil
}

func (t *tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state.IsOpen = false
	t.rg.Stop()
	t.rg.ResetParticipants()
	t.state.Participants = make(map[string]*Participant)
}

func (t *tracker) GetState() State {
	t.mu.Lock()
	defer t.mu.Unlock()

	participants := make(map[string]*Participant, len(t.state.Participants))
	for id, p := range t.state.Participants {
		copied := *p
		participants[id] = &copied
	}

	state := *t.state
	state.Participants = participants
	return state
}

func (t *tracker) sameParticipants(participantIDs []string) bool {
	if len(participantIDs) != len(t.state.Participants) {
		return false
	}
	for _, id := range participantIDs {
		if _, ok := t.state.Participants[id]; !ok {
			return false
		}
	}
	return true
}

// rebuild replaces the ready group and returns the indexes still to be marked ready. Callers hold the lock.
func (t *tracker) rebuild(participantIDs []string, readyIDs []string) []int64 {
	ready := make(map[string]bool)
	for _, id := range readyIDs {
		ready[id] = true
	}
	for id, p := range t.state.Participants {
		if p.IsReady {
			ready[id] = true
		}
	}

	t.rg.Stop()
	t.rg.OnCompleted(func(rg *syncsaga.ReadyGroup) {
		t.readyGroupOnCompleted()
	})
	t.rg.ResetParticipants()
	t.state.Participants = make(map[string]*Participant)
	t.state.Completed = false

	ids := append([]string{}, participantIDs...)
	sort.Strings(ids)

	pending := make([]int64, 0)
	for _, id := range ids {
		t.state.Participants[id] = &Participant{
			ID:      id,
			Index:   t.nextIndex,
			IsReady: ready[id],
		}
		t.rg.Add(t.nextIndex, false)
		if ready[id] {
			pending = append(pending, t.nextIndex)
		}
		t.nextIndex++
	}

	if len(ids) > 0 {
		t.rg.Start()
	}

	return pending
}

func (t *tracker) readyGroupOnCompleted() {
	t.mu.Lock()
	if !t.state.IsOpen || t.state.Completed || len(t.state.Participants) == 0 {
		t.mu.Unlock()
		return
	}
	t.state.Completed = true
	for _, p := range t.state.Participants {
		p.IsReady = true
	}
	t.mu.Unlock()

	t.onCompleted(t.GetState())
}
