package readiness

import (
	"errors"
	"sync"

	"github.com/weedbox/syncsaga"
)

var (
	ErrParticipantNotFound = errors.New("readiness: participant not found")
)

type Tracker interface {
	Sync(participantIDs []string, readyIDs []string)
	Ready(participantID string) error
	Close()
	GetState() State
}

type tracker struct {
	mu          sync.Mutex
	onCompleted func(state State)
	rg          *syncsaga.ReadyGroup
	nextIndex   int64
	state       *State
}

// State is one betting round. Completed flips once per round.
type State struct {
	Round        int                     `json:"round"`
	IsOpen       bool                    `json:"is_open"`
	Completed    bool                    `json:"completed"`
	Participants map[string]*Participant `json:"participants"` // key: participant_id
}

type Participant struct {
	ID      string `json:"id"`
	Index   int64  `json:"index"`
	IsReady bool   `json:"is_ready"`
}
