package model

// Action is the tagged variant every engine accepts. Kind selects the operation, the other fields are its payload.
type Action struct {
	Kind     string `json:"kind"`
	ActorID  string `json:"actor_id"`
	PlayerID string `json:"player_id,omitempty"` // target player of croupier utilities
	Amount   int64  `json:"amount,omitempty"`
	Bets     []Bet  `json:"bets,omitempty"`
}

// Bet is one roulette selection with its stake.
type Bet struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount"`
}

// Common action kinds shared by all game engines
const (
	Action_AssignChips = "assign_chips"
)
