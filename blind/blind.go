package blind

import (
	"github.com/weedbox/casinotable/util"
)

// Blind holds the forced bets of a hand.
type Blind struct {
	SB   int64 `json:"sb"`
	BB   int64 `json:"bb"`
	Ante int64 `json:"ante"`
}

// Seats are player indexes for one hand. SB and BB stay unset when fewer than two players are dealt in.
type Seats struct {
	Dealer     int `json:"dealer"`
	SB         int `json:"sb"`
	BB         int `json:"bb"`
	FirstToAct int `json:"first_to_act"`
}

func NewBlind(sb int64, bb int64, ante int64) Blind {
	return Blind{
		SB:   sb,
		BB:   bb,
		Ante: ante,
	}
}

// NextDealer moves the button one seat. The first hand puts it on seat 0.
// An out of range previous button is taken modulo playerCount first.
func (blind Blind) NextDealer(prevDealer int, playerCount int) int {
	if playerCount == 0 {
		return util.UnsetValue
	}
	if prevDealer == util.UnsetValue {
		return 0
	}
	prevDealer %= playerCount
	return (prevDealer + 1) % playerCount
}

func (blind Blind) Seats(dealer int, playerCount int) Seats {
	seats := Seats{
		Dealer:     dealer,
		SB:         util.UnsetValue,
		BB:         util.UnsetValue,
		FirstToAct: (dealer + 1) % playerCount,
	}

	if playerCount >= 2 {
		seats.SB = (dealer + 1) % playerCount
		seats.BB = (dealer + 2) % playerCount
		seats.FirstToAct = (seats.BB + 1) % playerCount
	}

	return seats
}

// Post returns what a stack can pay toward a forced bet.
func Post(chips int64, amount int64) int64 {
	if amount > chips {
		return chips
	}
	return amount
}
