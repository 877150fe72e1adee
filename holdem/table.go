package holdem

import (
	"encoding/json"
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/model"
	"github.com/weedbox/casinotable/util"
)

type Phase string

const (
	Phase_Waiting  Phase = "waiting"
	Phase_Preflop  Phase = "preflop"
	Phase_Flop     Phase = "flop"
	Phase_Turn     Phase = "turn"
	Phase_River    Phase = "river"
	Phase_Showdown Phase = "showdown"
	Phase_Finished Phase = "finished"
)

type Settings struct {
	SmallBlind    int64 `json:"small_blind"`
	BigBlind      int64 `json:"big_blind"`
	Ante          int64 `json:"ante"`
	MinPlayers    int   `json:"min_players"`
	MaxPlayers    int   `json:"max_players"`
	StartingChips int64 `json:"starting_chips"`
	AutoAdvance   bool  `json:"auto_advance"` // deal the next street as soon as betting completes
}

func NewDefaultSettings() Settings {
	return Settings{
		SmallBlind:    10,
		BigBlind:      20,
		Ante:          0,
		MinPlayers:    2,
		MaxPlayers:    6,
		StartingChips: 1000,
		AutoAdvance:   true,
	}
}

type Player struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Chips      int64       `json:"chips"`
	Hand       []card.Card `json:"hand"`
	CurrentBet int64       `json:"current_bet"` // 本街下注
	TotalBet   int64       `json:"total_bet"`   // 本手累計下注
	Folded     bool        `json:"folded"`
	AllIn      bool        `json:"all_in"`
	HasActed   bool        `json:"has_acted"`
	InHand     bool        `json:"in_hand"`
}

// CanAct reports a player still able to put chips in.
func (p Player) CanAct() bool {
	return p.InHand && !p.Folded && p.Chips > 0
}

func (p Player) IsContender() bool {
	return p.InHand && !p.Folded
}

type Table struct {
	ID                 string         `json:"id"`
	Croupier           model.Croupier `json:"croupier"`
	Settings           Settings       `json:"settings"`
	Players            []*Player      `json:"players"`
	Deck               *card.Deck     `json:"deck"`
	Community          []card.Card    `json:"community"`
	BurnPile           []card.Card    `json:"burn_pile"`
	Muck               []card.Card    `json:"muck"`
	Pot                int64          `json:"pot"`
	CurrentBet         int64          `json:"current_bet"`
	GamePhase          Phase          `json:"game_phase"`
	DealerIndex        int            `json:"dealer_index"`
	SBIndex            int            `json:"sb_index"`
	BBIndex            int            `json:"bb_index"`
	CurrentPlayerIndex int            `json:"current_player_index"`
	HandCount          int            `json:"hand_count"`
	LastResult         *HandResult    `json:"last_result,omitempty"`
	CreatedAt          int64          `json:"created_at"`
	UpdateAt           int64          `json:"update_at"`
	UpdateSerial       int64          `json:"update_serial"`
}

func (t *Table) RefreshUpdateAt() {
	t.UpdateAt = time.Now().Unix()
	t.UpdateSerial++
}

func (t Table) Clone() (*Table, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	var cloned Table
	if err := json.Unmarshal(encoded, &cloned); err != nil {
		return nil, err
	}
	return &cloned, nil
}

func (t Table) GetJSON() (string, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (t Table) FindPlayerIdx(playerID string) int {
	for idx, p := range t.Players {
		if p.ID == playerID {
			return idx
		}
	}
	return util.UnsetValue
}

func (t Table) CurrentPlayer() *Player {
	if t.CurrentPlayerIndex < 0 || t.CurrentPlayerIndex >= len(t.Players) {
		return nil
	}
	return t.Players[t.CurrentPlayerIndex]
}

func (t Table) Contenders() []*Player {
	return funk.Filter(t.Players, func(p *Player) bool {
		return p.IsContender()
	}).([]*Player)
}

func (t Table) Actors() []*Player {
	return funk.Filter(t.Players, func(p *Player) bool {
		return p.CanAct()
	}).([]*Player)
}

func (t Table) IsBettingPhase() bool {
	switch t.GamePhase {
	case Phase_Preflop, Phase_Flop, Phase_Turn, Phase_River:
		return true
	}
	return false
}

// RoundComplete reports whether the current betting round is finished.
func (t Table) RoundComplete() bool {
	actors := t.Actors()

	if len(actors) <= 1 {
		for _, p := range actors {
			if p.CurrentBet < t.CurrentBet {
				return false
			}
		}
		return true
	}

	for _, p := range actors {
		if !p.HasActed || p.CurrentBet != t.CurrentBet {
			return false
		}
	}
	return true
}

// CardCount sums every card the table holds. It always equals Deck.Total.
func (t Table) CardCount() int {
	count := len(t.Community) + len(t.BurnPile) + len(t.Muck) + t.Deck.Len()
	for _, p := range t.Players {
		count += len(p.Hand)
	}
	return count
}

// commit moves chips from a stack into the current street.
func (t *Table) commit(p *Player, amount int64) int64 {
	if amount > p.Chips {
		amount = p.Chips
	}

	p.Chips -= amount
	p.CurrentBet += amount
	p.TotalBet += amount
	t.Pot += amount

	if p.Chips == 0 && p.InHand {
		p.AllIn = true
	}

	if p.CurrentBet > t.CurrentBet {
		t.CurrentBet = p.CurrentBet
	}

	return amount
}
