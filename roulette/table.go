package roulette

import (
	"encoding/json"
	"time"

	"github.com/weedbox/casinotable/model"
	"github.com/weedbox/casinotable/util"
)

type Phase string

const (
	Phase_Betting  Phase = "betting"
	Phase_Spinning Phase = "spinning"
	Phase_Finished Phase = "finished"
)

type Settings struct {
	MaxPlayers     int   `json:"max_players"`
	StartingChips  int64 `json:"starting_chips"`
	ManualNewRound bool  `json:"manual_new_round"` // stop in finished after a spin until the croupier opens betting
}

func NewDefaultSettings() Settings {
	return Settings{
		MaxPlayers:    8,
		StartingChips: 1000,
	}
}

type Player struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Chips    int64       `json:"chips"`
	Bets     []model.Bet `json:"bets"`
	TotalBet int64       `json:"total_bet"`
	Ready    bool        `json:"ready"`
}

type Table struct {
	ID            string         `json:"id"`
	Croupier      model.Croupier `json:"croupier"`
	Settings      Settings       `json:"settings"`
	Players       []*Player      `json:"players"`
	GamePhase     Phase          `json:"game_phase"`
	WinningNumber int            `json:"winning_number"`
	Rotation      float64        `json:"rotation"`
	History       []int          `json:"history"`
	RoundCount    int            `json:"round_count"`
	CreatedAt     int64          `json:"created_at"`
	UpdateAt      int64          `json:"update_at"`
	UpdateSerial  int64          `json:"update_serial"`
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

func (t Table) FindPlayerIdx(playerID string) int {
	for idx, p := range t.Players {
		if p.ID == playerID {
			return idx
		}
	}
	return util.UnsetValue
}

func (p *Player) clearBets() {
	p.Bets = []model.Bet{}
	p.TotalBet = 0
	p.Ready = false
}
