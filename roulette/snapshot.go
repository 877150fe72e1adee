package roulette

import (
	"github.com/weedbox/casinotable/model"
)

type PlayerView struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Chips    int64       `json:"chips"`
	Bets     []model.Bet `json:"bets"`
	TotalBet int64       `json:"totalBet"`
	Ready    bool        `json:"ready"`
}

type TableView struct {
	ID           string       `json:"id"`
	CroupierID   string       `json:"croupierId"`
	CroupierName string       `json:"croupierName"`
	Players      []PlayerView `json:"players"`
	GamePhase    Phase        `json:"gamePhase"`
	LastResult   *int         `json:"lastResult"` // null until the wheel has stopped once
	History      []int        `json:"history"`
	PlayerCount  int          `json:"playerCount"`
}

// Snapshot renders the table. Roulette keeps nothing hidden so every viewer gets the same view.
func (e *Engine) Snapshot(viewerID string) interface{} {
	t := e.table

	view := TableView{
		ID:           t.ID,
		CroupierID:   t.Croupier.ID,
		CroupierName: t.Croupier.Name,
		Players:      make([]PlayerView, 0, len(t.Players)),
		GamePhase:    t.GamePhase,
		History:      append([]int{}, t.History...),
		PlayerCount:  len(t.Players),
	}

	// a pending spin only shows up here once it has resolved
	if len(t.History) > 0 {
		last := t.History[0]
		view.LastResult = &last
	}

	for _, p := range t.Players {
		view.Players = append(view.Players, PlayerView{
			ID:       p.ID,
			Name:     p.Name,
			Chips:    p.Chips,
			Bets:     append([]model.Bet{}, p.Bets...),
			TotalBet: p.TotalBet,
			Ready:    p.Ready,
		})
	}

	return view
}
