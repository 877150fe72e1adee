package holdem

import (
	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/position"
)

type PlayerView struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Chips         int64       `json:"chips"`
	Hand          []card.Card `json:"hand"`
	CurrentBet    int64       `json:"currentBet"`
	TotalBet      int64       `json:"totalBet"`
	Folded        bool        `json:"folded"`
	AllIn         bool        `json:"allIn"`
	InHand        bool        `json:"inHand"`
	Positions     []string    `json:"positions"`
	IsCurrentTurn bool        `json:"isCurrentTurn"`
}

type TableView struct {
	ID             string       `json:"id"`
	CroupierID     string       `json:"croupierId"`
	CroupierName   string       `json:"croupierName"`
	Players        []PlayerView `json:"players"`
	CommunityCards []card.Card  `json:"communityCards"`
	Pot            int64        `json:"pot"`
	CurrentBet     int64        `json:"currentBet"`
	GamePhase      Phase        `json:"gamePhase"`
	DealerIndex    int          `json:"dealerIndex"`
	HandCount      int          `json:"handCount"`
	CanAdvance     bool         `json:"canAdvance"` // croupier may deal the next street
	LastResult     *HandResult  `json:"lastResult,omitempty"`
}

// revealed reports whether viewers other than the owner may see a player's hole cards.
func (t Table) revealed(p *Player) bool {
	return t.GamePhase == Phase_Finished &&
		t.LastResult != nil &&
		!t.LastResult.ByFold &&
		p.IsContender()
}

// Snapshot renders the table for one viewer. Only the viewer's own hole cards are shown until a showdown.
func (e *Engine) Snapshot(viewerID string) interface{} {
	t := e.table

	labels := position.NewPosition().PlayerPositionMap(len(t.Players), t.DealerIndex)
	if !t.IsBettingPhase() && t.GamePhase != Phase_Finished {
		labels = map[int][]string{}
	}

	view := TableView{
		ID:             t.ID,
		CroupierID:     t.Croupier.ID,
		CroupierName:   t.Croupier.Name,
		Players:        make([]PlayerView, 0, len(t.Players)),
		CommunityCards: card.Copy(t.Community),
		Pot:            t.Pot,
		CurrentBet:     t.CurrentBet,
		GamePhase:      t.GamePhase,
		DealerIndex:    t.DealerIndex,
		HandCount:      t.HandCount,
		CanAdvance:     t.IsBettingPhase() && !t.Settings.AutoAdvance && t.RoundComplete(),
		LastResult:     t.LastResult,
	}

	for idx, p := range t.Players {
		hand := card.HideAll(p.Hand)
		if p.ID == viewerID || t.revealed(p) {
			hand = card.Copy(p.Hand)
		}

		positions := labels[idx]
		if positions == nil {
			positions = []string{}
		}

		view.Players = append(view.Players, PlayerView{
			ID:            p.ID,
			Name:          p.Name,
			Chips:         p.Chips,
			Hand:          hand,
			CurrentBet:    p.CurrentBet,
			TotalBet:      p.TotalBet,
			Folded:        p.Folded,
			AllIn:         p.AllIn,
			InHand:        p.InHand,
			Positions:     positions,
			IsCurrentTurn: idx == t.CurrentPlayerIndex,
		})
	}

	return view
}
