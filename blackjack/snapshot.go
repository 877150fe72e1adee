package blackjack

import (
	"github.com/weedbox/casinotable/card"
)

type PlayerView struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	Chips         int64        `json:"chips"`
	Hand          []card.Card  `json:"hand"`
	HandValue     int          `json:"handValue"`
	CurrentBet    int64        `json:"currentBet"`
	Status        PlayerStatus `json:"status"`
	IsCurrentTurn bool         `json:"isCurrentTurn"`
}

type TableView struct {
	ID              string       `json:"id"`
	CroupierID      string       `json:"croupierId"`
	CroupierName    string       `json:"croupierName"`
	Players         []PlayerView `json:"players"`
	DealerHand      []card.Card  `json:"dealerHand"`
	DealerHandValue *int         `json:"dealerHandValue"` // null while cards are hidden
	GamePhase       Phase        `json:"gamePhase"`
	CanRevealMore   bool         `json:"canRevealMore"`
	DeckRemaining   int          `json:"deckRemaining"`
	RoundCount      int          `json:"roundCount"`
}

// visibleDealerCards is how many house cards are face up in the current phase.
func (t Table) visibleDealerCards() int {
	switch t.GamePhase {
	case Phase_Finished:
		return len(t.DealerHand)
	case Phase_Revealing:
		return t.DealerRevealIndex
	}

	if len(t.DealerHand) == 0 {
		return 0
	}
	return 1
}

// Snapshot renders the table for one viewer. Blackjack hands are dealt face up so every viewer sees the same view.
func (e *Engine) Snapshot(viewerID string) interface{} {
	t := e.table

	view := TableView{
		ID:            t.ID,
		CroupierID:    t.Croupier.ID,
		CroupierName:  t.Croupier.Name,
		Players:       make([]PlayerView, 0, len(t.Players)),
		DealerHand:    make([]card.Card, 0, len(t.DealerHand)),
		GamePhase:     t.GamePhase,
		DeckRemaining: t.Deck.Len(),
		RoundCount:    t.RoundCount,
	}

	for idx, p := range t.Players {
		view.Players = append(view.Players, PlayerView{
			ID:            p.ID,
			Name:          p.Name,
			Chips:         p.Chips,
			Hand:          card.Copy(p.Hand),
			HandValue:     p.HandValue(),
			CurrentBet:    p.CurrentBet,
			Status:        p.Status,
			IsCurrentTurn: t.GamePhase == Phase_Playing && idx == t.CurrentPlayerIndex,
		})
	}

	visible := t.visibleDealerCards()
	for idx, c := range t.DealerHand {
		if idx < visible {
			view.DealerHand = append(view.DealerHand, c)
		} else {
			view.DealerHand = append(view.DealerHand, card.Hidden)
		}
	}

	if visible == len(t.DealerHand) {
		value := card.HandValue(t.DealerHand)
		view.DealerHandValue = &value
	}

	view.CanRevealMore = t.GamePhase == Phase_Revealing && t.DealerRevealIndex < len(t.DealerHand)

	return view
}
