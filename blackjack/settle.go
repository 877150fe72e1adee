package blackjack

import (
	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/model"
)

type Outcome string

const (
	Outcome_Blackjack Outcome = "blackjack"
	Outcome_Win       Outcome = "win"
	Outcome_Push      Outcome = "push"
	Outcome_Lose      Outcome = "lose"
)

type PlayerResult struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Result   Outcome `json:"result"`
	Bet      int64   `json:"bet"`
	Winnings int64   `json:"winnings"`
	NewChips int64   `json:"newChips"`
}

type RoundResult struct {
	DealerValue     int            `json:"dealerValue"`
	DealerBust      bool           `json:"dealerBust"`
	DealerBlackjack bool           `json:"dealerBlackjack"`
	Players         []PlayerResult `json:"players"`
}

// judge returns the outcome and the amount credited back for a stake.
func judge(p *Player, dealerValue int, dealerNatural bool) (Outcome, int64) {
	bet := p.CurrentBet

	switch p.Status {
	case Status_Blackjack:
		if dealerNatural {
			return Outcome_Push, bet
		}
		return Outcome_Blackjack, bet * 5 / 2
	case Status_Bust:
		return Outcome_Lose, 0
	}

	value := p.HandValue()
	switch {
	case dealerValue > card.BlackjackTarget, value > dealerValue:
		return Outcome_Win, bet * 2
	case value == dealerValue:
		return Outcome_Push, bet
	}

	return Outcome_Lose, 0
}

// settle pays out every player who took part in the round. It runs at most once per round.
func (e *Engine) settle() []model.Event {
	t := e.table

	if t.Settled {
		return nil
	}

	dealerValue := card.HandValue(t.DealerHand)
	dealerNatural := card.IsNatural(t.DealerHand)

	result := RoundResult{
		DealerValue:     dealerValue,
		DealerBust:      dealerValue > card.BlackjackTarget,
		DealerBlackjack: dealerNatural,
		Players:         make([]PlayerResult, 0),
	}

	for _, p := range t.Players {
		if !p.isResolved() {
			continue
		}

		outcome, winnings := judge(p, dealerValue, dealerNatural)
		p.Chips += winnings

		result.Players = append(result.Players, PlayerResult{
			ID:       p.ID,
			Name:     p.Name,
			Result:   outcome,
			Bet:      p.CurrentBet,
			Winnings: winnings,
			NewChips: p.Chips,
		})
	}

	t.Settled = true
	t.GamePhase = Phase_Finished
	t.DealerRevealIndex = len(t.DealerHand)

	return []model.Event{
		model.StateUpdated(),
		model.RoundResult(result),
		model.Message("Dealer has %d. Round over", dealerValue),
	}
}
