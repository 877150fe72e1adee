package blackjack

import (
	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/model"
)

func (e *Engine) startBetting() ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Waiting && t.GamePhase != Phase_Finished {
		return nil, model.ErrWrongPhase
	}

	t.clearHands()
	if t.Deck.Len() < t.Settings.ReshuffleThreshold {
		if err := e.reshuffle(); err != nil {
			return nil, err
		}
	}

	for _, p := range t.Players {
		p.Status = Status_Waiting
		p.CurrentBet = 0
		p.Doubled = false
	}

	t.GamePhase = Phase_Betting
	t.CurrentPlayerIndex = UnsetValue
	t.DealerRevealIndex = 0
	t.Settled = false
	t.RoundCount++

	return []model.Event{
		model.StateUpdated(),
		model.Message("Betting is open"),
	}, nil
}

func (e *Engine) findBettor(playerID string) (*Player, error) {
	if e.table.GamePhase != Phase_Betting {
		return nil, model.ErrWrongPhase
	}

	idx := e.table.FindPlayerIdx(playerID)
	if idx == UnsetValue {
		return nil, model.ErrPlayerNotFound
	}

	p := e.table.Players[idx]
	if p.Status != Status_Waiting {
		return nil, model.ErrAlreadyBet
	}

	return p, nil
}

func (e *Engine) placeBet(playerID string, amount int64) ([]model.Event, error) {
	p, err := e.findBettor(playerID)
	if err != nil {
		return nil, err
	}

	if amount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	if amount > p.Chips {
		return nil, model.ErrInsufficientChips
	}

	p.Chips -= amount
	p.CurrentBet = amount
	p.Status = Status_Ready

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s bets %d", p.Name, amount),
	}, nil
}

func (e *Engine) ready(playerID string) ([]model.Event, error) {
	p, err := e.findBettor(playerID)
	if err != nil {
		return nil, err
	}

	p.Status = Status_Ready

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s is ready", p.Name),
	}, nil
}

func (e *Engine) dealCards() ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Betting {
		return nil, model.ErrWrongPhase
	}

	ready := t.ReadyPlayers()
	if len(ready) == 0 {
		return nil, model.ErrNoReadyPlayers
	}

	if t.Deck.Len() < (len(ready)+1)*maxCardsPerHand {
		// hands are empty during betting so every card is back in deck or discard
		if err := e.reshuffle(); err != nil {
			return nil, err
		}
	}

	t.GamePhase = Phase_Dealing

	for pass := 0; pass < 2; pass++ {
		for _, p := range ready {
			c, err := t.Deck.Draw()
			if err != nil {
				return nil, err
			}
			p.Hand = append(p.Hand, c)
		}

		c, err := t.Deck.Draw()
		if err != nil {
			return nil, err
		}
		t.DealerHand = append(t.DealerHand, c)
	}

	for _, p := range ready {
		if card.IsNatural(p.Hand) {
			p.Status = Status_Blackjack
		} else {
			p.Status = Status_Playing
		}
	}

	events := []model.Event{
		model.Message("Cards dealt"),
	}

	t.GamePhase = Phase_Playing
	t.CurrentPlayerIndex = UnsetValue
	events = append(events, e.advanceTurn()...)

	return append([]model.Event{model.StateUpdated()}, events...), nil
}

func (e *Engine) turnPlayer(playerID string) (*Player, error) {
	t := e.table

	if t.GamePhase != Phase_Playing {
		return nil, model.ErrWrongPhase
	}

	current := t.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return nil, model.ErrNotYourTurn
	}

	return current, nil
}

func (e *Engine) hit(playerID string) ([]model.Event, error) {
	p, err := e.turnPlayer(playerID)
	if err != nil {
		return nil, err
	}

	c, err := e.table.Deck.Draw()
	if err != nil {
		return nil, err
	}
	p.Hand = append(p.Hand, c)

	events := []model.Event{
		model.StateUpdated(),
		model.Message("%s hits and draws %s", p.Name, c.String()),
	}

	value := p.HandValue()
	switch {
	case value > card.BlackjackTarget:
		p.Status = Status_Bust
		events = append(events, model.Message("%s busts with %d", p.Name, value))
		events = append(events, e.advanceTurn()...)
	case value == card.BlackjackTarget:
		p.Status = Status_Stand
		events = append(events, e.advanceTurn()...)
	}

	return events, nil
}

func (e *Engine) stand(playerID string) ([]model.Event, error) {
	p, err := e.turnPlayer(playerID)
	if err != nil {
		return nil, err
	}

	p.Status = Status_Stand

	events := []model.Event{
		model.StateUpdated(),
		model.Message("%s stands on %d", p.Name, p.HandValue()),
	}

	return append(events, e.advanceTurn()...), nil
}

func (e *Engine) doubleDown(playerID string) ([]model.Event, error) {
	p, err := e.turnPlayer(playerID)
	if err != nil {
		return nil, err
	}

	if len(p.Hand) != 2 {
		return nil, model.ErrCannotDoubleDown
	}

	// the first stake is already off the balance
	if p.Chips < p.CurrentBet {
		return nil, model.ErrInsufficientChips
	}

	c, err := e.table.Deck.Draw()
	if err != nil {
		return nil, err
	}

	p.Chips -= p.CurrentBet
	p.CurrentBet *= 2
	p.Doubled = true
	p.Hand = append(p.Hand, c)

	if card.IsBust(p.Hand) {
		p.Status = Status_Bust
	} else {
		p.Status = Status_Stand
	}

	events := []model.Event{
		model.StateUpdated(),
		model.Message("%s doubles down and draws %s", p.Name, c.String()),
	}

	return append(events, e.advanceTurn()...), nil
}

// advanceTurn moves the cursor to the next playing player or hands the round to the croupier.
func (e *Engine) advanceTurn() []model.Event {
	t := e.table

	for i := t.CurrentPlayerIndex + 1; i < len(t.Players); i++ {
		if t.Players[i].Status == Status_Playing {
			t.CurrentPlayerIndex = i
			return []model.Event{
				model.Message("%s to act", t.Players[i].Name),
			}
		}
	}

	t.CurrentPlayerIndex = UnsetValue
	t.GamePhase = Phase_CroupierTurn

	return []model.Event{
		model.Message("All players have finished. Dealer may reveal"),
	}
}

func (e *Engine) playDealerHand() ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_CroupierTurn {
		return nil, model.ErrWrongPhase
	}

	for card.HandValue(t.DealerHand) < DealerStandValue {
		c, err := t.Deck.Draw()
		if err != nil {
			return nil, err
		}
		t.DealerHand = append(t.DealerHand, c)
	}

	if !t.Settings.RevealPacing {
		return e.settle(), nil
	}

	t.GamePhase = Phase_Revealing
	t.DealerRevealIndex = 1

	return []model.Event{
		model.StateUpdated(),
		model.Message("Dealer is revealing cards"),
	}, nil
}

func (e *Engine) revealNextCard() ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Revealing {
		return nil, model.ErrWrongPhase
	}

	t.DealerRevealIndex++
	if t.DealerRevealIndex >= len(t.DealerHand) {
		return e.settle(), nil
	}

	return []model.Event{
		model.StateUpdated(),
		model.Message("Dealer reveals %s", t.DealerHand[t.DealerRevealIndex-1].String()),
	}, nil
}

func (e *Engine) newRound() ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Finished {
		return nil, model.ErrWrongPhase
	}

	t.clearHands()
	for _, p := range t.Players {
		p.Status = Status_Waiting
		p.CurrentBet = 0
		p.Doubled = false
	}

	t.GamePhase = Phase_Waiting
	t.CurrentPlayerIndex = UnsetValue
	t.DealerRevealIndex = 0
	t.Settled = false

	return []model.Event{
		model.StateUpdated(),
		model.Message("Waiting for the next round"),
	}, nil
}
