package holdem

import (
	"github.com/weedbox/casinotable/blind"
	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/model"
	"github.com/weedbox/casinotable/util"
)

type HandScore struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Cards       []card.Card `json:"cards"`
	Tier        Tier        `json:"tier"`
	Score       int         `json:"score"`
	Description string      `json:"description,omitempty"`
}

type HandResult struct {
	WinnerID   string      `json:"winnerId"`
	WinnerName string      `json:"winnerName"`
	Pot        int64       `json:"pot"`
	ByFold     bool        `json:"byFold"`
	Evaluation string      `json:"evaluation,omitempty"`
	Hands      []HandScore `json:"hands,omitempty"`
}

func (e *Engine) startHand() ([]model.Event, error) {
	t := e.table

	minPlayers := t.Settings.MinPlayers
	if minPlayers < 1 {
		minPlayers = 1
	}

	// only seats with chips are dealt in
	funded := make([]int, 0, len(t.Players))
	for idx, p := range t.Players {
		if p.Chips > 0 {
			funded = append(funded, idx)
		}
	}
	if len(funded) < minPlayers {
		return nil, model.ErrNotEnoughPlayers
	}

	deck, err := e.buildDeck()
	if err != nil {
		return nil, err
	}

	t.Deck = deck
	t.Community = []card.Card{}
	t.BurnPile = []card.Card{}
	t.Muck = []card.Card{}
	t.CurrentBet = 0
	t.LastResult = nil
	t.HandCount++

	for _, p := range t.Players {
		p.Hand = []card.Card{}
		p.CurrentBet = 0
		p.TotalBet = 0
		p.Folded = false
		p.AllIn = false
		p.HasActed = false
		p.InHand = p.Chips > 0
	}

	// the button moves to the next funded seat after the previous one
	prev := util.UnsetValue
	for pos, idx := range funded {
		if t.DealerIndex != util.UnsetValue && idx <= t.DealerIndex {
			prev = pos
		}
	}
	seats := e.blind.Seats(e.blind.NextDealer(prev, len(funded)), len(funded))

	seat := func(pos int) int {
		if pos == util.UnsetValue {
			return pos
		}
		return funded[pos]
	}
	t.DealerIndex = seat(seats.Dealer)
	t.SBIndex = seat(seats.SB)
	t.BBIndex = seat(seats.BB)

	for pass := 0; pass < 2; pass++ {
		for _, idx := range funded {
			c, err := t.Deck.Draw()
			if err != nil {
				return nil, err
			}
			t.Players[idx].Hand = append(t.Players[idx].Hand, c)
		}
	}

	// 前注
	if e.blind.Ante > 0 {
		for _, idx := range funded {
			p := t.Players[idx]
			amount := blind.Post(p.Chips, e.blind.Ante)
			p.Chips -= amount
			p.TotalBet += amount
			t.Pot += amount
			if p.Chips == 0 {
				p.AllIn = true
			}
		}
	}

	// 大小盲
	if t.SBIndex != util.UnsetValue {
		t.commit(t.Players[t.SBIndex], e.blind.SB)
		t.commit(t.Players[t.BBIndex], e.blind.BB)
		if t.CurrentBet < e.blind.BB {
			t.CurrentBet = e.blind.BB
		}
	}

	t.GamePhase = Phase_Preflop

	events := []model.Event{
		model.StateUpdated(),
		model.Message("Hand #%d. %s has the button", t.HandCount, t.Players[t.DealerIndex].Name),
	}

	if t.RoundComplete() {
		next, err := e.completeRound()
		if err != nil {
			return nil, err
		}
		return append(events, next...), nil
	}

	e.moveCursorFrom(seat(seats.FirstToAct))

	return append(events, e.toAct()...), nil
}

func (e *Engine) needsAction(p *Player) bool {
	return p.CanAct() && (!p.HasActed || p.CurrentBet < e.table.CurrentBet)
}

// moveCursorFrom gives the turn to the first player from start, wrapping around, who still owes an action.
func (e *Engine) moveCursorFrom(start int) bool {
	t := e.table
	n := len(t.Players)

	for step := 0; step < n; step++ {
		idx := ((start+step)%n + n) % n
		if e.needsAction(t.Players[idx]) {
			t.CurrentPlayerIndex = idx
			return true
		}
	}

	t.CurrentPlayerIndex = util.UnsetValue
	return false
}

func (e *Engine) toAct() []model.Event {
	current := e.table.CurrentPlayer()
	if current == nil {
		return nil
	}
	return []model.Event{
		model.Message("%s to act", current.Name),
	}
}

func (e *Engine) currentActor(playerID string) (*Player, error) {
	t := e.table

	if !t.IsBettingPhase() {
		return nil, model.ErrWrongPhase
	}

	current := t.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return nil, model.ErrNotYourTurn
	}

	return current, nil
}

// reopen makes every other active player act again after an aggressive action.
func (e *Engine) reopen(aggressor *Player) {
	for _, p := range e.table.Players {
		if p != aggressor && p.CanAct() {
			p.HasActed = false
		}
	}
}

func (e *Engine) fold(playerID string) ([]model.Event, error) {
	p, err := e.currentActor(playerID)
	if err != nil {
		return nil, err
	}

	p.Folded = true
	p.HasActed = true

	return e.withAfterAction(model.Message("%s folds", p.Name))
}

func (e *Engine) check(playerID string) ([]model.Event, error) {
	p, err := e.currentActor(playerID)
	if err != nil {
		return nil, err
	}

	if p.CurrentBet < e.table.CurrentBet {
		return nil, model.ErrCannotCheck
	}

	p.HasActed = true

	return e.withAfterAction(model.Message("%s checks", p.Name))
}

func (e *Engine) call(playerID string) ([]model.Event, error) {
	p, err := e.currentActor(playerID)
	if err != nil {
		return nil, err
	}

	diff := e.table.CurrentBet - p.CurrentBet
	if diff <= 0 {
		p.HasActed = true
		return e.withAfterAction(model.Message("%s checks", p.Name))
	}

	if diff > p.Chips {
		return nil, model.ErrInsufficientChips
	}

	e.table.commit(p, diff)
	p.HasActed = true

	return e.withAfterAction(model.Message("%s calls %d", p.Name, diff))
}

// raise takes the new total bet for the street, not the increment.
func (e *Engine) raise(playerID string, amount int64) ([]model.Event, error) {
	p, err := e.currentActor(playerID)
	if err != nil {
		return nil, err
	}

	if amount <= e.table.CurrentBet {
		return nil, model.ErrInvalidAmount
	}

	diff := amount - p.CurrentBet
	if diff > p.Chips {
		return nil, model.ErrInsufficientChips
	}

	e.table.commit(p, diff)
	e.reopen(p)
	p.HasActed = true

	return e.withAfterAction(model.Message("%s raises to %d", p.Name, amount))
}

func (e *Engine) allIn(playerID string) ([]model.Event, error) {
	p, err := e.currentActor(playerID)
	if err != nil {
		return nil, err
	}

	prevBet := e.table.CurrentBet
	amount := e.table.commit(p, p.Chips)
	if p.CurrentBet > prevBet {
		e.reopen(p)
	}
	p.HasActed = true

	return e.withAfterAction(model.Message("%s is all in with %d", p.Name, amount))
}

func (e *Engine) withAfterAction(msg model.Event) ([]model.Event, error) {
	next, err := e.afterAction()
	if err != nil {
		return nil, err
	}

	events := []model.Event{model.StateUpdated(), msg}
	return append(events, next...), nil
}

// afterAction settles a fold out, closes a finished betting round or passes the turn.
func (e *Engine) afterAction() ([]model.Event, error) {
	t := e.table

	if len(t.Contenders()) <= 1 {
		return e.awardByFold(), nil
	}

	if t.RoundComplete() {
		return e.completeRound()
	}

	e.moveCursorFrom(t.CurrentPlayerIndex + 1)

	return e.toAct(), nil
}

func (e *Engine) completeRound() ([]model.Event, error) {
	t := e.table
	t.CurrentPlayerIndex = util.UnsetValue

	if !t.Settings.AutoAdvance {
		return []model.Event{
			model.Message("Betting round complete"),
		}, nil
	}

	return e.dealNextStreet()
}

func (e *Engine) nextPhase() ([]model.Event, error) {
	t := e.table

	if !t.IsBettingPhase() {
		return nil, model.ErrWrongPhase
	}

	if !t.RoundComplete() {
		return nil, model.ErrBettingInProgress
	}

	return e.dealNextStreet()
}

func (e *Engine) dealNextStreet() ([]model.Event, error) {
	t := e.table

	next, count := Phase_Showdown, 0
	switch t.GamePhase {
	case Phase_Preflop:
		next, count = Phase_Flop, 3
	case Phase_Flop:
		next, count = Phase_Turn, 1
	case Phase_Turn:
		next, count = Phase_River, 1
	}

	if next == Phase_Showdown {
		return e.showdown(), nil
	}

	burned, err := t.Deck.Burn()
	if err != nil {
		return nil, err
	}
	t.BurnPile = append(t.BurnPile, burned)

	drawn, err := t.Deck.DrawN(count)
	if err != nil {
		return nil, err
	}
	t.Community = append(t.Community, drawn...)

	for _, p := range t.Players {
		p.CurrentBet = 0
		p.HasActed = false
	}
	t.CurrentBet = 0
	t.GamePhase = next

	events := []model.Event{
		model.StateUpdated(),
		model.Message("%s dealt", next),
	}

	if len(t.Actors()) <= 1 {
		t.CurrentPlayerIndex = util.UnsetValue
		if !t.Settings.AutoAdvance {
			return events, nil
		}

		// nobody is left to bet so the board runs out
		rest, err := e.dealNextStreet()
		if err != nil {
			return nil, err
		}
		return append(events, rest...), nil
	}

	e.moveCursorFrom(t.DealerIndex + 1)

	return append(events, e.toAct()...), nil
}

func (e *Engine) showdown() []model.Event {
	t := e.table
	t.GamePhase = Phase_Showdown
	t.CurrentPlayerIndex = util.UnsetValue

	result := HandResult{
		Pot:        t.Pot,
		Evaluation: EvaluationSimplified,
		Hands:      make([]HandScore, 0),
	}

	var winner *Player
	best := util.UnsetValue
	for _, p := range t.Contenders() {
		cards := append(card.Copy(p.Hand), t.Community...)
		score := Evaluate(cards)

		hand := HandScore{
			ID:    p.ID,
			Name:  p.Name,
			Cards: cards,
			Tier:  score.Tier,
			Score: score.Value,
		}
		if desc, err := Describe(cards); err == nil {
			hand.Description = desc
		}
		result.Hands = append(result.Hands, hand)

		// ties go to the earlier seat
		if score.Value > best {
			best = score.Value
			winner = p
		}
	}

	events := []model.Event{model.StateUpdated()}

	if winner != nil {
		winner.Chips += t.Pot
		result.WinnerID = winner.ID
		result.WinnerName = winner.Name
		events = append(events, model.Message("%s wins %d", winner.Name, t.Pot))
	}

	t.Pot = 0
	t.LastResult = &result
	t.GamePhase = Phase_Finished

	return append(events, model.RoundResult(result))
}

func (e *Engine) awardByFold() []model.Event {
	t := e.table
	t.CurrentPlayerIndex = util.UnsetValue
	t.GamePhase = Phase_Finished

	contenders := t.Contenders()
	if len(contenders) == 0 {
		return []model.Event{
			model.StateUpdated(),
			model.Message("Hand abandoned"),
		}
	}

	winner := contenders[0]
	pot := t.Pot
	winner.Chips += pot
	t.Pot = 0

	result := HandResult{
		WinnerID:   winner.ID,
		WinnerName: winner.Name,
		Pot:        pot,
		ByFold:     true,
	}
	t.LastResult = &result

	return []model.Event{
		model.StateUpdated(),
		model.RoundResult(result),
		model.Message("%s wins %d. Winner by fold", winner.Name, pot),
	}
}
