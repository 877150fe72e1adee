package roulette

import (
	"math/rand"
	"time"

	"github.com/weedbox/casinotable/model"
	"github.com/weedbox/casinotable/util"
)

const (
	Action_ConfirmBets = "confirm_bets"
	Action_Spin        = "spin"
	Action_NewRound    = "new_round"

	historySize = 12
)

type SpinPayload struct {
	Result   int     `json:"result"`
	Rotation float64 `json:"rotation"`
}

type PlayerResult struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Won      bool        `json:"won"`
	Bets     []model.Bet `json:"bets"`
	Hits     []model.Bet `json:"hits"`
	Winnings int64       `json:"winnings"`
	NewChips int64       `json:"newChips"`
}

type RoundResult struct {
	WinningNumber int            `json:"winningNumber"`
	Color         string         `json:"color"`
	Players       []PlayerResult `json:"players"`
}

type EngineOpt func(*Engine)

func WithRand(rng *rand.Rand) EngineOpt {
	return func(e *Engine) {
		e.rng = rng
	}
}

type Engine struct {
	table *Table
	rng   *rand.Rand
}

func NewEngine(id string, croupier model.Croupier, settings Settings, opts ...EngineOpt) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	e.table = &Table{
		ID:            id,
		Croupier:      croupier,
		Settings:      settings,
		Players:       make([]*Player, 0),
		GamePhase:     Phase_Betting,
		WinningNumber: util.UnsetValue,
		History:       []int{},
		CreatedAt:     time.Now().Unix(),
	}
	e.table.RefreshUpdateAt()

	return e
}

func (e *Engine) ID() string {
	return e.table.ID
}

func (e *Engine) GameType() model.GameType {
	return model.GameType_Roulette
}

func (e *Engine) Croupier() model.Croupier {
	return e.table.Croupier
}

func (e *Engine) GetTable() *Table {
	return e.table
}

func (e *Engine) HasPlayer(playerID string) bool {
	return e.table.FindPlayerIdx(playerID) != util.UnsetValue
}

func (e *Engine) PlayerIDs() []string {
	ids := make([]string, 0, len(e.table.Players))
	for _, p := range e.table.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

func (e *Engine) Summary() model.TableSummary {
	return model.TableSummary{
		ID:           e.table.ID,
		GameType:     model.GameType_Roulette,
		CroupierName: e.table.Croupier.Name,
		PlayerCount:  len(e.table.Players),
		MaxPlayers:   e.table.Settings.MaxPlayers,
		GamePhase:    string(e.table.GamePhase),
		CreatedAt:    e.table.CreatedAt,
	}
}

func (e *Engine) PlayerJoin(playerID string, name string) ([]model.Event, error) {
	t := e.table

	if playerID == t.Croupier.ID {
		return nil, model.ErrCroupierCannotPlay
	}

	if e.HasPlayer(playerID) {
		return nil, model.ErrPlayerAlreadyIn
	}

	if len(t.Players) >= t.Settings.MaxPlayers {
		return nil, model.ErrTableFull
	}

	if t.GamePhase == Phase_Spinning {
		return nil, model.ErrRoundInProgress
	}

	t.Players = append(t.Players, &Player{
		ID:    playerID,
		Name:  name,
		Chips: t.Settings.StartingChips,
		Bets:  []model.Bet{},
	})
	t.RefreshUpdateAt()

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s joined the table", name),
	}, nil
}

// PlayerLeave removes the player. Confirmed stakes are forfeited.
func (e *Engine) PlayerLeave(playerID string) ([]model.Event, error) {
	t := e.table

	idx := t.FindPlayerIdx(playerID)
	if idx == util.UnsetValue {
		return nil, model.ErrPlayerNotFound
	}

	leaving := t.Players[idx]
	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)
	t.RefreshUpdateAt()

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s left the table", leaving.Name),
	}, nil
}

func (e *Engine) Apply(action model.Action) ([]model.Event, error) {
	backup, err := e.table.Clone()
	if err != nil {
		return nil, err
	}

	events, err := e.apply(action)
	if err != nil {
		e.table = backup
		return nil, err
	}

	e.table.RefreshUpdateAt()

	return events, nil
}

func (e *Engine) apply(action model.Action) ([]model.Event, error) {
	switch action.Kind {
	case Action_ConfirmBets:
		return e.confirmBets(action.ActorID, action.Bets)
	case Action_Spin:
		return e.croupierOnly(action, e.spin)
	case Action_NewRound:
		return e.croupierOnly(action, e.newRound)
	case model.Action_AssignChips:
		return e.croupierOnly(action, func() ([]model.Event, error) {
			return e.assignChips(action.PlayerID, action.Amount)
		})
	}

	return nil, model.ErrUnknownAction
}

func (e *Engine) croupierOnly(action model.Action, fn func() ([]model.Event, error)) ([]model.Event, error) {
	if action.ActorID != e.table.Croupier.ID {
		return nil, model.ErrNotCroupier
	}
	return fn()
}

func (e *Engine) assignChips(playerID string, amount int64) ([]model.Event, error) {
	if amount < 0 {
		return nil, model.ErrInvalidAmount
	}

	idx := e.table.FindPlayerIdx(playerID)
	if idx == util.UnsetValue {
		return nil, model.ErrPlayerNotFound
	}

	p := e.table.Players[idx]
	p.Chips = amount

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s now has %d chips", p.Name, amount),
	}, nil
}

func (e *Engine) confirmBets(playerID string, bets []model.Bet) ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Betting {
		return nil, model.ErrWrongPhase
	}

	idx := t.FindPlayerIdx(playerID)
	if idx == util.UnsetValue {
		return nil, model.ErrPlayerNotFound
	}

	p := t.Players[idx]
	if p.Ready {
		return nil, model.ErrAlreadyBet
	}

	if len(bets) == 0 {
		return nil, model.ErrInvalidAmount
	}

	total := int64(0)
	for _, bet := range bets {
		if !IsValidBetType(bet.Type) {
			return nil, model.ErrInvalidBetType
		}
		if bet.Amount <= 0 {
			return nil, model.ErrInvalidAmount
		}
		// total stays within [0, Chips] so the subtraction cannot overflow
		if bet.Amount > p.Chips-total {
			return nil, model.ErrInsufficientChips
		}
		total += bet.Amount
	}

	p.Chips -= total
	p.TotalBet = total
	p.Bets = append([]model.Bet{}, bets...)
	p.Ready = true

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s bets %d", p.Name, total),
	}, nil
}

func (e *Engine) spin() ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Betting {
		return nil, model.ErrWrongPhase
	}

	t.WinningNumber = e.rng.Intn(PocketCount)
	t.Rotation = Rotation(t.WinningNumber, e.rng.Float64())
	t.GamePhase = Phase_Spinning

	return []model.Event{
		model.StateUpdated(),
		{
			Type: model.EventType_RouletteSpin,
			Payload: SpinPayload{
				Result:   t.WinningNumber,
				Rotation: t.Rotation,
			},
		},
		model.Message("The wheel is spinning"),
	}, nil
}

// ResolveSpin pays out the pending spin. It is driven by a timer rather than a player.
func (e *Engine) ResolveSpin() ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Spinning {
		return nil, model.ErrWrongPhase
	}

	number := t.WinningNumber
	result := RoundResult{
		WinningNumber: number,
		Color:         ColorOf(number),
		Players:       make([]PlayerResult, 0, len(t.Players)),
	}

	for _, p := range t.Players {
		winnings := int64(0)
		hits := make([]model.Bet, 0)
		for _, bet := range p.Bets {
			multiplier := Multiplier(bet.Type, number)
			if multiplier > 0 {
				winnings += bet.Amount * int64(multiplier)
				hits = append(hits, bet)
			}
		}

		p.Chips += winnings

		result.Players = append(result.Players, PlayerResult{
			ID:       p.ID,
			Name:     p.Name,
			Won:      winnings > 0,
			Bets:     p.Bets,
			Hits:     hits,
			Winnings: winnings,
			NewChips: p.Chips,
		})

		p.clearBets()
	}

	t.History = append([]int{number}, t.History...)
	if len(t.History) > historySize {
		t.History = t.History[:historySize]
	}
	t.RoundCount++

	msg := model.Message("%d %s. Place your bets", number, result.Color)
	if t.Settings.ManualNewRound {
		t.GamePhase = Phase_Finished
		msg = model.Message("%d %s. Waiting for the croupier", number, result.Color)
	} else {
		t.GamePhase = Phase_Betting
	}
	t.RefreshUpdateAt()

	return []model.Event{
		model.RoundResult(result),
		model.StateUpdated(),
		msg,
	}, nil
}

func (e *Engine) newRound() ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Finished {
		return nil, model.ErrWrongPhase
	}

	for _, p := range t.Players {
		p.clearBets()
	}
	t.GamePhase = Phase_Betting

	return []model.Event{
		model.StateUpdated(),
		model.Message("New round. Place your bets"),
	}, nil
}

func (e *Engine) BettingOpen() bool {
	return e.table.GamePhase == Phase_Betting
}

func (e *Engine) ReadyPlayerIDs() []string {
	ids := make([]string, 0)
	for _, p := range e.table.Players {
		if p.Ready {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func (e *Engine) Serial() int64 {
	return e.table.UpdateSerial
}
