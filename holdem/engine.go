package holdem

import (
	"math/rand"
	"time"

	"github.com/weedbox/casinotable/blind"
	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/model"
	"github.com/weedbox/casinotable/util"
)

const (
	Action_StartGame = "start_game"
	Action_NextRound = "next_round"
	Action_NextPhase = "next_phase"
	Action_Fold      = "fold"
	Action_Check     = "check"
	Action_Call      = "call"
	Action_Raise     = "raise"
	Action_AllIn     = "all_in"
	Action_PlaceBet  = "place_bet"
)

// DeckBuilder returns a freshly shuffled single deck for each hand.
type DeckBuilder func() (*card.Deck, error)

type EngineOpt func(*Engine)

func WithDeckBuilder(builder DeckBuilder) EngineOpt {
	return func(e *Engine) {
		e.buildDeck = builder
	}
}

func WithRand(rng *rand.Rand) EngineOpt {
	return func(e *Engine) {
		e.buildDeck = func() (*card.Deck, error) {
			return card.NewDeck(1, card.WithRand(rng))
		}
	}
}

type Engine struct {
	table     *Table
	blind     blind.Blind
	buildDeck DeckBuilder
}

func NewEngine(id string, croupier model.Croupier, settings Settings, opts ...EngineOpt) (*Engine, error) {
	e := &Engine{
		blind: blind.NewBlind(settings.SmallBlind, settings.BigBlind, settings.Ante),
		buildDeck: func() (*card.Deck, error) {
			return card.NewDeck(1)
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	deck, err := e.buildDeck()
	if err != nil {
		return nil, err
	}

	e.table = &Table{
		ID:                 id,
		Croupier:           croupier,
		Settings:           settings,
		Players:            make([]*Player, 0),
		Deck:               deck,
		Community:          []card.Card{},
		BurnPile:           []card.Card{},
		Muck:               []card.Card{},
		GamePhase:          Phase_Waiting,
		DealerIndex:        util.UnsetValue,
		SBIndex:            util.UnsetValue,
		BBIndex:            util.UnsetValue,
		CurrentPlayerIndex: util.UnsetValue,
		CreatedAt:          time.Now().Unix(),
	}
	e.table.RefreshUpdateAt()

	return e, nil
}

func (e *Engine) ID() string {
	return e.table.ID
}

func (e *Engine) GameType() model.GameType {
	return model.GameType_Poker
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
		GameType:     model.GameType_Poker,
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

	if t.GamePhase != Phase_Waiting && t.GamePhase != Phase_Finished {
		return nil, model.ErrRoundInProgress
	}

	t.Players = append(t.Players, &Player{
		ID:    playerID,
		Name:  name,
		Chips: t.Settings.StartingChips,
		Hand:  []card.Card{},
	})
	t.RefreshUpdateAt()

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s joined the table", name),
	}, nil
}

// PlayerLeave folds a player still in the hand and mucks their cards.
func (e *Engine) PlayerLeave(playerID string) ([]model.Event, error) {
	t := e.table

	idx := t.FindPlayerIdx(playerID)
	if idx == util.UnsetValue {
		return nil, model.ErrPlayerNotFound
	}

	backup, err := t.Clone()
	if err != nil {
		return nil, err
	}

	leaving := t.Players[idx]
	events := []model.Event{
		model.StateUpdated(),
		model.Message("%s left the table", leaving.Name),
	}

	wasTurn := t.IsBettingPhase() && idx == t.CurrentPlayerIndex

	t.Muck = append(t.Muck, leaving.Hand...)
	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)

	// seats after the vacated one move down, the vacated seat itself points at its predecessor
	shift := func(seat int) int {
		if seat == util.UnsetValue || seat < idx {
			return seat
		}
		return seat - 1
	}
	t.DealerIndex = shift(t.DealerIndex)
	t.SBIndex = shift(t.SBIndex)
	t.BBIndex = shift(t.BBIndex)
	t.CurrentPlayerIndex = shift(t.CurrentPlayerIndex)

	if t.IsBettingPhase() && leaving.IsContender() {
		switch {
		case wasTurn:
			next, err := e.afterAction()
			if err != nil {
				e.table = backup
				return nil, err
			}
			events = append(events, next...)
		case len(t.Contenders()) <= 1:
			events = append(events, e.awardByFold()...)
		}
	}

	t.RefreshUpdateAt()

	return events, nil
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
	case Action_StartGame:
		return e.croupierOnly(action, func() ([]model.Event, error) {
			if e.table.GamePhase != Phase_Waiting {
				return nil, model.ErrWrongPhase
			}
			return e.startHand()
		})
	case Action_NextRound:
		return e.croupierOnly(action, func() ([]model.Event, error) {
			if e.table.GamePhase != Phase_Finished {
				return nil, model.ErrWrongPhase
			}
			return e.startHand()
		})
	case Action_NextPhase:
		return e.croupierOnly(action, e.nextPhase)
	case model.Action_AssignChips:
		return e.croupierOnly(action, func() ([]model.Event, error) {
			return e.assignChips(action.PlayerID, action.Amount)
		})
	case Action_PlaceBet:
		return e.placeBet(action.ActorID, action.Amount)
	case Action_Fold:
		return e.fold(action.ActorID)
	case Action_Check:
		return e.check(action.ActorID)
	case Action_Call:
		return e.call(action.ActorID)
	case Action_Raise:
		return e.raise(action.ActorID, action.Amount)
	case Action_AllIn:
		return e.allIn(action.ActorID)
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

// placeBet adds chips to the pot the next hand plays for.
func (e *Engine) placeBet(playerID string, amount int64) ([]model.Event, error) {
	t := e.table

	if t.GamePhase != Phase_Waiting && t.GamePhase != Phase_Finished {
		return nil, model.ErrWrongPhase
	}

	idx := t.FindPlayerIdx(playerID)
	if idx == util.UnsetValue {
		return nil, model.ErrPlayerNotFound
	}

	if amount <= 0 {
		return nil, model.ErrInvalidAmount
	}

	p := t.Players[idx]
	if amount > p.Chips {
		return nil, model.ErrInsufficientChips
	}

	p.Chips -= amount
	t.Pot += amount

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s adds %d to the pot", p.Name, amount),
	}, nil
}

func (e *Engine) Serial() int64 {
	return e.table.UpdateSerial
}
