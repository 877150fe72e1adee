package blackjack

import (
	"math/rand"
	"time"

	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/model"
)

const (
	Action_StartBetting   = "start_betting"
	Action_PlaceBet       = "place_bet"
	Action_Ready          = "ready"
	Action_DealCards      = "deal_cards"
	Action_Hit            = "hit"
	Action_Stand          = "stand"
	Action_DoubleDown     = "double_down"
	Action_PlayDealerHand = "play_dealer_hand"
	Action_RevealNextCard = "reveal_next_card"
	Action_NewRound       = "new_round"
)

// DeckBuilder returns a freshly shuffled shoe.
type DeckBuilder func(copies int) (*card.Deck, error)

type EngineOpt func(*Engine)

func WithDeckBuilder(builder DeckBuilder) EngineOpt {
	return func(e *Engine) {
		e.buildDeck = builder
	}
}

func WithRand(rng *rand.Rand) EngineOpt {
	return func(e *Engine) {
		e.buildDeck = func(copies int) (*card.Deck, error) {
			return card.NewDeck(copies, card.WithRand(rng))
		}
	}
}

type Engine struct {
	table     *Table
	buildDeck DeckBuilder
}

func NewEngine(id string, croupier model.Croupier, settings Settings, opts ...EngineOpt) (*Engine, error) {
	e := &Engine{
		buildDeck: func(copies int) (*card.Deck, error) {
			return card.NewDeck(copies)
		},
	}
	for _, opt := range opts {
		opt(e)
	}

	deck, err := e.buildDeck(settings.Decks)
	if err != nil {
		return nil, err
	}

	e.table = &Table{
		ID:                 id,
		Croupier:           croupier,
		Settings:           settings,
		Players:            make([]*Player, 0),
		Deck:               deck,
		DealerHand:         []card.Card{},
		Discard:            []card.Card{},
		GamePhase:          Phase_Waiting,
		CurrentPlayerIndex: UnsetValue,
		CreatedAt:          time.Now().Unix(),
	}
	e.table.RefreshUpdateAt()

	return e, nil
}

func (e *Engine) ID() string {
	return e.table.ID
}

func (e *Engine) GameType() model.GameType {
	return model.GameType_Blackjack
}

func (e *Engine) Croupier() model.Croupier {
	return e.table.Croupier
}

func (e *Engine) GetTable() *Table {
	return e.table
}

func (e *Engine) HasPlayer(playerID string) bool {
	return e.table.FindPlayerIdx(playerID) != UnsetValue
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
		GameType:     model.GameType_Blackjack,
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

	switch t.GamePhase {
	case Phase_Waiting, Phase_Betting, Phase_Finished:
	default:
		return nil, model.ErrRoundInProgress
	}

	t.Players = append(t.Players, &Player{
		ID:     playerID,
		Name:   name,
		Chips:  t.Settings.StartingChips,
		Hand:   []card.Card{},
		Status: Status_Waiting,
	})
	t.RefreshUpdateAt()

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s joined the table", name),
	}, nil
}

// PlayerLeave removes the player. Cards go to the discard pile and any stake is forfeited.
func (e *Engine) PlayerLeave(playerID string) ([]model.Event, error) {
	t := e.table

	idx := t.FindPlayerIdx(playerID)
	if idx == UnsetValue {
		return nil, model.ErrPlayerNotFound
	}

	leaving := t.Players[idx]
	t.Discard = append(t.Discard, leaving.Hand...)
	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)

	events := []model.Event{
		model.StateUpdated(),
		model.Message("%s left the table", leaving.Name),
	}

	if t.GamePhase == Phase_Playing {
		switch {
		case idx < t.CurrentPlayerIndex:
			t.CurrentPlayerIndex--
		case idx == t.CurrentPlayerIndex:
			// the next player has shifted into this slot
			t.CurrentPlayerIndex--
			events = append(events, e.advanceTurn()...)
		}
	}

	t.RefreshUpdateAt()

	return events, nil
}

// Apply runs the action against a clone boundary. On any error the table is restored.
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
	case Action_StartBetting:
		return e.croupierOnly(action, e.startBetting)
	case Action_DealCards:
		return e.croupierOnly(action, e.dealCards)
	case Action_PlayDealerHand:
		return e.croupierOnly(action, e.playDealerHand)
	case Action_RevealNextCard:
		return e.croupierOnly(action, e.revealNextCard)
	case Action_NewRound:
		return e.croupierOnly(action, e.newRound)
	case model.Action_AssignChips:
		return e.croupierOnly(action, func() ([]model.Event, error) {
			return e.assignChips(action.PlayerID, action.Amount)
		})
	case Action_PlaceBet:
		return e.placeBet(action.ActorID, action.Amount)
	case Action_Ready:
		return e.ready(action.ActorID)
	case Action_Hit:
		return e.hit(action.ActorID)
	case Action_Stand:
		return e.stand(action.ActorID)
	case Action_DoubleDown:
		return e.doubleDown(action.ActorID)
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
	if idx == UnsetValue {
		return nil, model.ErrPlayerNotFound
	}

	p := e.table.Players[idx]
	p.Chips = amount

	return []model.Event{
		model.StateUpdated(),
		model.Message("%s now has %d chips", p.Name, amount),
	}, nil
}

// reshuffle replaces the deck with a fresh shoe. Only valid while no hand holds cards.
func (e *Engine) reshuffle() error {
	deck, err := e.buildDeck(e.table.Settings.Decks)
	if err != nil {
		return err
	}

	e.table.Deck = deck
	e.table.Discard = []card.Card{}
	return nil
}

func (e *Engine) BettingOpen() bool {
	return e.table.GamePhase == Phase_Betting
}

// ReadyPlayerIDs lists players who have placed a bet or declared ready this round.
func (e *Engine) ReadyPlayerIDs() []string {
	ids := make([]string, 0)
	for _, p := range e.table.ReadyPlayers() {
		ids = append(ids, p.ID)
	}
	return ids
}

func (e *Engine) Serial() int64 {
	return e.table.UpdateSerial
}
