package casinotable

import (
	"math/rand"

	"github.com/weedbox/casinotable/blackjack"
	"github.com/weedbox/casinotable/holdem"
	"github.com/weedbox/casinotable/model"
	"github.com/weedbox/casinotable/roulette"
)

// TableEngine is one running table. Engines are not safe for concurrent use, the dispatcher serializes every call.
type TableEngine interface {
	ID() string
	GameType() model.GameType
	Croupier() model.Croupier
	Summary() model.TableSummary
	Serial() int64

	HasPlayer(playerID string) bool
	PlayerIDs() []string
	PlayerJoin(playerID string, name string) ([]model.Event, error)
	PlayerLeave(playerID string) ([]model.Event, error)

	Apply(action model.Action) ([]model.Event, error)
	Snapshot(viewerID string) interface{}
}

// BetCollector is implemented by games with a betting window that fills player by player.
type BetCollector interface {
	BettingOpen() bool
	ReadyPlayerIDs() []string
}

// SpinResolver is implemented by games that resolve a round on a timer.
type SpinResolver interface {
	ResolveSpin() ([]model.Event, error)
}

var (
	_ TableEngine  = (*blackjack.Engine)(nil)
	_ TableEngine  = (*holdem.Engine)(nil)
	_ TableEngine  = (*roulette.Engine)(nil)
	_ BetCollector = (*blackjack.Engine)(nil)
	_ BetCollector = (*roulette.Engine)(nil)
	_ SpinResolver = (*roulette.Engine)(nil)
)

type TableEngineOpt func(*tableEngineOptions)

type tableEngineOptions struct {
	rng *rand.Rand
}

// WithRand makes shuffles and spins reproducible.
func WithRand(rng *rand.Rand) TableEngineOpt {
	return func(o *tableEngineOptions) {
		o.rng = rng
	}
}

func NewTableEngine(gameType model.GameType, tableID string, croupier model.Croupier, setting TableSetting, opts ...TableEngineOpt) (TableEngine, error) {
	options := tableEngineOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	switch gameType {
	case model.GameType_Blackjack:
		engineOpts := make([]blackjack.EngineOpt, 0)
		if options.rng != nil {
			engineOpts = append(engineOpts, blackjack.WithRand(options.rng))
		}
		engine, err := blackjack.NewEngine(tableID, croupier, setting.Blackjack, engineOpts...)
		if err != nil {
			return nil, err
		}
		return engine, nil
	case model.GameType_Poker:
		engineOpts := make([]holdem.EngineOpt, 0)
		if options.rng != nil {
			engineOpts = append(engineOpts, holdem.WithRand(options.rng))
		}
		engine, err := holdem.NewEngine(tableID, croupier, setting.Poker, engineOpts...)
		if err != nil {
			return nil, err
		}
		return engine, nil
	case model.GameType_Roulette:
		engineOpts := make([]roulette.EngineOpt, 0)
		if options.rng != nil {
			engineOpts = append(engineOpts, roulette.WithRand(options.rng))
		}
		return roulette.NewEngine(tableID, croupier, setting.Roulette, engineOpts...), nil
	}

	return nil, model.ErrInvalidGameType
}
