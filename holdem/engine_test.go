package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/model"
	"github.com/weedbox/casinotable/util"
)

const croupierID = "croupier"

// riggedDeck deals the given cards first. The rest of a standard deck lies underneath.
func riggedDeck(draws ...card.Card) DeckBuilder {
	return func() (*card.Deck, error) {
		used := make(map[card.Card]bool)
		for _, c := range draws {
			used[c] = true
		}

		all := make([]card.Card, 0, card.BaseDeckSize)
		for _, suit := range card.Suits {
			for _, rank := range card.Ranks {
				c := card.New(rank, suit)
				if !used[c] {
					all = append(all, c)
				}
			}
		}
		for i := len(draws) - 1; i >= 0; i-- {
			all = append(all, draws[i])
		}
		return card.NewStackedDeck(all), nil
	}
}

func newTestEngine(t *testing.T, settings Settings, builder DeckBuilder, players ...string) *Engine {
	e, err := NewEngine("table_poker", model.Croupier{ID: croupierID, Name: "Dealer"}, settings, WithDeckBuilder(builder))
	require.NoError(t, err)

	for _, id := range players {
		_, err := e.PlayerJoin(id, id)
		require.NoError(t, err)
	}
	return e
}

func act(t *testing.T, e *Engine, kind string, actor string, amount int64) []model.Event {
	events, err := e.Apply(model.Action{Kind: kind, ActorID: actor, Amount: amount})
	require.NoError(t, err, "%s by %s", kind, actor)
	return events
}

func handResult(events []model.Event) *HandResult {
	for _, evt := range events {
		if evt.Type == model.EventType_RoundResult {
			result := evt.Payload.(HandResult)
			return &result
		}
	}
	return nil
}

// headsUpDeck gives p1 the first hole cards, p2 the second, then the burns and board.
func headsUpDeck(p1 []card.Card, p2 []card.Card, board []card.Card) DeckBuilder {
	burns := cards("4d", "6d", "8d")
	draws := []card.Card{p1[0], p2[0], p1[1], p2[1], burns[0]}
	draws = append(draws, board[:3]...)
	draws = append(draws, burns[1], board[3], burns[2], board[4])
	return riggedDeck(draws...)
}

func TestHoldem_BlindsAndFirstToAct(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), riggedDeck(), "a", "b", "c")

	act(t, e, Action_StartGame, croupierID, 0)

	table := e.GetTable()
	assert.Equal(t, Phase_Preflop, table.GamePhase)
	assert.Equal(t, 0, table.DealerIndex)
	assert.Equal(t, 1, table.SBIndex)
	assert.Equal(t, 2, table.BBIndex)
	assert.Equal(t, int64(30), table.Pot)
	assert.Equal(t, int64(20), table.CurrentBet)
	assert.Equal(t, int64(990), table.Players[1].Chips)
	assert.Equal(t, int64(980), table.Players[2].Chips)
	assert.Equal(t, "a", table.CurrentPlayer().ID)

	for _, p := range table.Players {
		assert.Len(t, p.Hand, 2)
	}
	assert.Equal(t, card.BaseDeckSize, table.CardCount())
}

func TestHoldem_FoldOutAwardsPot(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), riggedDeck(), "a", "b", "c")

	act(t, e, Action_StartGame, croupierID, 0)
	act(t, e, Action_Fold, "a", 0)
	events := act(t, e, Action_Fold, "b", 0)

	result := handResult(events)
	require.NotNil(t, result)
	assert.True(t, result.ByFold)
	assert.Equal(t, "c", result.WinnerID)
	assert.Equal(t, int64(30), result.Pot)

	table := e.GetTable()
	assert.Equal(t, Phase_Finished, table.GamePhase)
	assert.Equal(t, int64(0), table.Pot)
	assert.Equal(t, int64(1010), table.Players[2].Chips)

	// a fold win never reveals hole cards
	view := e.Snapshot("a").(TableView)
	assert.True(t, view.Players[2].Hand[0].IsHidden())
}

func TestHoldem_ShowdownFirstHighestScoreWins(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), headsUpDeck(
		cards("Ks", "Kh"),
		cards("2c", "7d"),
		cards("Kd", "5c", "9h", "3s", "Jc"),
	), "a", "b")

	act(t, e, Action_StartGame, croupierID, 0)

	// heads-up the button posts the big blind so b acts first
	table := e.GetTable()
	assert.Equal(t, 0, table.BBIndex)
	assert.Equal(t, "b", table.CurrentPlayer().ID)

	act(t, e, Action_Call, "b", 0)
	act(t, e, Action_Check, "a", 0)
	assert.Equal(t, Phase_Flop, e.GetTable().GamePhase)
	assert.Len(t, e.GetTable().Community, 3)

	var events []model.Event
	for _, phase := range []Phase{Phase_Turn, Phase_River, Phase_Finished} {
		act(t, e, Action_Check, "b", 0)
		events = act(t, e, Action_Check, "a", 0)
		assert.Equal(t, phase, e.GetTable().GamePhase)
	}

	result := handResult(events)
	require.NotNil(t, result)
	assert.False(t, result.ByFold)
	assert.Equal(t, EvaluationSimplified, result.Evaluation)
	assert.Equal(t, "a", result.WinnerID)
	assert.Equal(t, int64(40), result.Pot)
	require.Len(t, result.Hands, 2)
	assert.Equal(t, Tier_ThreeOfAKind, result.Hands[0].Tier)
	assert.Equal(t, 353, result.Hands[0].Score)
	assert.Equal(t, 36, result.Hands[1].Score)
	assert.NotEmpty(t, result.Hands[0].Description)

	table = e.GetTable()
	assert.Equal(t, int64(1020), table.Players[0].Chips)
	assert.Equal(t, int64(980), table.Players[1].Chips)
	assert.Len(t, table.BurnPile, 3)
	assert.Equal(t, card.BaseDeckSize, table.CardCount())

	view := e.Snapshot("b").(TableView)
	assert.False(t, view.Players[0].Hand[0].IsHidden())
}

func TestHoldem_TieGoesToEarlierSeat(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), headsUpDeck(
		cards("2c", "7d"),
		cards("2d", "7c"),
		cards("Kd", "5s", "9h", "3s", "Jh"),
	), "a", "b")

	act(t, e, Action_StartGame, croupierID, 0)
	act(t, e, Action_Call, "b", 0)
	act(t, e, Action_Check, "a", 0)

	var events []model.Event
	for i := 0; i < 3; i++ {
		act(t, e, Action_Check, "b", 0)
		events = act(t, e, Action_Check, "a", 0)
	}

	result := handResult(events)
	require.NotNil(t, result)
	assert.Equal(t, result.Hands[0].Score, result.Hands[1].Score)
	assert.Equal(t, "a", result.WinnerID)
}

func TestHoldem_RaiseReopensAction(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), riggedDeck(), "a", "b", "c")

	act(t, e, Action_StartGame, croupierID, 0)

	_, err := e.Apply(model.Action{Kind: Action_Check, ActorID: "a"})
	assert.ErrorIs(t, err, model.ErrCannotCheck)

	_, err = e.Apply(model.Action{Kind: Action_Raise, ActorID: "a", Amount: 20})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	_, err = e.Apply(model.Action{Kind: Action_Raise, ActorID: "a", Amount: 5000})
	assert.ErrorIs(t, err, model.ErrInsufficientChips)

	_, err = e.Apply(model.Action{Kind: Action_Call, ActorID: "b"})
	assert.ErrorIs(t, err, model.ErrNotYourTurn)

	act(t, e, Action_Raise, "a", 60)
	assert.Equal(t, int64(940), e.GetTable().Players[0].Chips)
	assert.Equal(t, int64(60), e.GetTable().CurrentBet)

	act(t, e, Action_Call, "b", 0)
	assert.Equal(t, "c", e.GetTable().CurrentPlayer().ID)
	assert.Equal(t, Phase_Preflop, e.GetTable().GamePhase)

	act(t, e, Action_Raise, "c", 100)
	assert.Equal(t, "a", e.GetTable().CurrentPlayer().ID)

	act(t, e, Action_Call, "a", 0)
	act(t, e, Action_Call, "b", 0)

	table := e.GetTable()
	assert.Equal(t, Phase_Flop, table.GamePhase)
	assert.Equal(t, int64(300), table.Pot)
	assert.Equal(t, int64(0), table.CurrentBet)
	assert.Equal(t, "b", table.CurrentPlayer().ID)
	for _, p := range table.Players {
		assert.Equal(t, int64(0), p.CurrentBet)
		assert.Equal(t, int64(100), p.TotalBet)
	}
}

func TestHoldem_AllInRunsOutBoard(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), headsUpDeck(
		cards("As", "Ah"),
		cards("2c", "7d"),
		cards("Kd", "5c", "9h", "3s", "Jc"),
	), "a", "b")

	act(t, e, Action_StartGame, croupierID, 0)
	act(t, e, Action_AllIn, "b", 0)
	assert.Equal(t, "a", e.GetTable().CurrentPlayer().ID)

	events := act(t, e, Action_Call, "a", 0)

	result := handResult(events)
	require.NotNil(t, result)
	assert.Equal(t, "a", result.WinnerID)
	assert.Equal(t, int64(2000), result.Pot)

	table := e.GetTable()
	assert.Equal(t, Phase_Finished, table.GamePhase)
	assert.Len(t, table.Community, 5)
	assert.Equal(t, int64(2000), table.Players[0].Chips)
	assert.Equal(t, int64(0), table.Players[1].Chips)
	assert.Equal(t, card.BaseDeckSize, table.CardCount())
}

func TestHoldem_ManualStreetPacing(t *testing.T) {
	settings := NewDefaultSettings()
	settings.AutoAdvance = false

	e := newTestEngine(t, settings, riggedDeck(), "a", "b")

	act(t, e, Action_StartGame, croupierID, 0)

	_, err := e.Apply(model.Action{Kind: Action_NextPhase, ActorID: croupierID})
	assert.ErrorIs(t, err, model.ErrBettingInProgress)

	act(t, e, Action_Call, "b", 0)
	act(t, e, Action_Check, "a", 0)
	assert.Equal(t, Phase_Preflop, e.GetTable().GamePhase)
	assert.Nil(t, e.GetTable().CurrentPlayer())
	assert.True(t, e.Snapshot(croupierID).(TableView).CanAdvance)

	_, err = e.Apply(model.Action{Kind: Action_Check, ActorID: "b"})
	assert.ErrorIs(t, err, model.ErrNotYourTurn)

	_, err = e.Apply(model.Action{Kind: Action_NextPhase, ActorID: "a"})
	assert.ErrorIs(t, err, model.ErrNotCroupier)

	act(t, e, Action_NextPhase, croupierID, 0)
	assert.Equal(t, Phase_Flop, e.GetTable().GamePhase)
	assert.Equal(t, "b", e.GetTable().CurrentPlayer().ID)
}

func TestHoldem_LeaveMidHandFoldsAndMucks(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), riggedDeck(), "a", "b", "c")

	act(t, e, Action_StartGame, croupierID, 0)
	require.Equal(t, "a", e.GetTable().CurrentPlayer().ID)

	_, err := e.PlayerLeave("a")
	require.NoError(t, err)

	table := e.GetTable()
	assert.Len(t, table.Muck, 2)
	assert.Equal(t, card.BaseDeckSize, table.CardCount())
	assert.Equal(t, "b", table.CurrentPlayer().ID)

	_, err = e.PlayerLeave("c")
	require.NoError(t, err)

	table = e.GetTable()
	assert.Equal(t, Phase_Finished, table.GamePhase)
	assert.Equal(t, int64(1020), table.Players[0].Chips)
	assert.Equal(t, card.BaseDeckSize, table.CardCount())
}

func TestHoldem_HoleCardVisibility(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), riggedDeck(), "a", "b", "c")
	act(t, e, Action_StartGame, croupierID, 0)

	view := e.Snapshot("a").(TableView)
	assert.False(t, view.Players[0].Hand[0].IsHidden())
	assert.True(t, view.Players[1].Hand[0].IsHidden())
	assert.True(t, view.Players[2].Hand[1].IsHidden())
	assert.Equal(t, []string{util.Position_Dealer}, view.Players[0].Positions)
	assert.Equal(t, []string{util.Position_BB}, view.Players[2].Positions)

	croupierView := e.Snapshot(croupierID).(TableView)
	for _, p := range croupierView.Players {
		assert.True(t, p.Hand[0].IsHidden())
	}
}

func TestHoldem_NextRoundRotatesButtonAndKeepsPreDealBets(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), riggedDeck(), "a", "b", "c")

	_, err := e.Apply(model.Action{Kind: Action_NextRound, ActorID: croupierID})
	assert.ErrorIs(t, err, model.ErrWrongPhase)

	act(t, e, Action_PlaceBet, "a", 50)
	assert.Equal(t, int64(50), e.GetTable().Pot)

	act(t, e, Action_StartGame, croupierID, 0)
	assert.Equal(t, int64(80), e.GetTable().Pot)

	_, err = e.Apply(model.Action{Kind: Action_PlaceBet, ActorID: "a", Amount: 10})
	assert.ErrorIs(t, err, model.ErrWrongPhase)

	act(t, e, Action_Fold, "a", 0)
	events := act(t, e, Action_Fold, "b", 0)
	result := handResult(events)
	require.NotNil(t, result)
	assert.Equal(t, int64(80), result.Pot)

	_, err = e.PlayerJoin("d", "d")
	require.NoError(t, err)

	act(t, e, Action_NextRound, croupierID, 0)
	table := e.GetTable()
	assert.Equal(t, 1, table.DealerIndex)
	assert.Equal(t, 2, table.SBIndex)
	assert.Equal(t, 3, table.BBIndex)
	assert.Equal(t, "a", table.CurrentPlayer().ID)
	assert.True(t, table.Players[3].InHand)
}

func TestHoldem_JoinRules(t *testing.T) {
	settings := NewDefaultSettings()
	e := newTestEngine(t, settings, riggedDeck(), "a")

	_, err := e.Apply(model.Action{Kind: Action_StartGame, ActorID: croupierID})
	assert.ErrorIs(t, err, model.ErrNotEnoughPlayers)

	for _, id := range []string{"b", "c", "d", "e", "f"} {
		_, err := e.PlayerJoin(id, id)
		require.NoError(t, err)
	}

	_, err = e.PlayerJoin("g", "g")
	assert.ErrorIs(t, err, model.ErrTableFull)

	_, err = e.PlayerLeave("f")
	require.NoError(t, err)

	act(t, e, Action_StartGame, croupierID, 0)
	_, err = e.PlayerJoin("g", "g")
	assert.ErrorIs(t, err, model.ErrRoundInProgress)
}

func TestHoldem_SinglePlayerTable(t *testing.T) {
	settings := NewDefaultSettings()
	settings.MinPlayers = 1

	e := newTestEngine(t, settings, riggedDeck(), "a")

	events := act(t, e, Action_StartGame, croupierID, 0)

	// no blinds are posted and nothing is left to bet, so the board runs out
	result := handResult(events)
	require.NotNil(t, result)
	assert.Equal(t, "a", result.WinnerID)
	assert.Equal(t, int64(1000), e.GetTable().Players[0].Chips)
	assert.Equal(t, Phase_Finished, e.GetTable().GamePhase)
}

func TestHoldem_EmptyStacksSitOut(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), riggedDeck(), "a", "b", "z")

	_, err := e.Apply(model.Action{Kind: model.Action_AssignChips, ActorID: croupierID, PlayerID: "z", Amount: 0})
	require.NoError(t, err)

	act(t, e, Action_StartGame, croupierID, 0)

	table := e.GetTable()
	z := table.Players[2]
	assert.False(t, z.InHand)
	assert.False(t, z.IsContender())
	assert.Empty(t, z.Hand)

	// heads-up between the funded seats, z never posts
	assert.Equal(t, 0, table.DealerIndex)
	assert.Equal(t, 1, table.SBIndex)
	assert.Equal(t, 0, table.BBIndex)
	assert.Equal(t, "b", table.CurrentPlayer().ID)
	assert.Equal(t, int64(30), table.Pot)
	assert.Equal(t, card.BaseDeckSize, table.CardCount())

	act(t, e, Action_Call, "b", 0)
	act(t, e, Action_Check, "a", 0)

	var events []model.Event
	for i := 0; i < 3; i++ {
		act(t, e, Action_Check, "b", 0)
		events = act(t, e, Action_Check, "a", 0)
	}

	result := handResult(events)
	require.NotNil(t, result)
	assert.NotEqual(t, "z", result.WinnerID)
	assert.Equal(t, int64(40), result.Pot)
	assert.Len(t, result.Hands, 2)
	assert.Equal(t, int64(0), e.GetTable().Players[2].Chips)
	assert.Equal(t, int64(2000), e.GetTable().Players[0].Chips+e.GetTable().Players[1].Chips)
}

func TestHoldem_StartNeedsFundedPlayers(t *testing.T) {
	e := newTestEngine(t, NewDefaultSettings(), riggedDeck(), "a", "b", "c")

	for _, id := range []string{"b", "c"} {
		_, err := e.Apply(model.Action{Kind: model.Action_AssignChips, ActorID: croupierID, PlayerID: id, Amount: 0})
		require.NoError(t, err)
	}

	_, err := e.Apply(model.Action{Kind: Action_StartGame, ActorID: croupierID})
	assert.ErrorIs(t, err, model.ErrNotEnoughPlayers)
	assert.Equal(t, Phase_Waiting, e.GetTable().GamePhase)
	assert.Equal(t, util.UnsetValue, e.GetTable().DealerIndex)
}
