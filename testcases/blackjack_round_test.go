package testcases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/casinotable"
	"github.com/weedbox/casinotable/blackjack"
	"github.com/weedbox/casinotable/model"
)

func currentBlackjackTurn(view blackjack.TableView) string {
	for _, p := range view.Players {
		if p.IsCurrentTurn {
			return p.ID
		}
	}
	return ""
}

func TestBlackjack_RoundsThroughDispatcher(t *testing.T) {
	casino := NewCasino(42)

	tableID := casino.Open(t, "house", model.GameType_Blackjack)
	casino.Sit(t, "alice", tableID)
	casino.Sit(t, "bob", tableID)

	bets := map[string]int64{"alice": 20, "bob": 30}

	for round := 1; round <= 3; round++ {
		casino.MustDo(t, "house", blackjack.Action_StartBetting, nil)

		view := casino.View(t, "alice").(blackjack.TableView)
		require.Equal(t, blackjack.Phase_Betting, view.GamePhase)
		assert.Equal(t, round, view.RoundCount)

		chipsBefore := map[string]int64{}
		for _, p := range view.Players {
			chipsBefore[p.ID] = p.Chips
		}

		casino.MustDo(t, "alice", blackjack.Action_PlaceBet, casinotable.RequestPayload{Amount: bets["alice"]})
		casino.MustDo(t, "bob", blackjack.Action_PlaceBet, casinotable.RequestPayload{Amount: bets["bob"]})
		casino.MustDo(t, "house", blackjack.Action_DealCards, nil)

		// everyone stands on the dealt hand
		for i := 0; i < 10; i++ {
			view = casino.View(t, "house").(blackjack.TableView)
			if view.GamePhase != blackjack.Phase_Playing {
				break
			}
			casino.MustDo(t, currentBlackjackTurn(view), blackjack.Action_Stand, nil)
		}
		require.Equal(t, blackjack.Phase_CroupierTurn, view.GamePhase)
		assert.True(t, view.DealerHand[1].IsHidden())
		assert.Nil(t, view.DealerHandValue)

		// players cannot drive the house hand
		casino.Do("alice", blackjack.Action_PlayDealerHand, nil)
		rejected, ok := casino.Publisher.Last("alice", casinotable.OutboundEvent_Error)
		require.True(t, ok)
		assert.Equal(t, model.ErrNotCroupier.Error(), rejected.Data.(casinotable.ErrorData).Message)

		casino.MustDo(t, "house", blackjack.Action_PlayDealerHand, nil)
		for i := 0; i < 12; i++ {
			view = casino.View(t, "house").(blackjack.TableView)
			if view.GamePhase != blackjack.Phase_Revealing {
				break
			}
			assert.True(t, view.CanRevealMore)
			casino.MustDo(t, "house", blackjack.Action_RevealNextCard, nil)
		}
		require.Equal(t, blackjack.Phase_Finished, view.GamePhase)
		require.NotNil(t, view.DealerHandValue)
		assert.GreaterOrEqual(t, *view.DealerHandValue, blackjack.DealerStandValue)

		// both players see the same settlement
		result := casino.Result(t, "alice").(blackjack.RoundResult)
		assert.Equal(t, result, casino.Result(t, "bob").(blackjack.RoundResult))
		assert.Equal(t, *view.DealerHandValue, result.DealerValue)
		require.Len(t, result.Players, 2)

		for _, pr := range result.Players {
			assert.Equal(t, bets[pr.ID], pr.Bet)
			assert.Equal(t, chipsBefore[pr.ID]-pr.Bet+pr.Winnings, pr.NewChips, pr.ID)

			switch pr.Result {
			case blackjack.Outcome_Lose:
				assert.Zero(t, pr.Winnings)
			case blackjack.Outcome_Push:
				assert.Equal(t, pr.Bet, pr.Winnings)
			case blackjack.Outcome_Win:
				assert.Equal(t, 2*pr.Bet, pr.Winnings)
			case blackjack.Outcome_Blackjack:
				assert.Equal(t, pr.Bet*5/2, pr.Winnings)
			}
		}

		for _, p := range view.Players {
			for _, pr := range result.Players {
				if pr.ID == p.ID {
					assert.Equal(t, pr.NewChips, p.Chips)
				}
			}
		}
	}
}

func TestBlackjack_PlayerDisconnectMidRound(t *testing.T) {
	casino := NewCasino(7)

	tableID := casino.Open(t, "house", model.GameType_Blackjack)
	casino.Sit(t, "alice", tableID)
	casino.Sit(t, "bob", tableID)

	casino.MustDo(t, "house", blackjack.Action_StartBetting, nil)
	casino.MustDo(t, "alice", blackjack.Action_PlaceBet, casinotable.RequestPayload{Amount: 10})
	casino.MustDo(t, "bob", blackjack.Action_PlaceBet, casinotable.RequestPayload{Amount: 10})
	casino.MustDo(t, "house", blackjack.Action_DealCards, nil)

	view := casino.View(t, "house").(blackjack.TableView)
	turn := currentBlackjackTurn(view)
	if turn == "" {
		t.Skip("both hands resolved on the deal")
	}

	casino.Do(turn, casinotable.RequestAction_Disconnect, nil)

	view = casino.View(t, "house").(blackjack.TableView)
	require.Len(t, view.Players, 1)
	assert.NotEqual(t, turn, view.Players[0].ID)

	// the turn moved on or the house is up
	if view.GamePhase == blackjack.Phase_Playing {
		assert.Equal(t, view.Players[0].ID, currentBlackjackTurn(view))
	} else {
		assert.Equal(t, blackjack.Phase_CroupierTurn, view.GamePhase)
	}

	lobby, ok := casino.Publisher.Last("anyone", casinotable.OutboundEvent_TablesUpdated)
	require.True(t, ok)
	assert.Equal(t, 1, lobby.Data.([]model.TableSummary)[0].PlayerCount)
}
