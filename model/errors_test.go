package model

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRejected(t *testing.T) {
	assert.True(t, IsRejected(ErrWrongPhase))
	assert.True(t, IsRejected(fmt.Errorf("blackjack: hit: %w", ErrNotYourTurn)))
	assert.False(t, IsRejected(errors.New("card: deck exhausted")))
	assert.False(t, IsRejected(nil))
}

func TestMessage(t *testing.T) {
	ev := Message("%s joined", "Chuck")
	assert.Equal(t, EventType_Message, ev.Type)
	assert.Equal(t, MessagePayload{Text: "Chuck joined"}, ev.Payload)
}

func TestGameTypeIsValid(t *testing.T) {
	assert.True(t, GameType_Roulette.IsValid())
	assert.False(t, GameType("baccarat").IsValid())
}
