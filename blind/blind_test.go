package blind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/weedbox/casinotable/util"
)

func TestNextDealer(t *testing.T) {
	b := NewBlind(10, 20, 0)

	assert.Equal(t, 0, b.NextDealer(util.UnsetValue, 3))
	assert.Equal(t, 1, b.NextDealer(0, 3))
	assert.Equal(t, 0, b.NextDealer(2, 3))
	// 4 wraps to seat 1 before moving
	assert.Equal(t, 2, b.NextDealer(4, 3))
	assert.Equal(t, 1, b.NextDealer(6, 3))
	assert.Equal(t, util.UnsetValue, b.NextDealer(0, 0))
}

func TestSeats(t *testing.T) {
	b := NewBlind(10, 20, 0)

	seats := b.Seats(0, 4)
	assert.Equal(t, Seats{Dealer: 0, SB: 1, BB: 2, FirstToAct: 3}, seats)

	seats = b.Seats(3, 4)
	assert.Equal(t, Seats{Dealer: 3, SB: 0, BB: 1, FirstToAct: 2}, seats)

	// heads-up the button posts the big blind
	seats = b.Seats(0, 2)
	assert.Equal(t, Seats{Dealer: 0, SB: 1, BB: 0, FirstToAct: 1}, seats)

	seats = b.Seats(0, 1)
	assert.Equal(t, Seats{Dealer: 0, SB: util.UnsetValue, BB: util.UnsetValue, FirstToAct: 0}, seats)
}

func TestPost(t *testing.T) {
	assert.Equal(t, int64(20), Post(100, 20))
	assert.Equal(t, int64(5), Post(5, 20))
	assert.Equal(t, int64(0), Post(0, 20))
}
