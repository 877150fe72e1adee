package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/casinotable/card"
)

func cards(codes ...string) []card.Card {
	suits := map[byte]card.Suit{
		's': card.Suit_Spades,
		'h': card.Suit_Hearts,
		'd': card.Suit_Diamonds,
		'c': card.Suit_Clubs,
	}

	out := make([]card.Card, 0, len(codes))
	for _, code := range codes {
		rank := card.Rank(code[:len(code)-1])
		out = append(out, card.New(rank, suits[code[len(code)-1]]))
	}
	return out
}

func TestEvaluate_Tiers(t *testing.T) {
	testCases := []struct {
		name  string
		cards []card.Card
		tier  Tier
		value int
	}{
		{"high card", cards("2c", "7d", "Kd", "5c", "9h", "3s", "Jc"), Tier_HighCard, 36},
		{"pair", cards("As", "Ah", "Kd", "5c", "9h", "3s", "Jc"), Tier_Pair, 100 + 12 + 12 + 11 + 3 + 7 + 1 + 9},
		{"two pair", cards("As", "Ah", "Kd", "Kc", "2s", "3d", "9h"), Tier_TwoPair, 254},
		{"three of a kind", cards("Ks", "Kh", "Kd", "5c", "9h", "3s", "Jc"), Tier_ThreeOfAKind, 353},
		{"flush", cards("2h", "7h", "Kh", "5h", "9h", "3s", "Jc"), Tier_Flush, 500 + 0 + 5 + 11 + 3 + 7 + 1 + 9},
		{"full house", cards("Ks", "Kh", "Kd", "5c", "5h", "3s", "Jc"), Tier_FullHouse, 600 + 11*3 + 3 + 3 + 1 + 9},
		{"four of a kind", cards("Ks", "Kh", "Kd", "Kc", "5h", "3s", "Jc"), Tier_FourOfAKind, 700 + 11*4 + 3 + 1 + 9},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := Evaluate(tc.cards)
			assert.Equal(t, tc.tier, score.Tier)
			assert.Equal(t, tc.value, score.Value)
		})
	}
}

func TestEvaluate_StraightIsNotRecognised(t *testing.T) {
	score := Evaluate(cards("2c", "3d", "4h", "5s", "6c", "9d", "Jh"))
	assert.Equal(t, Tier_HighCard, score.Tier)
}

func TestDescribe(t *testing.T) {
	desc, err := Describe(cards("Ks", "Kh", "Kd", "5c", "9h", "3s", "Jc"))
	require.NoError(t, err)
	assert.NotEmpty(t, desc)

	_, err = Describe(cards("Ks", "Kh"))
	assert.Error(t, err)

	_, err = Describe([]card.Card{card.Hidden, card.Hidden, card.Hidden, card.Hidden, card.Hidden, card.Hidden, card.Hidden})
	assert.Error(t, err)
}
