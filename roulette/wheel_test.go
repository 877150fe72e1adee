package roulette

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidBetType(t *testing.T) {
	for _, betType := range []string{"0", "17", "36", "red", "black", "odd", "even", "1-18", "19-36", "1st12", "2nd12", "3rd12"} {
		assert.True(t, IsValidBetType(betType), betType)
	}
	for _, betType := range []string{"37", "-1", "07", "green", "", "4th12"} {
		assert.False(t, IsValidBetType(betType), betType)
	}
}

func TestMultiplier(t *testing.T) {
	testCases := []struct {
		betType string
		number  int
		want    int
	}{
		{"17", 17, StraightMultiplier},
		{"17", 18, 0},
		{"0", 0, StraightMultiplier},
		{BetType_Red, 1, EvenMoneyMultiplier},
		{BetType_Red, 2, 0},
		{BetType_Black, 2, EvenMoneyMultiplier},
		{BetType_Odd, 17, EvenMoneyMultiplier},
		{BetType_Even, 17, 0},
		{BetType_Low, 18, EvenMoneyMultiplier},
		{BetType_High, 19, EvenMoneyMultiplier},
		{BetType_Dozen1, 12, DozenMultiplier},
		{BetType_Dozen2, 13, DozenMultiplier},
		{BetType_Dozen3, 24, 0},
		{BetType_Dozen3, 36, DozenMultiplier},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Multiplier(tc.betType, tc.number), "%s on %d", tc.betType, tc.number)
	}
}

func TestMultiplier_ZeroLosesOutsideBets(t *testing.T) {
	for _, betType := range []string{BetType_Red, BetType_Black, BetType_Odd, BetType_Even, BetType_Low, BetType_High, BetType_Dozen1, BetType_Dozen2, BetType_Dozen3} {
		assert.Equal(t, 0, Multiplier(betType, 0), betType)
	}
}

func TestColorOf(t *testing.T) {
	assert.Equal(t, Color_Green, ColorOf(0))
	assert.Equal(t, Color_Red, ColorOf(36))
	assert.Equal(t, Color_Black, ColorOf(35))
}

func TestRotation(t *testing.T) {
	assert.InDelta(t, 1800.0, Rotation(0, 0), 1e-9)
	assert.InDelta(t, 1800.0+360.0+10*(360.0/37), Rotation(10, 0.5), 1e-9)
}
