package roulette

import (
	"strconv"
)

const (
	PocketCount = 37

	BetType_Red    = "red"
	BetType_Black  = "black"
	BetType_Odd    = "odd"
	BetType_Even   = "even"
	BetType_Low    = "1-18"
	BetType_High   = "19-36"
	BetType_Dozen1 = "1st12"
	BetType_Dozen2 = "2nd12"
	BetType_Dozen3 = "3rd12"

	Color_Green = "green"
	Color_Red   = "red"
	Color_Black = "black"

	StraightMultiplier   = 35
	EvenMoneyMultiplier  = 2
	DozenMultiplier      = 3
	baseRotation         = 1800.0
	extraRotationDegrees = 720.0
)

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func IsRed(number int) bool {
	return redNumbers[number]
}

func ColorOf(number int) string {
	switch {
	case number == 0:
		return Color_Green
	case IsRed(number):
		return Color_Red
	}
	return Color_Black
}

// straightNumber parses a single number bet.
func straightNumber(betType string) (int, bool) {
	n, err := strconv.Atoi(betType)
	if err != nil || n < 0 || n >= PocketCount {
		return 0, false
	}
	// reject forms like "07" so each pocket has one spelling
	if strconv.Itoa(n) != betType {
		return 0, false
	}
	return n, true
}

func IsValidBetType(betType string) bool {
	if _, ok := straightNumber(betType); ok {
		return true
	}

	switch betType {
	case BetType_Red, BetType_Black, BetType_Odd, BetType_Even,
		BetType_Low, BetType_High,
		BetType_Dozen1, BetType_Dozen2, BetType_Dozen3:
		return true
	}
	return false
}

// Multiplier is what a winning bet returns per chip staked, stake included. Zero means the bet lost.
func Multiplier(betType string, number int) int {
	if n, ok := straightNumber(betType); ok {
		if n == number {
			return StraightMultiplier
		}
		return 0
	}

	// every outside bet loses on zero
	if number == 0 {
		return 0
	}

	hit := false
	multiplier := EvenMoneyMultiplier
	switch betType {
	case BetType_Red:
		hit = IsRed(number)
	case BetType_Black:
		hit = !IsRed(number)
	case BetType_Odd:
		hit = number%2 == 1
	case BetType_Even:
		hit = number%2 == 0
	case BetType_Low:
		hit = number <= 18
	case BetType_High:
		hit = number >= 19
	case BetType_Dozen1:
		hit, multiplier = number <= 12, DozenMultiplier
	case BetType_Dozen2:
		hit, multiplier = number >= 13 && number <= 24, DozenMultiplier
	case BetType_Dozen3:
		hit, multiplier = number >= 25, DozenMultiplier
	}

	if !hit {
		return 0
	}
	return multiplier
}

// Rotation is the wheel animation angle for a result. It carries no game meaning.
func Rotation(number int, jitter float64) float64 {
	return baseRotation + jitter*extraRotationDegrees + float64(number)*(360.0/PocketCount)
}
