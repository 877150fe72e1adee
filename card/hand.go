package card

const (
	BlackjackTarget = 21
)

/*
HandValue computes a blackjack total
  - number cards count face value, J/Q/K count 10, Aces start at 11
  - Aces are demoted to 1 one at a time while the total exceeds 21
  - a bust hand reports its minimum total
*/
func HandValue(hand []Card) int {
	value := 0
	aces := 0

	for _, c := range hand {
		value += c.Rank.BlackjackValue()
		if c.Rank == Rank_Ace {
			aces++
		}
	}

	for value > BlackjackTarget && aces > 0 {
		value -= 10
		aces--
	}

	return value
}

func IsBust(hand []Card) bool {
	return HandValue(hand) > BlackjackTarget
}

// IsNatural reports a two card 21.
func IsNatural(hand []Card) bool {
	return len(hand) == 2 && HandValue(hand) == BlackjackTarget
}
