package holdem

import (
	"fmt"

	"github.com/paulhankin/poker"
	"github.com/weedbox/casinotable/card"
)

type Tier string

const (
	Tier_FourOfAKind  Tier = "four of a kind"
	Tier_FullHouse    Tier = "full house"
	Tier_Flush        Tier = "flush"
	Tier_ThreeOfAKind Tier = "three of a kind"
	Tier_TwoPair      Tier = "two pair"
	Tier_Pair         Tier = "pair"
	Tier_HighCard     Tier = "high card"

	// EvaluationSimplified marks results ranked by tier score plus rank sum, not full poker rules
	EvaluationSimplified = "simplified"
)

var tierScores = map[Tier]int{
	Tier_FourOfAKind:  700,
	Tier_FullHouse:    600,
	Tier_Flush:        500,
	Tier_ThreeOfAKind: 300,
	Tier_TwoPair:      200,
	Tier_Pair:         100,
	Tier_HighCard:     0,
}

type Score struct {
	Tier  Tier `json:"tier"`
	Value int  `json:"value"`
}

/*
Evaluate scores hole and community cards together
  - the tier comes from rank multiplicities and any suit holding five cards
  - straights are not recognised
  - every card adds its rank index (2 => 0 ... Ace => 12)
*/
func Evaluate(cards []card.Card) Score {
	ranks := make(map[card.Rank]int)
	suits := make(map[card.Suit]int)
	sum := 0

	for _, c := range cards {
		ranks[c.Rank]++
		suits[c.Suit]++
		sum += c.Rank.Index()
	}

	pairs, threes, fours := 0, 0, 0
	for _, count := range ranks {
		switch count {
		case 2:
			pairs++
		case 3:
			threes++
		case 4:
			fours++
		}
	}

	flush := false
	for _, count := range suits {
		if count >= 5 {
			flush = true
		}
	}

	tier := Tier_HighCard
	switch {
	case fours > 0:
		tier = Tier_FourOfAKind
	case threes > 0 && pairs > 0:
		tier = Tier_FullHouse
	case flush:
		tier = Tier_Flush
	case threes > 0:
		tier = Tier_ThreeOfAKind
	case pairs >= 2:
		tier = Tier_TwoPair
	case pairs == 1:
		tier = Tier_Pair
	}

	return Score{
		Tier:  tier,
		Value: tierScores[tier] + sum,
	}
}

var suitMap = map[card.Suit]poker.Suit{
	card.Suit_Clubs:    poker.Club,
	card.Suit_Diamonds: poker.Diamond,
	card.Suit_Hearts:   poker.Heart,
	card.Suit_Spades:   poker.Spade,
}

func toPokerCard(c card.Card) (poker.Card, error) {
	var invalid poker.Card

	suit, ok := suitMap[c.Suit]
	if !ok {
		return invalid, fmt.Errorf("holdem: unknown suit %q", c.Suit)
	}

	idx := c.Rank.Index()
	if idx < 0 {
		return invalid, fmt.Errorf("holdem: unknown rank %q", c.Rank)
	}

	// poker ranks run Ace=1, Two=2 ... King=13
	rank := idx + 2
	if c.Rank == card.Rank_Ace {
		rank = 1
	}

	return poker.MakeCard(suit, poker.Rank(rank))
}

// Describe names the best conventional hand in seven cards.
func Describe(cards []card.Card) (string, error) {
	if len(cards) != 7 {
		return "", fmt.Errorf("holdem: describe needs 7 cards, got %d", len(cards))
	}

	converted := make([]poker.Card, 0, len(cards))
	for _, c := range cards {
		pc, err := toPokerCard(c)
		if err != nil {
			return "", err
		}
		converted = append(converted, pc)
	}

	return poker.Describe(converted)
}
