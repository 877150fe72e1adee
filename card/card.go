package card

import "fmt"

type Suit string

type Rank string

const (
	Suit_Hearts   Suit = "♥"
	Suit_Diamonds Suit = "♦"
	Suit_Clubs    Suit = "♣"
	Suit_Spades   Suit = "♠"

	Rank_Two   Rank = "2"
	Rank_Three Rank = "3"
	Rank_Four  Rank = "4"
	Rank_Five  Rank = "5"
	Rank_Six   Rank = "6"
	Rank_Seven Rank = "7"
	Rank_Eight Rank = "8"
	Rank_Nine  Rank = "9"
	Rank_Ten   Rank = "10"
	Rank_Jack  Rank = "J"
	Rank_Queen Rank = "Q"
	Rank_King  Rank = "K"
	Rank_Ace   Rank = "A"

	hiddenSymbol = "?"

	// BaseDeckSize is the number of cards in one standard deck
	BaseDeckSize = 52
)

var (
	Suits = []Suit{Suit_Hearts, Suit_Diamonds, Suit_Clubs, Suit_Spades}

	// Ranks in ascending poker order, 2 lowest and Ace highest
	Ranks = []Rank{
		Rank_Two, Rank_Three, Rank_Four, Rank_Five, Rank_Six, Rank_Seven, Rank_Eight,
		Rank_Nine, Rank_Ten, Rank_Jack, Rank_Queen, Rank_King, Rank_Ace,
	}

	// Hidden is sent to viewers who may not see a card
	Hidden = Card{Rank: hiddenSymbol, Suit: hiddenSymbol}
)

type Card struct {
	Rank Rank `json:"value"`
	Suit Suit `json:"suit"`
}

func New(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func (c Card) IsHidden() bool {
	return c.Rank == hiddenSymbol
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Index returns the poker ordering of the rank (2 => 0 ... Ace => 12), or -1 for unknown ranks.
func (r Rank) Index() int {
	for idx, rank := range Ranks {
		if rank == r {
			return idx
		}
	}
	return -1
}

// BlackjackValue counts face cards as 10 and an Ace as 11.
func (r Rank) BlackjackValue() int {
	switch r {
	case Rank_Ace:
		return 11
	case Rank_King, Rank_Queen, Rank_Jack, Rank_Ten:
		return 10
	}

	idx := r.Index()
	if idx < 0 {
		return 0
	}
	return idx + 2
}

// HideAll returns a placeholder for every card of the hand.
func HideAll(hand []Card) []Card {
	hidden := make([]Card, len(hand))
	for i := range hand {
		hidden[i] = Hidden
	}
	return hidden
}

// Copy returns a copy of the hand that is safe to hand out in snapshots.
func Copy(hand []Card) []Card {
	if hand == nil {
		return []Card{}
	}
	out := make([]Card, len(hand))
	copy(out, hand)
	return out
}
