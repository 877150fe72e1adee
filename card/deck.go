package card

import (
	"errors"
	"math/rand"
	"time"
)

var (
	ErrDeckExhausted = errors.New("card: deck exhausted")
	ErrInvalidCopies = errors.New("card: deck copies must be positive")
)

type DeckOpt func(*deckOptions)

type deckOptions struct {
	rng *rand.Rand
}

// WithRand shuffles with the given source instead of a time seeded one.
func WithRand(rng *rand.Rand) DeckOpt {
	return func(o *deckOptions) {
		o.rng = rng
	}
}

// Deck is consumed from the end of Cards. Total remembers how many cards were built at the last shuffle.
type Deck struct {
	Cards []Card `json:"cards"`
	Total int    `json:"total"`
}

/*
NewDeck builds copies x 52 cards and shuffles them
  - copies = 1 for quick tables
  - copies = 6 for a blackjack shoe
*/
func NewDeck(copies int, opts ...DeckOpt) (*Deck, error) {
	if copies <= 0 {
		return nil, ErrInvalidCopies
	}

	options := deckOptions{}
	for _, opt := range opts {
		opt(&options)
	}
	if options.rng == nil {
		options.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	cards := make([]Card, 0, copies*BaseDeckSize)
	for i := 0; i < copies; i++ {
		for _, suit := range Suits {
			for _, rank := range Ranks {
				cards = append(cards, Card{Rank: rank, Suit: suit})
			}
		}
	}

	Shuffle(cards, options.rng)

	return &Deck{
		Cards: cards,
		Total: len(cards),
	}, nil
}

// NewStackedDeck keeps the given order. The last card is drawn first.
func NewStackedDeck(cards []Card) *Deck {
	return &Deck{
		Cards: Copy(cards),
		Total: len(cards),
	}
}

// Shuffle applies a uniform Fisher-Yates permutation in place.
func Shuffle(cards []Card, rng *rand.Rand) {
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

func (d *Deck) Draw() (Card, error) {
	if len(d.Cards) == 0 {
		return Card{}, ErrDeckExhausted
	}

	last := len(d.Cards) - 1
	c := d.Cards[last]
	d.Cards = d.Cards[:last]
	return c, nil
}

// DrawN draws n cards or none at all.
func (d *Deck) DrawN(n int) ([]Card, error) {
	if len(d.Cards) < n {
		return nil, ErrDeckExhausted
	}

	drawn := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		c, _ := d.Draw()
		drawn = append(drawn, c)
	}
	return drawn, nil
}

func (d *Deck) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Cards)
}

// Burn discards the top card face down and returns it so the caller can keep it on the table.
func (d *Deck) Burn() (Card, error) {
	return d.Draw()
}
