package casinotable

import (
	"github.com/weedbox/casinotable/blackjack"
	"github.com/weedbox/casinotable/holdem"
	"github.com/weedbox/casinotable/roulette"
)

// TableSetting carries the rules every new table of a game type is created with.
type TableSetting struct {
	Blackjack blackjack.Settings `json:"blackjack"`
	Poker     holdem.Settings    `json:"poker"`
	Roulette  roulette.Settings  `json:"roulette"`
}

func NewDefaultTableSetting() TableSetting {
	return TableSetting{
		Blackjack: blackjack.NewDefaultSettings(),
		Poker:     holdem.NewDefaultSettings(),
		Roulette:  roulette.NewDefaultSettings(),
	}
}

func (s TableSetting) WithStartingChips(chips int64) TableSetting {
	s.Blackjack.StartingChips = chips
	s.Poker.StartingChips = chips
	s.Roulette.StartingChips = chips
	return s
}
