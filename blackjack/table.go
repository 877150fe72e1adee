package blackjack

import (
	"encoding/json"
	"time"

	"github.com/thoas/go-funk"
	"github.com/weedbox/casinotable/card"
	"github.com/weedbox/casinotable/model"
)

type Phase string

type PlayerStatus string

const (
	UnsetValue = -1

	Phase_Waiting      Phase = "waiting"      // 等待開局
	Phase_Betting      Phase = "betting"      // 下注中
	Phase_Dealing      Phase = "dealing"      // 發牌中
	Phase_Playing      Phase = "playing"      // 玩家行動中
	Phase_CroupierTurn Phase = "croupierTurn" // 莊家回合
	Phase_Revealing    Phase = "revealing"    // 莊家逐張開牌
	Phase_Finished     Phase = "finished"     // 本局已結算

	Status_Waiting   PlayerStatus = "waiting"
	Status_Ready     PlayerStatus = "ready"
	Status_Playing   PlayerStatus = "playing"
	Status_Stand     PlayerStatus = "stand"
	Status_Bust      PlayerStatus = "bust"
	Status_Blackjack PlayerStatus = "blackjack"

	DealerStandValue = 17

	// maxCardsPerHand bounds the cards any one hand can take before it stands or busts
	maxCardsPerHand = 11
)

type Settings struct {
	Decks              int   `json:"decks"`               // 1 for a single deck, 6 for a shoe
	MaxPlayers         int   `json:"max_players"`         // 每桌人數上限
	StartingChips      int64 `json:"starting_chips"`      // 入桌籌碼
	ReshuffleThreshold int   `json:"reshuffle_threshold"` // deck size below which a fresh shoe is built on start betting
	RevealPacing       bool  `json:"reveal_pacing"`       // reveal dealer cards one by one
}

func NewDefaultSettings() Settings {
	return Settings{
		Decks:              6,
		MaxPlayers:         4,
		StartingChips:      1000,
		ReshuffleThreshold: 6 * card.BaseDeckSize / 4,
		RevealPacing:       true,
	}
}

type Player struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Chips      int64        `json:"chips"`
	Hand       []card.Card  `json:"hand"`
	CurrentBet int64        `json:"current_bet"`
	Status     PlayerStatus `json:"status"`
	Doubled    bool         `json:"doubled"`
}

type Table struct {
	ID                 string         `json:"id"`
	Croupier           model.Croupier `json:"croupier"`
	Settings           Settings       `json:"settings"`
	Players            []*Player      `json:"players"`
	Deck               *card.Deck     `json:"deck"`
	DealerHand         []card.Card    `json:"dealer_hand"`
	Discard            []card.Card    `json:"discard"`
	GamePhase          Phase          `json:"game_phase"`
	CurrentPlayerIndex int            `json:"current_player_index"`
	DealerRevealIndex  int            `json:"dealer_reveal_index"`
	RoundCount         int            `json:"round_count"`
	Settled            bool           `json:"settled"`
	CreatedAt          int64          `json:"created_at"`
	UpdateAt           int64          `json:"update_at"`     // 更新時間 (Seconds)
	UpdateSerial       int64          `json:"update_serial"` // 更新序列號 (數字越大越晚發生)
}

func (t *Table) RefreshUpdateAt() {
	t.UpdateAt = time.Now().Unix()
	t.UpdateSerial++
}

// Clone deep copies the table so a failed action can be rolled back.
func (t Table) Clone() (*Table, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}

	var cloned Table
	if err := json.Unmarshal(encoded, &cloned); err != nil {
		return nil, err
	}
	return &cloned, nil
}

func (t Table) GetJSON() (string, error) {
	encoded, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (t Table) FindPlayerIdx(playerID string) int {
	for idx, p := range t.Players {
		if p.ID == playerID {
			return idx
		}
	}
	return UnsetValue
}

func (t Table) CurrentPlayer() *Player {
	if t.CurrentPlayerIndex < 0 || t.CurrentPlayerIndex >= len(t.Players) {
		return nil
	}
	return t.Players[t.CurrentPlayerIndex]
}

func (t Table) ReadyPlayers() []*Player {
	return funk.Filter(t.Players, func(p *Player) bool {
		return p.Status == Status_Ready
	}).([]*Player)
}

func (t Table) HasPlayingPlayers() bool {
	playing := funk.Filter(t.Players, func(p *Player) bool {
		return p.Status == Status_Playing
	}).([]*Player)
	return len(playing) > 0
}

// CardCount sums every card the table holds. It always equals Deck.Total.
func (t Table) CardCount() int {
	count := len(t.DealerHand) + len(t.Discard) + t.Deck.Len()
	for _, p := range t.Players {
		count += len(p.Hand)
	}
	return count
}

// clearHands moves all hands to the discard pile.
func (t *Table) clearHands() {
	for _, p := range t.Players {
		t.Discard = append(t.Discard, p.Hand...)
		p.Hand = []card.Card{}
	}
	t.Discard = append(t.Discard, t.DealerHand...)
	t.DealerHand = []card.Card{}
}

func (p Player) HandValue() int {
	return card.HandValue(p.Hand)
}

// isResolved reports players who took part in the current round.
func (p Player) isResolved() bool {
	return p.Status == Status_Stand || p.Status == Status_Bust || p.Status == Status_Blackjack
}
