package model

type GameType string

type Role string

const (
	GameType_Blackjack GameType = "blackjack"
	GameType_Poker     GameType = "poker"
	GameType_Roulette  GameType = "roulette"

	Role_Croupier Role = "croupier" // 控場者, 建桌的人
	Role_Player   Role = "player"
)

var GameTypes = []GameType{GameType_Blackjack, GameType_Poker, GameType_Roulette}

func (gt GameType) IsValid() bool {
	for _, t := range GameTypes {
		if t == gt {
			return true
		}
	}
	return false
}

type Croupier struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TableSummary is one lobby list entry.
type TableSummary struct {
	ID           string   `json:"id"`
	GameType     GameType `json:"game_type"`
	CroupierName string   `json:"croupierName"`
	PlayerCount  int      `json:"playerCount"`
	MaxPlayers   int      `json:"maxPlayers"`
	GamePhase    string   `json:"gamePhase"`
	CreatedAt    int64    `json:"created_at"`
}
