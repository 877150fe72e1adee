package casinotable

import (
	"encoding/json"
	"fmt"

	"github.com/weedbox/casinotable/model"
)

const (
	// Connection lifecycle
	RequestAction_Connect    = "connect"
	RequestAction_Disconnect = "disconnect"

	// Lobby
	RequestAction_ListTables  = "list_tables"
	RequestAction_CreateTable = "create_table"
	RequestAction_JoinTable   = "join_table"
	RequestAction_LeaveTable  = "leave_table"

	// Internal, only the dispatcher itself may submit these
	RequestAction_ResolveSpin   = "resolve_spin"
	RequestAction_BetsCompleted = "bets_completed"

	defaultBetAmount = 10
)

// Request is one inbound message. Any action that is not a lobby or lifecycle action is forwarded to the table engine the connection is bound to.
type Request struct {
	ConnID  string          `json:"-"`
	Action  string          `json:"action"`
	Game    model.GameType  `json:"game,omitempty"`
	TableID string          `json:"table_id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`

	internal bool
}

type RequestPayload struct {
	Name      string     `json:"name,omitempty"`
	TableID   string     `json:"tableId,omitempty"`
	Amount    int64      `json:"amount,omitempty"`
	PlayerID  string     `json:"playerId,omitempty"`
	Bets      []BetEntry `json:"bets,omitempty"`
	BetAmount int64      `json:"betAmount,omitempty"`
}

// BetEntry accepts either a bare bet type ("red", "17") staked with the payload's betAmount, or a full {"type","amount"} object.
type BetEntry struct {
	Type   string `json:"type"`
	Amount int64  `json:"amount,omitempty"`
}

func (b *BetEntry) UnmarshalJSON(data []byte) error {
	var betType string
	if err := json.Unmarshal(data, &betType); err == nil {
		b.Type = betType
		b.Amount = 0
		return nil
	}

	type plain BetEntry
	var entry plain
	if err := json.Unmarshal(data, &entry); err != nil {
		return fmt.Errorf("bet entry: %w", err)
	}
	*b = BetEntry(entry)
	return nil
}

// ToBets resolves every entry to a stake. Bare entries use betAmount, or 10 when it was not given.
func (p RequestPayload) ToBets() []model.Bet {
	stake := p.BetAmount
	if stake == 0 {
		stake = defaultBetAmount
	}

	bets := make([]model.Bet, 0, len(p.Bets))
	for _, entry := range p.Bets {
		amount := entry.Amount
		if amount == 0 {
			amount = stake
		}
		bets = append(bets, model.Bet{
			Type:   entry.Type,
			Amount: amount,
		})
	}
	return bets
}

// DecodeRequest parses one inbound frame of a connection.
func DecodeRequest(connID string, raw []byte) (Request, error) {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return Request{}, fmt.Errorf("decode request: %w", err)
	}
	if req.Action == "" {
		return Request{}, model.ErrMissingAction
	}
	req.ConnID = connID
	return req, nil
}

func (r Request) DecodePayload() (RequestPayload, error) {
	var payload RequestPayload
	if len(r.Payload) == 0 || string(r.Payload) == "null" {
		return payload, nil
	}
	if err := json.Unmarshal(r.Payload, &payload); err != nil {
		return payload, model.Reject(fmt.Sprintf("request: invalid payload: %v", err))
	}
	return payload, nil
}

// ToAction turns a table request into the engine action of the sending connection.
func (r Request) ToAction(payload RequestPayload) model.Action {
	action := model.Action{
		Kind:     r.Action,
		ActorID:  r.ConnID,
		PlayerID: payload.PlayerID,
		Amount:   payload.Amount,
	}
	if len(payload.Bets) > 0 {
		action.Bets = payload.ToBets()
	}
	return action
}

func (r Request) isInternalAction() bool {
	return r.Action == RequestAction_ResolveSpin || r.Action == RequestAction_BetsCompleted
}
