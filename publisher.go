package casinotable

import (
	"sync"

	"github.com/weedbox/casinotable/model"
)

type OutboundEvent string

const (
	OutboundEvent_TableList     OutboundEvent = "table_list"
	OutboundEvent_JoinedTable   OutboundEvent = "joined_table"
	OutboundEvent_TableUpdate   OutboundEvent = "table_update"
	OutboundEvent_Message       OutboundEvent = "message"
	OutboundEvent_RoundResult   OutboundEvent = "round_result"
	OutboundEvent_RouletteSpin  OutboundEvent = "roulette_spin"
	OutboundEvent_TableClosed   OutboundEvent = "table_closed"
	OutboundEvent_TablesUpdated OutboundEvent = "tables_updated"
	OutboundEvent_Error         OutboundEvent = "error"
)

type OutboundMessage struct {
	Event   OutboundEvent  `json:"event"`
	Game    model.GameType `json:"game,omitempty"`
	TableID string         `json:"table_id,omitempty"`
	Data    interface{}    `json:"data,omitempty"`
}

// Publisher delivers outbound messages. Implementations must not block the caller for long.
type Publisher interface {
	Send(connID string, msg OutboundMessage)
	Broadcast(msg OutboundMessage)
}

type JoinedTableData struct {
	TableID string      `json:"tableId"`
	Role    model.Role  `json:"role"`
	State   interface{} `json:"state"`
}

type TableClosedData struct {
	Reason string `json:"reason"`
}

type ErrorData struct {
	Message string `json:"message"`
}

type Delivery struct {
	ConnID    string // empty for broadcasts
	Broadcast bool
	Message   OutboundMessage
}

// MemoryPublisher records every delivery in order.
type MemoryPublisher struct {
	mu         sync.Mutex
	deliveries []Delivery
}

func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{
		deliveries: make([]Delivery, 0),
	}
}

func (p *MemoryPublisher) Send(connID string, msg OutboundMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deliveries = append(p.deliveries, Delivery{ConnID: connID, Message: msg})
}

func (p *MemoryPublisher) Broadcast(msg OutboundMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deliveries = append(p.deliveries, Delivery{Broadcast: true, Message: msg})
}

func (p *MemoryPublisher) Deliveries() []Delivery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Delivery(nil), p.deliveries...)
}

// Received lists what one connection got, broadcasts included.
func (p *MemoryPublisher) Received(connID string) []OutboundMessage {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := make([]OutboundMessage, 0)
	for _, d := range p.deliveries {
		if d.Broadcast || d.ConnID == connID {
			msgs = append(msgs, d.Message)
		}
	}
	return msgs
}

// Last returns the latest message of the given event a connection received.
func (p *MemoryPublisher) Last(connID string, event OutboundEvent) (OutboundMessage, bool) {
	msgs := p.Received(connID)
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Event == event {
			return msgs[i], true
		}
	}
	return OutboundMessage{}, false
}

func (p *MemoryPublisher) Count(connID string, event OutboundEvent) int {
	count := 0
	for _, msg := range p.Received(connID) {
		if msg.Event == event {
			count++
		}
	}
	return count
}

func (p *MemoryPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deliveries = p.deliveries[:0]
}
