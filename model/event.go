package model

import "fmt"

type EventType string

const (
	EventType_StateUpdated EventType = "table_update"
	EventType_Message      EventType = "message"
	EventType_RoundResult  EventType = "round_result"
	EventType_RouletteSpin EventType = "roulette_spin"
)

// Event is produced by an engine after a successful action and fanned out to every table occupant.
type Event struct {
	Type    EventType   `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type MessagePayload struct {
	Text string `json:"text"`
}

func StateUpdated() Event {
	return Event{Type: EventType_StateUpdated}
}

func Message(format string, args ...interface{}) Event {
	return Event{
		Type:    EventType_Message,
		Payload: MessagePayload{Text: fmt.Sprintf(format, args...)},
	}
}

func RoundResult(payload interface{}) Event {
	return Event{Type: EventType_RoundResult, Payload: payload}
}
