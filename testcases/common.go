package testcases

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/weedbox/casinotable"
	"github.com/weedbox/casinotable/model"
)

// Casino drives a dispatcher synchronously, the way the event loop would.
type Casino struct {
	Dispatcher *casinotable.Dispatcher
	Publisher  *casinotable.MemoryPublisher
}

func NewCasino(seed int64, opts ...casinotable.DispatcherOpt) *Casino {
	publisher := casinotable.NewMemoryPublisher()
	manager := casinotable.NewManager(
		casinotable.NewDefaultTableSetting(),
		casinotable.WithTableEngineOpts(casinotable.WithRand(rand.New(rand.NewSource(seed)))),
	)
	return &Casino{
		Dispatcher: casinotable.NewDispatcher(manager, publisher, opts...),
		Publisher:  publisher,
	}
}

func (c *Casino) Do(connID string, action string, payload interface{}) {
	req := casinotable.Request{
		ConnID: connID,
		Action: action,
	}
	if payload != nil {
		raw, _ := json.Marshal(payload)
		req.Payload = raw
	}
	c.Dispatcher.Handle(req)
}

// MustDo fails the test when the action was answered with an error.
func (c *Casino) MustDo(t *testing.T, connID string, action string, payload interface{}) {
	before := c.Publisher.Count(connID, casinotable.OutboundEvent_Error)
	c.Do(connID, action, payload)
	if c.Publisher.Count(connID, casinotable.OutboundEvent_Error) != before {
		msg, _ := c.Publisher.Last(connID, casinotable.OutboundEvent_Error)
		require.FailNowf(t, "action rejected", "%s %s: %v", connID, action, msg.Data)
	}
}

func (c *Casino) Open(t *testing.T, croupierID string, game model.GameType) string {
	c.Dispatcher.Handle(casinotable.Request{
		ConnID:  croupierID,
		Action:  casinotable.RequestAction_CreateTable,
		Game:    game,
		Payload: json.RawMessage(`{"name":"House"}`),
	})

	msg, ok := c.Publisher.Last(croupierID, casinotable.OutboundEvent_JoinedTable)
	require.True(t, ok)
	return msg.Data.(casinotable.JoinedTableData).TableID
}

func (c *Casino) Sit(t *testing.T, playerID string, tableID string) {
	c.MustDo(t, playerID, casinotable.RequestAction_JoinTable, casinotable.RequestPayload{
		TableID: tableID,
		Name:    playerID,
	})
	_, ok := c.Publisher.Last(playerID, casinotable.OutboundEvent_JoinedTable)
	require.True(t, ok)
}

// View is the latest table snapshot a connection received.
func (c *Casino) View(t *testing.T, connID string) interface{} {
	msg, ok := c.Publisher.Last(connID, casinotable.OutboundEvent_TableUpdate)
	require.True(t, ok, "no table_update for %s", connID)
	return msg.Data
}

func (c *Casino) Result(t *testing.T, connID string) interface{} {
	msg, ok := c.Publisher.Last(connID, casinotable.OutboundEvent_RoundResult)
	require.True(t, ok, "no round_result for %s", connID)
	return msg.Data
}
