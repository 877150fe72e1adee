package casinotable

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/weedbox/casinotable/model"
)

func sequenceIDs(ids ...string) func() string {
	next := 0
	return func() string {
		id := ids[next]
		if next < len(ids)-1 {
			next++
		}
		return id
	}
}

func TestManager_CreateTable(t *testing.T) {
	manager := NewManager(NewDefaultTableSetting())

	engine, err := manager.CreateTable(model.GameType_Blackjack, model.Croupier{ID: "c1", Name: "Ann"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^table_[0-9a-f]{8}$`), engine.ID())
	assert.Equal(t, model.GameType_Blackjack, engine.GameType())

	found, err := manager.GetTableEngine(engine.ID())
	require.NoError(t, err)
	assert.Equal(t, engine.ID(), found.ID())

	_, err = manager.CreateTable(model.GameType("baccarat"), model.Croupier{ID: "c2"})
	assert.ErrorIs(t, err, model.ErrInvalidGameType)
}

func TestManager_IDCollisionIsRegenerated(t *testing.T) {
	manager := NewManager(NewDefaultTableSetting(), WithIDGenerator(sequenceIDs("table_aaaaaaaa", "table_aaaaaaaa", "table_bbbbbbbb")))

	first, err := manager.CreateTable(model.GameType_Roulette, model.Croupier{ID: "c1"})
	require.NoError(t, err)
	second, err := manager.CreateTable(model.GameType_Roulette, model.Croupier{ID: "c2"})
	require.NoError(t, err)

	assert.Equal(t, "table_aaaaaaaa", first.ID())
	assert.Equal(t, "table_bbbbbbbb", second.ID())
}

func TestManager_ListTablesInCreationOrder(t *testing.T) {
	manager := NewManager(NewDefaultTableSetting(), WithIDGenerator(sequenceIDs("table_3", "table_1", "table_2", "table_0")))

	for _, croupier := range []string{"c1", "c2", "c3"} {
		_, err := manager.CreateTable(model.GameType_Poker, model.Croupier{ID: croupier, Name: croupier})
		require.NoError(t, err)
	}
	_, err := manager.CreateTable(model.GameType_Blackjack, model.Croupier{ID: "c4"})
	require.NoError(t, err)

	tables := manager.ListTables(model.GameType_Poker)
	require.Len(t, tables, 3)
	assert.Equal(t, "table_3", tables[0].ID)
	assert.Equal(t, "table_1", tables[1].ID)
	assert.Equal(t, "table_2", tables[2].ID)
	assert.Equal(t, "c1", tables[0].CroupierName)
	assert.Equal(t, 6, tables[0].MaxPlayers)

	assert.Len(t, manager.ListTables(model.GameType_Blackjack), 1)
	assert.Empty(t, manager.ListTables(model.GameType_Roulette))
}

func TestManager_CloseAndFindTable(t *testing.T) {
	manager := NewManager(NewDefaultTableSetting())

	engine, err := manager.CreateTable(model.GameType_Roulette, model.Croupier{ID: "c1"})
	require.NoError(t, err)
	_, err = engine.PlayerJoin("p1", "Bob")
	require.NoError(t, err)

	byCroupier, err := manager.FindTableByMember("c1")
	require.NoError(t, err)
	assert.Equal(t, engine.ID(), byCroupier.ID())

	byPlayer, err := manager.FindTableByMember("p1")
	require.NoError(t, err)
	assert.Equal(t, engine.ID(), byPlayer.ID())

	_, err = manager.FindTableByMember("stranger")
	assert.ErrorIs(t, err, model.ErrTableNotFound)

	require.NoError(t, manager.CloseTable(engine.ID()))
	assert.ErrorIs(t, manager.CloseTable(engine.ID()), model.ErrTableNotFound)

	_, err = manager.GetTableEngine(engine.ID())
	assert.ErrorIs(t, err, model.ErrTableNotFound)
}

func TestManager_Reset(t *testing.T) {
	manager := NewManager(NewDefaultTableSetting())
	_, err := manager.CreateTable(model.GameType_Blackjack, model.Croupier{ID: "c1"})
	require.NoError(t, err)

	manager.Reset()
	assert.Empty(t, manager.ListTables(model.GameType_Blackjack))
}

func TestTableSetting_WithStartingChips(t *testing.T) {
	setting := NewDefaultTableSetting().WithStartingChips(250)

	assert.Equal(t, int64(250), setting.Blackjack.StartingChips)
	assert.Equal(t, int64(250), setting.Poker.StartingChips)
	assert.Equal(t, int64(250), setting.Roulette.StartingChips)
}
