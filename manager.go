package casinotable

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/weedbox/casinotable/model"
)

type Manager interface {
	Reset()

	// TableEngine Actions
	GetTableEngine(tableID string) (TableEngine, error)
	CreateTable(gameType model.GameType, croupier model.Croupier) (TableEngine, error)
	CloseTable(tableID string) error

	// Lobby
	ListTables(gameType model.GameType) []model.TableSummary
	FindTableByMember(connID string) (TableEngine, error)
}

type ManagerOpt func(*manager)

// WithIDGenerator replaces the random table id suffix.
func WithIDGenerator(fn func() string) ManagerOpt {
	return func(m *manager) {
		m.newID = fn
	}
}

func WithTableEngineOpts(opts ...TableEngineOpt) ManagerOpt {
	return func(m *manager) {
		m.engineOpts = append(m.engineOpts, opts...)
	}
}

type tableEntry struct {
	engine TableEngine
	seq    int64
}

type manager struct {
	tableEngines sync.Map
	createMu     sync.Mutex
	seq          int64
	setting      TableSetting
	engineOpts   []TableEngineOpt
	newID        func() string
}

func NewManager(setting TableSetting, opts ...ManagerOpt) Manager {
	m := &manager{
		setting: setting,
		newID:   randomTableID,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func randomTableID() string {
	return tableIDPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")[:tableIDLength]
}

func (m *manager) Reset() {
	m.tableEngines.Range(func(key, value interface{}) bool {
		m.tableEngines.Delete(key)
		return true
	})
}

func (m *manager) GetTableEngine(tableID string) (TableEngine, error) {
	entry, exist := m.tableEngines.Load(tableID)
	if !exist {
		return nil, model.ErrTableNotFound
	}
	return entry.(*tableEntry).engine, nil
}

func (m *manager) CreateTable(gameType model.GameType, croupier model.Croupier) (TableEngine, error) {
	if !gameType.IsValid() {
		return nil, model.ErrInvalidGameType
	}

	m.createMu.Lock()
	defer m.createMu.Unlock()

	// regenerate on collision
	tableID := m.newID()
	for {
		if _, exist := m.tableEngines.Load(tableID); !exist {
			break
		}
		tableID = m.newID()
	}

	engine, err := NewTableEngine(gameType, tableID, croupier, m.setting, m.engineOpts...)
	if err != nil {
		return nil, err
	}

	m.tableEngines.Store(tableID, &tableEntry{
		engine: engine,
		seq:    atomic.AddInt64(&m.seq, 1),
	})
	return engine, nil
}

func (m *manager) CloseTable(tableID string) error {
	if _, exist := m.tableEngines.LoadAndDelete(tableID); !exist {
		return model.ErrTableNotFound
	}
	return nil
}

// ListTables returns the lobby view of one game type in creation order.
func (m *manager) ListTables(gameType model.GameType) []model.TableSummary {
	entries := make([]*tableEntry, 0)
	m.tableEngines.Range(func(key, value interface{}) bool {
		entry := value.(*tableEntry)
		if entry.engine.GameType() == gameType {
			entries = append(entries, entry)
		}
		return true
	})

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].seq < entries[j].seq
	})

	summaries := make([]model.TableSummary, 0, len(entries))
	for _, entry := range entries {
		summaries = append(summaries, entry.engine.Summary())
	}
	return summaries
}

// FindTableByMember finds the table a connection runs as croupier or sits at as a player.
func (m *manager) FindTableByMember(connID string) (TableEngine, error) {
	var found TableEngine
	m.tableEngines.Range(func(key, value interface{}) bool {
		engine := value.(*tableEntry).engine
		if engine.Croupier().ID == connID || engine.HasPlayer(connID) {
			found = engine
			return false
		}
		return true
	})

	if found == nil {
		return nil, model.ErrTableNotFound
	}
	return found, nil
}
