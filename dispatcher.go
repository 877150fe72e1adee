package casinotable

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/weedbox/casinotable/model"
	"github.com/weedbox/casinotable/readiness"
	"github.com/weedbox/timebank"
	"go.uber.org/zap"
)

var (
	ErrDispatcherClosed = errors.New("dispatcher: closed")
)

const (
	closeReason_CroupierLeft = "croupier left the table"
	allBetsInMessage         = "All bets are in"
	internalErrorMessage     = "internal error"
)

// Dispatcher owns every table. Requests are processed one at a time by Run, so engines never see concurrent calls.
type Dispatcher struct {
	manager   Manager
	sessions  *Sessions
	publisher Publisher
	logger    *zap.Logger
	spinDelay time.Duration
	queueSize int

	incoming  chan Request
	done      chan struct{}
	closeOnce sync.Once

	// owned by the loop goroutine
	timebanks  map[string]*timebank.TimeBank
	trackers   map[string]readiness.Tracker
	lastPhases map[string]string
}

func NewDispatcher(manager Manager, publisher Publisher, opts ...DispatcherOpt) *Dispatcher {
	d := &Dispatcher{
		manager:    manager,
		sessions:   NewSessions(),
		publisher:  publisher,
		logger:     zap.NewNop(),
		spinDelay:  DefaultSpinDelay,
		queueSize:  defaultQueueSize,
		done:       make(chan struct{}),
		timebanks:  make(map[string]*timebank.TimeBank),
		trackers:   make(map[string]readiness.Tracker),
		lastPhases: make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.incoming = make(chan Request, d.queueSize)
	return d
}

func (d *Dispatcher) Manager() Manager {
	return d.manager
}

func (d *Dispatcher) Sessions() *Sessions {
	return d.sessions
}

// Submit queues a request for the loop. It blocks while the queue is full.
func (d *Dispatcher) Submit(req Request) error {
	req.internal = false
	return d.submit(req)
}

func (d *Dispatcher) submit(req Request) error {
	select {
	case <-d.done:
		return ErrDispatcherClosed
	default:
	}

	select {
	case d.incoming <- req:
		return nil
	case <-d.done:
		return ErrDispatcherClosed
	}
}

// enqueue never blocks, it may be called from inside Handle.
func (d *Dispatcher) enqueue(req Request) {
	select {
	case d.incoming <- req:
	default:
		d.logger.Warn("request queue full, dropping request",
			zap.String("action", req.Action),
			zap.String("table_id", req.TableID),
		)
	}
}

func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("dispatcher started", zap.Int("queue_size", d.queueSize))
	defer d.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-d.incoming:
			d.Handle(req)
		}
	}
}

// Flush handles every queued request and returns how many it processed. Same goroutine rules as Handle.
func (d *Dispatcher) Flush() int {
	count := 0
	for {
		select {
		case req := <-d.incoming:
			d.Handle(req)
			count++
		default:
			return count
		}
	}
}

func (d *Dispatcher) shutdown() {
	d.closeOnce.Do(func() {
		close(d.done)
	})

	for tableID, tb := range d.timebanks {
		tb.Cancel()
		delete(d.timebanks, tableID)
	}
	for tableID, tr := range d.trackers {
		tr.Close()
		delete(d.trackers, tableID)
	}
	d.logger.Info("dispatcher stopped")
}

// Handle processes one request synchronously. It must only be called from a single goroutine.
func (d *Dispatcher) Handle(req Request) {
	if req.isInternalAction() && !req.internal {
		d.reportError(req, model.ErrForbiddenAction)
		return
	}

	var err error
	switch req.Action {
	case RequestAction_Connect:
		d.logger.Debug("connection opened", zap.String("conn_id", req.ConnID))
	case RequestAction_Disconnect:
		err = d.handleDisconnect(req)
	case RequestAction_ListTables:
		err = d.handleListTables(req)
	case RequestAction_CreateTable:
		err = d.handleCreateTable(req)
	case RequestAction_JoinTable:
		err = d.handleJoinTable(req)
	case RequestAction_LeaveTable:
		err = d.handleLeaveTable(req)
	case RequestAction_ResolveSpin:
		err = d.handleResolveSpin(req)
	case RequestAction_BetsCompleted:
		err = d.handleBetsCompleted(req)
	default:
		err = d.handleTableAction(req)
	}

	if err != nil {
		d.reportError(req, err)
	}
}

func (d *Dispatcher) reportError(req Request, err error) {
	d.emitErrorEvent(req, err)

	if req.ConnID == "" {
		return
	}

	msg := internalErrorMessage
	if model.IsRejected(err) {
		msg = err.Error()
	}

	d.publisher.Send(req.ConnID, OutboundMessage{
		Event:   OutboundEvent_Error,
		Game:    req.Game,
		TableID: req.TableID,
		Data:    ErrorData{Message: msg},
	})
}

func (d *Dispatcher) handleListTables(req Request) error {
	if !req.Game.IsValid() {
		return model.ErrInvalidGameType
	}

	d.publisher.Send(req.ConnID, OutboundMessage{
		Event: OutboundEvent_TableList,
		Game:  req.Game,
		Data:  d.manager.ListTables(req.Game),
	})
	return nil
}

func (d *Dispatcher) handleCreateTable(req Request) error {
	if _, seated := d.sessions.Get(req.ConnID); seated {
		return model.ErrAlreadySeated
	}

	payload, err := req.DecodePayload()
	if err != nil {
		return err
	}

	name := payload.Name
	if name == "" {
		name = defaultCroupierName
	}

	engine, err := d.manager.CreateTable(req.Game, model.Croupier{ID: req.ConnID, Name: name})
	if err != nil {
		return err
	}

	if err := d.sessions.Bind(Binding{
		ConnID:   req.ConnID,
		TableID:  engine.ID(),
		GameType: engine.GameType(),
		Role:     model.Role_Croupier,
		Name:     name,
	}); err != nil {
		_ = d.manager.CloseTable(engine.ID())
		return err
	}

	d.logger.Info("table created",
		zap.String("table_id", engine.ID()),
		zap.String("game", string(engine.GameType())),
		zap.String("croupier", name),
	)

	d.sendJoined(engine, req.ConnID, model.Role_Croupier)
	d.lastPhases[engine.ID()] = engine.Summary().GamePhase
	d.syncReadiness(engine)
	d.broadcastLobby(engine.GameType())
	return nil
}

func (d *Dispatcher) handleJoinTable(req Request) error {
	if _, seated := d.sessions.Get(req.ConnID); seated {
		return model.ErrAlreadySeated
	}

	payload, err := req.DecodePayload()
	if err != nil {
		return err
	}

	tableID := payload.TableID
	if tableID == "" {
		tableID = req.TableID
	}

	engine, err := d.manager.GetTableEngine(tableID)
	if err != nil {
		return err
	}
	if req.Game != "" && req.Game != engine.GameType() {
		return model.ErrTableNotFound
	}

	name := payload.Name
	if name == "" {
		name = defaultPlayerName
	}

	events, err := engine.PlayerJoin(req.ConnID, name)
	if err != nil {
		return err
	}

	if err := d.sessions.Bind(Binding{
		ConnID:   req.ConnID,
		TableID:  engine.ID(),
		GameType: engine.GameType(),
		Role:     model.Role_Player,
		Name:     name,
	}); err != nil {
		_, _ = engine.PlayerLeave(req.ConnID)
		return err
	}

	d.sendJoined(engine, req.ConnID, model.Role_Player)
	d.afterMutation(engine, events, req.ConnID)
	d.broadcastLobby(engine.GameType())
	return nil
}

func (d *Dispatcher) handleLeaveTable(req Request) error {
	if _, seated := d.sessions.Get(req.ConnID); !seated {
		return model.ErrNotSeated
	}
	return d.leave(req.ConnID)
}

func (d *Dispatcher) handleDisconnect(req Request) error {
	d.logger.Debug("connection closed", zap.String("conn_id", req.ConnID))

	if _, seated := d.sessions.Get(req.ConnID); !seated {
		return nil
	}

	// nobody is left to read an error
	if err := d.leave(req.ConnID); err != nil {
		d.emitErrorEvent(req, err)
	}
	return nil
}

func (d *Dispatcher) leave(connID string) error {
	b, _ := d.sessions.Get(connID)

	if b.Role == model.Role_Croupier {
		d.closeTable(b.TableID, b.GameType, closeReason_CroupierLeft)
		return nil
	}

	engine, err := d.manager.GetTableEngine(b.TableID)
	if err != nil {
		d.sessions.Unbind(connID)
		return err
	}

	events, leaveErr := engine.PlayerLeave(connID)
	d.sessions.Unbind(connID)
	if leaveErr != nil {
		return leaveErr
	}

	d.afterMutation(engine, events, connID)
	d.broadcastLobby(engine.GameType())
	return nil
}

// closeTable tears a table down and tells every occupant.
func (d *Dispatcher) closeTable(tableID string, gameType model.GameType, reason string) {
	for _, b := range d.sessions.UnbindTable(tableID) {
		d.publisher.Send(b.ConnID, OutboundMessage{
			Event:   OutboundEvent_TableClosed,
			Game:    gameType,
			TableID: tableID,
			Data:    TableClosedData{Reason: reason},
		})
	}

	if tb, ok := d.timebanks[tableID]; ok {
		tb.Cancel()
		delete(d.timebanks, tableID)
	}
	if tr, ok := d.trackers[tableID]; ok {
		tr.Close()
		delete(d.trackers, tableID)
	}
	delete(d.lastPhases, tableID)

	if err := d.manager.CloseTable(tableID); err != nil {
		d.logger.Warn("close table", zap.String("table_id", tableID), zap.Error(err))
	}

	d.logger.Info("table closed",
		zap.String("table_id", tableID),
		zap.String("game", string(gameType)),
		zap.String("reason", reason),
	)

	d.broadcastLobby(gameType)
}

func (d *Dispatcher) handleTableAction(req Request) error {
	b, seated := d.sessions.Get(req.ConnID)
	if !seated {
		return model.ErrNotSeated
	}

	engine, err := d.manager.GetTableEngine(b.TableID)
	if err != nil {
		return err
	}

	payload, err := req.DecodePayload()
	if err != nil {
		return err
	}

	events, err := engine.Apply(req.ToAction(payload))
	if err != nil {
		return err
	}

	d.afterMutation(engine, events, req.ConnID)
	return nil
}

func (d *Dispatcher) handleResolveSpin(req Request) error {
	engine, err := d.manager.GetTableEngine(req.TableID)
	if err != nil {
		// closed while the wheel was spinning
		return nil
	}

	resolver, ok := engine.(SpinResolver)
	if !ok {
		return model.ErrUnknownAction
	}

	events, err := resolver.ResolveSpin()
	if err != nil {
		return err
	}

	d.afterMutation(engine, events, "")
	return nil
}

func (d *Dispatcher) handleBetsCompleted(req Request) error {
	engine, err := d.manager.GetTableEngine(req.TableID)
	if err != nil {
		return nil
	}

	collector, ok := engine.(BetCollector)
	if !ok || !collector.BettingOpen() || len(collector.ReadyPlayerIDs()) == 0 {
		return nil
	}

	// a leaver may have been replaced since the round completed
	if len(collector.ReadyPlayerIDs()) != len(engine.PlayerIDs()) {
		return nil
	}

	d.publisher.Send(engine.Croupier().ID, OutboundMessage{
		Event:   OutboundEvent_Message,
		Game:    engine.GameType(),
		TableID: engine.ID(),
		Data:    model.MessagePayload{Text: allBetsInMessage},
	})
	return nil
}

func (d *Dispatcher) afterMutation(engine TableEngine, events []model.Event, actorID string) {
	d.publish(engine, events, actorID)

	for _, ev := range events {
		if ev.Type == model.EventType_RouletteSpin {
			d.scheduleSpinResolution(engine.ID())
		}
	}

	d.syncReadiness(engine)

	phase := engine.Summary().GamePhase
	if d.lastPhases[engine.ID()] != phase {
		d.lastPhases[engine.ID()] = phase
		d.broadcastLobby(engine.GameType())
	}
}

// publish fans events out to every occupant. State goes out once per batch as a per-viewer snapshot.
func (d *Dispatcher) publish(engine TableEngine, events []model.Event, actorID string) {
	occupants := d.sessions.Occupants(engine.ID())
	stateSent := false

	for _, ev := range events {
		d.emitEvent(engine, ev, actorID)

		switch ev.Type {
		case model.EventType_StateUpdated:
			if stateSent {
				continue
			}
			stateSent = true
			for _, connID := range occupants {
				d.publisher.Send(connID, OutboundMessage{
					Event:   OutboundEvent_TableUpdate,
					Game:    engine.GameType(),
					TableID: engine.ID(),
					Data:    engine.Snapshot(connID),
				})
			}
		case model.EventType_Message:
			d.fanOut(engine, occupants, OutboundEvent_Message, ev.Payload)
		case model.EventType_RoundResult:
			d.fanOut(engine, occupants, OutboundEvent_RoundResult, ev.Payload)
		case model.EventType_RouletteSpin:
			d.fanOut(engine, occupants, OutboundEvent_RouletteSpin, ev.Payload)
		}
	}
}

func (d *Dispatcher) fanOut(engine TableEngine, occupants []string, event OutboundEvent, data interface{}) {
	for _, connID := range occupants {
		d.publisher.Send(connID, OutboundMessage{
			Event:   event,
			Game:    engine.GameType(),
			TableID: engine.ID(),
			Data:    data,
		})
	}
}

func (d *Dispatcher) sendJoined(engine TableEngine, connID string, role model.Role) {
	d.publisher.Send(connID, OutboundMessage{
		Event:   OutboundEvent_JoinedTable,
		Game:    engine.GameType(),
		TableID: engine.ID(),
		Data: JoinedTableData{
			TableID: engine.ID(),
			Role:    role,
			State:   engine.Snapshot(connID),
		},
	})
}

func (d *Dispatcher) broadcastLobby(gameType model.GameType) {
	d.publisher.Broadcast(OutboundMessage{
		Event: OutboundEvent_TablesUpdated,
		Game:  gameType,
		Data:  d.manager.ListTables(gameType),
	})
}

func (d *Dispatcher) scheduleSpinResolution(tableID string) {
	tb, ok := d.timebanks[tableID]
	if !ok {
		tb = timebank.NewTimeBank()
		d.timebanks[tableID] = tb
	}

	err := tb.NewTask(d.spinDelay, func(isCancelled bool) {
		if isCancelled {
			return
		}

		if err := d.submit(Request{
			Action:   RequestAction_ResolveSpin,
			TableID:  tableID,
			internal: true,
		}); err != nil {
			d.logger.Warn("resolve spin", zap.String("table_id", tableID), zap.Error(err))
		}
	})
	if err != nil {
		d.logger.Error("schedule spin resolution", zap.String("table_id", tableID), zap.Error(err))
	}
}

func (d *Dispatcher) syncReadiness(engine TableEngine) {
	collector, ok := engine.(BetCollector)
	if !ok {
		return
	}

	tableID := engine.ID()
	tr, ok := d.trackers[tableID]
	if !ok {
		tr = readiness.NewTracker(func(state readiness.State) {
			d.enqueue(Request{
				Action:   RequestAction_BetsCompleted,
				TableID:  tableID,
				internal: true,
			})
		})
		d.trackers[tableID] = tr
	}

	if collector.BettingOpen() {
		tr.Sync(engine.PlayerIDs(), collector.ReadyPlayerIDs())
		return
	}
	tr.Close()
}
