package casinotable

import (
	"github.com/weedbox/casinotable/model"
	"go.uber.org/zap"
)

func (d *Dispatcher) emitEvent(engine TableEngine, ev model.Event, actorID string) {
	d.logger.Debug("emit event",
		zap.String("table_id", engine.ID()),
		zap.String("game", string(engine.GameType())),
		zap.Int64("serial", engine.Serial()),
		zap.String("actor", actorID),
		zap.String("event", string(ev.Type)),
	)
}

func (d *Dispatcher) emitErrorEvent(req Request, err error) {
	if model.IsRejected(err) {
		d.logger.Debug("action rejected",
			zap.String("conn_id", req.ConnID),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return
	}

	d.logger.Error("action failed",
		zap.String("conn_id", req.ConnID),
		zap.String("action", req.Action),
		zap.String("table_id", req.TableID),
		zap.Error(err),
	)
}
