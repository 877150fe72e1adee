package casinotable

import (
	"time"

	"go.uber.org/zap"
)

type DispatcherOpt func(*Dispatcher)

func WithLogger(logger *zap.Logger) DispatcherOpt {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithSpinDelay sets how long a roulette wheel spins before the round is paid out.
func WithSpinDelay(delay time.Duration) DispatcherOpt {
	return func(d *Dispatcher) {
		d.spinDelay = delay
	}
}

func WithQueueSize(size int) DispatcherOpt {
	return func(d *Dispatcher) {
		if size > 0 {
			d.queueSize = size
		}
	}
}
