package casinotable

import "time"

const (
	// General
	UnsetValue = -1

	// Table ID
	tableIDPrefix = "table_"
	tableIDLength = 8

	// Dispatcher
	DefaultSpinDelay = 5 * time.Second
	defaultQueueSize = 1024

	defaultCroupierName = "Croupier"
	defaultPlayerName   = "Player"
)
