package config

import "time"

// UI constants
const (
	ErrorColor   = 0xFF0000
	SuccessColor = 0x00FF00
	InfoColor    = 0x0099FF
	WarningColor = 0xFFAA00

	// BarWidth is the tick count of the HP/MP bar graphs.
	BarWidth = 10

	// RenderCacheSize bounds the LRU of last-rendered message contents.
	RenderCacheSize = 1024
)

// Scheduling constants
const (
	// TickPeriod is the game-clock period.
	TickPeriod = 1 * time.Second

	// SyncPeriod is the presentation-sync period.
	SyncPeriod = 2 * time.Second

	CommandTimeout = 10 * time.Second
)
