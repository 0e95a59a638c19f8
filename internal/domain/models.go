package domain

import (
	"time"
)

type Player struct {
	AccountID string
	Label     string
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RawMatch is one played match as delivered by the caller. StartTime is
// Unix seconds; PlayerSlot 0-127 is the radiant side, 128-255 the dire side.
type RawMatch struct {
	MatchID    int64
	StartTime  int64
	PlayerSlot int
	RadiantWin bool
	Duration   int
	Kills      int
	Deaths     int
	Assists    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ImportBatch records one import request for a player.
type ImportBatch struct {
	ID         string // nanoid
	AccountID  string
	MatchCount int
	ImportedAt time.Time
}
