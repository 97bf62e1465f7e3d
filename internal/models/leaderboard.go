package models

import (
	"time"

	"github.com/google/uuid"
)

// Gap holds the position and millisecond deltas of a leaderboard entry
// relative to its neighbours. Delta fields are nil when either side of
// the comparison lacks a finite duration, and Leader is nil for the
// leader itself.
type Gap struct {
	Position int           `json:"position"`
	Previous *Milliseconds `json:"previous,omitempty"`
	Leader   *Milliseconds `json:"leader,omitempty"`
	Next     *Milliseconds `json:"next,omitempty"`
}

// LeaderboardEntry is the derived, non-persisted view of a user's best
// lap on a track
type LeaderboardEntry struct {
	ID        uuid.UUID     `json:"id"`
	Duration  *Milliseconds `json:"duration"`
	Amount    int           `json:"amount"`
	Comment   *string       `json:"comment,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt *time.Time    `json:"updated_at,omitempty"`
	DeletedAt *time.Time    `json:"deleted_at,omitempty"`
	User      UserInfo      `json:"user"`
	Gap       Gap           `json:"gap"`
}

// Leaderboard is an ordered, deduplicated, gap-annotated view of a
// track's time entries. TotalEntries counts the deduplicated set before
// any offset/limit slicing.
type Leaderboard struct {
	Track        *Track             `json:"track"`
	TotalEntries int                `json:"total_entries"`
	Entries      []LeaderboardEntry `json:"entries"`
}
