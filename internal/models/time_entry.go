package models

import (
	"time"

	"github.com/google/uuid"
)

// Milliseconds is a lap duration in integer milliseconds
type Milliseconds = int64

// TimeEntry represents a recorded lap attempt on a track. A nil Duration
// marks a DNF. Entries are soft-deleted via DeletedAt and never removed
// by this code.
type TimeEntry struct {
	ID        uuid.UUID     `db:"id" json:"id" validate:"required,uuid4"`
	UserID    uuid.UUID     `db:"user_id" json:"user_id" validate:"required,uuid4"`
	TrackID   uuid.UUID     `db:"track_id" json:"track_id" validate:"required,uuid4"`
	SessionID *uuid.UUID    `db:"session_id" json:"session_id"`
	Duration  *Milliseconds `db:"duration" json:"duration"`
	Amount    int           `db:"amount" json:"amount" validate:"gte=0"`
	Comment   *string       `db:"comment" json:"comment"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time    `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at" json:"deleted_at"`
}

// IsDNF checks whether the entry has no recorded duration
func (e *TimeEntry) IsDNF() bool {
	return e.Duration == nil
}

// IsDeleted checks whether the entry has been soft-deleted
func (e *TimeEntry) IsDeleted() bool {
	return e.DeletedAt != nil
}
