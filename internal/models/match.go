package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus represents the lifecycle state of a head-to-head match
type MatchStatus string

// Match statuses
const (
	MatchStatusPlanned   MatchStatus = "planned"
	MatchStatusRunning   MatchStatus = "running"
	MatchStatusCompleted MatchStatus = "completed"
	MatchStatusCancelled MatchStatus = "cancelled"
)

// Match represents a head-to-head match between two users within a
// session or tournament
type Match struct {
	ID        uuid.UUID   `db:"id" json:"id" validate:"required,uuid4"`
	SessionID *uuid.UUID  `db:"session_id" json:"session_id"`
	User1ID   *uuid.UUID  `db:"user1_id" json:"user1_id"`
	User2ID   *uuid.UUID  `db:"user2_id" json:"user2_id"`
	Status    MatchStatus `db:"status" json:"status" validate:"required,oneof=planned running completed cancelled"`
	WinnerID  *uuid.UUID  `db:"winner_id" json:"winner_id"`
	CreatedAt time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}

// IsRateable checks whether the match can contribute to rating updates:
// it must be completed with both participants and the winner known.
func (m *Match) IsRateable() bool {
	return m.Status == MatchStatusCompleted && m.User1ID != nil && m.User2ID != nil && m.WinnerID != nil
}
