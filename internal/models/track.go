package models

import (
	"time"

	"github.com/google/uuid"
)

// TrackLevel represents the difficulty colour of a track
type TrackLevel string

// Track difficulty levels
const (
	TrackLevelWhite  TrackLevel = "white"
	TrackLevelGreen  TrackLevel = "green"
	TrackLevelBlue   TrackLevel = "blue"
	TrackLevelRed    TrackLevel = "red"
	TrackLevelBlack  TrackLevel = "black"
	TrackLevelCustom TrackLevel = "custom"
)

// TrackType represents the environment a track is built in
type TrackType string

// Track environments
const (
	TrackTypeCanyon  TrackType = "canyon"
	TrackTypeValley  TrackType = "valley"
	TrackTypeLagoon  TrackType = "lagoon"
	TrackTypeStadium TrackType = "stadium"
	TrackTypeDrift   TrackType = "drift"
)

// Track represents a user-submitted track
type Track struct {
	ID        uuid.UUID  `db:"id" json:"id" validate:"required,uuid4"`
	Number    int        `db:"number" json:"number" validate:"required,gt=0"`
	Level     TrackLevel `db:"level" json:"level" validate:"required,oneof=white green blue red black custom"`
	Type      TrackType  `db:"type" json:"type" validate:"required,oneof=canyon valley lagoon stadium drift"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// IsCustom checks whether the track is a custom (non-campaign) track
func (t *Track) IsCustom() bool {
	return t.Level == TrackLevelCustom
}
