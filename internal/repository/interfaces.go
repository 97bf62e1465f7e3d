package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/yourusername/trackday/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	GetAllInfo(ctx context.Context) ([]models.UserInfo, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TrackRepository defines the interface for track data access
type TrackRepository interface {
	Create(ctx context.Context, track *models.Track) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error)
	GetByNumber(ctx context.Context, number int) (*models.Track, error)
	GetAll(ctx context.Context) ([]*models.Track, error)
	GetByLevel(ctx context.Context, level models.TrackLevel) ([]*models.Track, error)
	Update(ctx context.Context, track *models.Track) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TimeEntryRepository defines the interface for lap time data access.
// All read methods exclude soft-deleted entries.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *models.TimeEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TimeEntry, error)
	GetByTrackID(ctx context.Context, trackID uuid.UUID) ([]*models.TimeEntry, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.TimeEntry, error)
	GetAllChronological(ctx context.Context) ([]*models.TimeEntry, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

// MatchRepository defines the interface for match data access
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error)
	GetBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*models.Match, error)
	GetCompletedChronological(ctx context.Context) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
}
