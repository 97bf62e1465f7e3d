package repository

import (
	"fmt"

	"github.com/yourusername/trackday/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	User      UserRepository
	Track     TrackRepository
	TimeEntry TimeEntryRepository
	Match     MatchRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		User:      NewPostgresUserRepository(db),
		Track:     NewPostgresTrackRepository(db),
		TimeEntry: NewPostgresTimeEntryRepository(db),
		Match:     NewPostgresMatchRepository(db),
	}, nil
}
