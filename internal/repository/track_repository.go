package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/trackday/internal/database"
	"github.com/yourusername/trackday/internal/models"
)

const errScanTrack = "failed to scan track: %w"

// PostgresTrackRepository implements TrackRepository for PostgreSQL
type PostgresTrackRepository struct {
	db *database.DB
}

// NewPostgresTrackRepository creates a new track repository
func NewPostgresTrackRepository(db *database.DB) TrackRepository {
	return &PostgresTrackRepository{db: db}
}

// Create inserts a new track
func (r *PostgresTrackRepository) Create(ctx context.Context, track *models.Track) error {
	query := `
		INSERT INTO tracks (id, number, level, type)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		track.ID, track.Number, track.Level, track.Type,
	)
	if err != nil {
		return fmt.Errorf("failed to create track: %w", err)
	}

	return nil
}

// GetByID retrieves a track by ID
func (r *PostgresTrackRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Track, error) {
	query := `
		SELECT id, number, level, type, created_at, updated_at
		FROM tracks WHERE id = $1
	`

	track := &models.Track{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&track.ID, &track.Number, &track.Level, &track.Type, &track.CreatedAt, &track.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrTrackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track: %w", err)
	}

	return track, nil
}

// GetByNumber retrieves a track by its campaign number
func (r *PostgresTrackRepository) GetByNumber(ctx context.Context, number int) (*models.Track, error) {
	query := `
		SELECT id, number, level, type, created_at, updated_at
		FROM tracks WHERE number = $1
	`

	track := &models.Track{}
	err := r.db.GetPool().QueryRow(ctx, query, number).Scan(
		&track.ID, &track.Number, &track.Level, &track.Type, &track.CreatedAt, &track.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrTrackNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get track by number: %w", err)
	}

	return track, nil
}

// GetAll retrieves all tracks ordered by number
func (r *PostgresTrackRepository) GetAll(ctx context.Context) ([]*models.Track, error) {
	query := `
		SELECT id, number, level, type, created_at, updated_at
		FROM tracks
		ORDER BY number ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*models.Track
	for rows.Next() {
		track := &models.Track{}
		err := rows.Scan(
			&track.ID, &track.Number, &track.Level, &track.Type, &track.CreatedAt, &track.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanTrack, err)
		}
		tracks = append(tracks, track)
	}

	return tracks, rows.Err()
}

// GetByLevel retrieves all tracks of a difficulty level
func (r *PostgresTrackRepository) GetByLevel(ctx context.Context, level models.TrackLevel) ([]*models.Track, error) {
	query := `
		SELECT id, number, level, type, created_at, updated_at
		FROM tracks
		WHERE level = $1
		ORDER BY number ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, level)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks by level: %w", err)
	}
	defer rows.Close()

	var tracks []*models.Track
	for rows.Next() {
		track := &models.Track{}
		err := rows.Scan(
			&track.ID, &track.Number, &track.Level, &track.Type, &track.CreatedAt, &track.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanTrack, err)
		}
		tracks = append(tracks, track)
	}

	return tracks, rows.Err()
}

// Update updates an existing track
func (r *PostgresTrackRepository) Update(ctx context.Context, track *models.Track) error {
	query := `
		UPDATE tracks SET
			number = $2, level = $3, type = $4, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, track.ID, track.Number, track.Level, track.Type)
	if err != nil {
		return fmt.Errorf("failed to update track: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrTrackNotFound
	}

	return nil
}

// Delete deletes a track
func (r *PostgresTrackRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM tracks WHERE id = $1"

	commandTag, err := r.db.GetPool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrTrackNotFound
	}

	return nil
}
