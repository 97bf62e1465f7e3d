package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/trackday/internal/database"
	"github.com/yourusername/trackday/internal/models"
)

const errScanTimeEntry = "failed to scan time entry: %w"

// PostgresTimeEntryRepository implements TimeEntryRepository for PostgreSQL
type PostgresTimeEntryRepository struct {
	db *database.DB
}

// NewPostgresTimeEntryRepository creates a new time entry repository
func NewPostgresTimeEntryRepository(db *database.DB) TimeEntryRepository {
	return &PostgresTimeEntryRepository{db: db}
}

// Create inserts a new time entry
func (r *PostgresTimeEntryRepository) Create(ctx context.Context, entry *models.TimeEntry) error {
	query := `
		INSERT INTO time_entries (id, user_id, track_id, session_id, duration, amount, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		entry.ID, entry.UserID, entry.TrackID, entry.SessionID,
		entry.Duration, entry.Amount, entry.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to create time entry: %w", err)
	}

	return nil
}

// GetByID retrieves a time entry by ID, excluding soft-deleted entries
func (r *PostgresTimeEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.TimeEntry, error) {
	query := `
		SELECT id, user_id, track_id, session_id, duration, amount, comment,
		       created_at, updated_at, deleted_at
		FROM time_entries
		WHERE id = $1 AND deleted_at IS NULL
	`

	entry := &models.TimeEntry{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&entry.ID, &entry.UserID, &entry.TrackID, &entry.SessionID, &entry.Duration,
		&entry.Amount, &entry.Comment, &entry.CreatedAt, &entry.UpdatedAt, &entry.DeletedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get time entry: %w", err)
	}

	return entry, nil
}

// GetByTrackID retrieves all live time entries for a track in
// chronological order
func (r *PostgresTimeEntryRepository) GetByTrackID(ctx context.Context, trackID uuid.UUID) ([]*models.TimeEntry, error) {
	query := `
		SELECT id, user_id, track_id, session_id, duration, amount, comment,
		       created_at, updated_at, deleted_at
		FROM time_entries
		WHERE track_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries by track: %w", err)
	}
	defer rows.Close()

	return scanTimeEntries(rows)
}

// GetByUserID retrieves all live time entries for a user in
// chronological order
func (r *PostgresTimeEntryRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]*models.TimeEntry, error) {
	query := `
		SELECT id, user_id, track_id, session_id, duration, amount, comment,
		       created_at, updated_at, deleted_at
		FROM time_entries
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries by user: %w", err)
	}
	defer rows.Close()

	return scanTimeEntries(rows)
}

// GetAllChronological retrieves every live time entry oldest first. The
// rating calculators replay entries in this order.
func (r *PostgresTimeEntryRepository) GetAllChronological(ctx context.Context) ([]*models.TimeEntry, error) {
	query := `
		SELECT id, user_id, track_id, session_id, duration, amount, comment,
		       created_at, updated_at, deleted_at
		FROM time_entries
		WHERE deleted_at IS NULL
		ORDER BY created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query time entries: %w", err)
	}
	defer rows.Close()

	return scanTimeEntries(rows)
}

// SoftDelete marks a time entry as deleted without removing the row
func (r *PostgresTimeEntryRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE time_entries SET deleted_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to soft delete time entry: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func scanTimeEntries(rows pgx.Rows) ([]*models.TimeEntry, error) {
	var entries []*models.TimeEntry
	for rows.Next() {
		entry := &models.TimeEntry{}
		err := rows.Scan(
			&entry.ID, &entry.UserID, &entry.TrackID, &entry.SessionID, &entry.Duration,
			&entry.Amount, &entry.Comment, &entry.CreatedAt, &entry.UpdatedAt, &entry.DeletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanTimeEntry, err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
