package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/trackday/internal/database"
	"github.com/yourusername/trackday/internal/models"
)

const errScanMatch = "failed to scan match: %w"

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

// Create inserts a new match
func (r *PostgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (id, session_id, user1_id, user2_id, status, winner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		match.ID, match.SessionID, match.User1ID, match.User2ID, match.Status, match.WinnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// GetByID retrieves a match by ID
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	query := `
		SELECT id, session_id, user1_id, user2_id, status, winner_id, created_at, updated_at
		FROM matches WHERE id = $1
	`

	match := &models.Match{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&match.ID, &match.SessionID, &match.User1ID, &match.User2ID,
		&match.Status, &match.WinnerID, &match.CreatedAt, &match.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// GetBySessionID retrieves all matches in a session in chronological order
func (r *PostgresMatchRepository) GetBySessionID(ctx context.Context, sessionID uuid.UUID) ([]*models.Match, error) {
	query := `
		SELECT id, session_id, user1_id, user2_id, status, winner_id, created_at, updated_at
		FROM matches
		WHERE session_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches by session: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// GetCompletedChronological retrieves every completed match oldest
// first. The rating engine replays matches in this order.
func (r *PostgresMatchRepository) GetCompletedChronological(ctx context.Context) ([]*models.Match, error) {
	query := `
		SELECT id, session_id, user1_id, user2_id, status, winner_id, created_at, updated_at
		FROM matches
		WHERE status = 'completed'
		ORDER BY created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query completed matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// Update updates an existing match
func (r *PostgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			status = $2, winner_id = $3, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, match.ID, match.Status, match.WinnerID)
	if err != nil {
		return fmt.Errorf("failed to update match: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func scanMatches(rows pgx.Rows) ([]*models.Match, error) {
	var matches []*models.Match
	for rows.Next() {
		match := &models.Match{}
		err := rows.Scan(
			&match.ID, &match.SessionID, &match.User1ID, &match.User2ID,
			&match.Status, &match.WinnerID, &match.CreatedAt, &match.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanMatch, err)
		}
		matches = append(matches, match)
	}

	return matches, rows.Err()
}
