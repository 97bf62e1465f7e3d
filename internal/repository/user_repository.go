package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/trackday/internal/database"
	"github.com/yourusername/trackday/internal/models"
)

const errScanUser = "failed to scan user: %w"

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *database.DB
}

// NewPostgresUserRepository creates a new user repository
func NewPostgresUserRepository(db *database.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

// Create inserts a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, first_name, last_name, short_name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.ShortName, user.Role, user.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, first_name, last_name, short_name, role, password_hash, created_at, updated_at
		FROM users WHERE id = $1
	`

	user := &models.User{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.ShortName,
		&user.Role, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// GetAll retrieves all users ordered by creation time
func (r *PostgresUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	query := `
		SELECT id, first_name, last_name, short_name, role, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		err := rows.Scan(
			&user.ID, &user.FirstName, &user.LastName, &user.ShortName,
			&user.Role, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanUser, err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// GetAllInfo retrieves the public projection of every user. Credential
// columns are never selected.
func (r *PostgresUserRepository) GetAllInfo(ctx context.Context) ([]models.UserInfo, error) {
	query := `
		SELECT id, first_name, last_name, short_name, role
		FROM users
		ORDER BY created_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query user info: %w", err)
	}
	defer rows.Close()

	var infos []models.UserInfo
	for rows.Next() {
		var info models.UserInfo
		err := rows.Scan(&info.ID, &info.FirstName, &info.LastName, &info.ShortName, &info.Role)
		if err != nil {
			return nil, fmt.Errorf(errScanUser, err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

// Update updates an existing user
func (r *PostgresUserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users SET
			first_name = $2, last_name = $3, short_name = $4, role = $5, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query,
		user.ID, user.FirstName, user.LastName, user.ShortName, user.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	return nil
}

// Delete deletes a user
func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := "DELETE FROM users WHERE id = $1"

	commandTag, err := r.db.GetPool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}

	return nil
}
