package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents a user's permission level
type UserRole string

// User roles
const (
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
	RoleUser      UserRole = "user"
)

// User represents a persisted user account, including credential material.
// Never hand this struct to the rating or leaderboard code; use Public().
type User struct {
	ID           uuid.UUID `db:"id" json:"id" validate:"required,uuid4"`
	FirstName    string    `db:"first_name" json:"first_name" validate:"required,min=1,max=255"`
	LastName     *string   `db:"last_name" json:"last_name"`
	ShortName    *string   `db:"short_name" json:"short_name"`
	Role         UserRole  `db:"role" json:"role" validate:"required,oneof=admin moderator user"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// UserInfo is the public projection of a user. It has no credential
// fields at all, so it can be embedded in derived views and serialized
// without scrubbing.
type UserInfo struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  *string   `json:"last_name,omitempty"`
	ShortName *string   `json:"short_name,omitempty"`
	Role      UserRole  `json:"role"`
}

// Public returns the public projection of the user
func (u *User) Public() UserInfo {
	return UserInfo{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ShortName: u.ShortName,
		Role:      u.Role,
	}
}

// DisplayName returns the short name if set, otherwise the first name
func (u UserInfo) DisplayName() string {
	if u.ShortName != nil && *u.ShortName != "" {
		return *u.ShortName
	}
	return u.FirstName
}
