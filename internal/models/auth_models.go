package models

import "time"

// Role names as stored in the roles table and carried in tokens.
const (
	RoleAdmin    = "admin"
	RoleStandard = "standard"
	RoleGuide    = "guide"
)

// IsKnownRole reports whether name is one of the three back office roles.
func IsKnownRole(name string) bool {
	switch name {
	case RoleAdmin, RoleStandard, RoleGuide:
		return true
	}
	return false
}

// User represents a user in the system
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        *string   `json:"email,omitempty" db:"email"`
	FullName     *string   `json:"full_name,omitempty" db:"full_name"`
	RoleID       int64     `json:"role_id" db:"role_id"`
	RoleName     string    `json:"role" db:"role_name"`
	GuideID      *int64    `json:"guide_id,omitempty" db:"guide_id"` // set for guide accounts
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Role represents a user role
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
