package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultRole is assigned to users created through signup.
const DefaultRole = "user"

// User represents a user record in the database
type User struct {
	UID          uuid.UUID `json:"uid" db:"uid"`                 // Primary key
	Username     string    `json:"username" db:"username"`       // Display name
	Email        string    `json:"email" db:"email"`             // Unique email, used to log in
	FirstName    string    `json:"first_name" db:"first_name"`   // Given name
	LastName     string    `json:"last_name" db:"last_name"`     // Family name
	Role         string    `json:"role" db:"role"`               // Authorization role
	IsVerified   bool      `json:"is_verified" db:"is_verified"` // Email verification flag
	PasswordHash string    `json:"-" db:"password_hash"`         // bcrypt digest, never serialized
	CreatedAt    time.Time `json:"created_at" db:"created_at"`   // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`   // Last update timestamp
}
