package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents an account that can create catalog entries.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// LoginForm represents the login form payload.
type LoginForm struct {
	Username string
	Password string
}

// RegisterForm represents the registration form payload.
type RegisterForm struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Validate checks username charset and length, email shape, and password
// length and confirmation.
func (f *RegisterForm) Validate() error {
	if strings.TrimSpace(f.Username) == "" {
		return NewValidationError("Username cannot be empty")
	}
	if len(f.Username) < 3 {
		return NewValidationError("Username must be at least 3 characters")
	}
	if len(f.Username) > 50 {
		return NewValidationError("Username cannot exceed 50 characters")
	}
	for _, c := range f.Username {
		if !isUsernameChar(c) {
			return NewValidationError("Username can only contain letters, numbers, and underscores")
		}
	}
	if strings.TrimSpace(f.Email) == "" {
		return NewValidationError("Email cannot be empty")
	}
	if !strings.Contains(f.Email, "@") || !strings.Contains(f.Email, ".") {
		return NewValidationError("Invalid email format")
	}
	if len(f.Password) < 6 {
		return NewValidationError("Password must be at least 6 characters")
	}
	if f.Password != f.ConfirmPassword {
		return NewValidationError("Passwords do not match")
	}
	return nil
}

func isUsernameChar(c rune) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
