// Package user contains the user domain model. Identity is created
// through the auth flow and mirrored into a profile row; the admin
// screens manage the same records.
package user

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role determines what a user may administer.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole validates a role string, defaulting to RoleUser.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User represents an account and its profile row.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	AvatarURL    *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// New creates a user with a fresh identifier. The password hash must
// already be computed; the domain never sees plaintext passwords.
func New(name, email, passwordHash string, role Role, avatarURL *string) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if passwordHash == "" {
		return nil, ErrPasswordRequired
	}

	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        strings.ToLower(email),
		PasswordHash: passwordHash,
		AvatarURL:    avatarURL,
		Role:         ParseRole(string(role)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsAdmin reports whether the user may access the admin screens.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
