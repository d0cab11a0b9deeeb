// Package identity talks to the auth service that owns the authoritative
// list of person identities. The migration reads it to prove an identity
// exists before mirroring account metadata; it never creates or deletes
// identities.
package identity

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("identity not found")

// User is the subset of the provider's user record the migration needs.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Provider is the read-only surface consumed by the migration engine.
type Provider interface {
	// UserExists reports whether the provider knows the given identity id.
	UserExists(ctx context.Context, id string) (bool, error)
	// GetUserByEmail returns the identity for an email address, or
	// ErrNotFound when the provider has no such user.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
