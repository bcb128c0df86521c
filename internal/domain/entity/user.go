// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns notes.
type User struct {
	ID           uuid.UUID // Generated at creation, never reassigned.
	Name         string    // Display name.
	Email        string    // Login identifier, unique and matched exactly (case-sensitive).
	PasswordHash string    // bcrypt digest. The plaintext is never stored.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
