package entity

import (
	"time"

	"github.com/google/uuid"
)

// Note is a titled text owned by exactly one user.
type Note struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID // Set once at creation.
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the note belongs to the given user. Ownership is decided
// by identifier equality only.
func (n *Note) OwnedBy(user *User) bool {
	if n == nil || user == nil {
		return false
	}

	return n.OwnerID == user.ID
}
