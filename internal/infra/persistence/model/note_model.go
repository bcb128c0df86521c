package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoteModel mirrors the 'notes' table. OwnerID references users.user_id.
type NoteModel struct {
	ID        uuid.UUID `gorm:"column:note_id;type:uuid;primaryKey"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null;index"`
	Title     string    `gorm:"column:note_title;type:varchar(255);not null"`
	Content   string    `gorm:"column:note_content;type:text;not null"`
	CreatedAt time.Time `gorm:"column:created_on;not null"`
	UpdatedAt time.Time `gorm:"column:last_update;not null"`
}

// TableName explicitly sets the table name for GORM.
func (NoteModel) TableName() string {
	return "notes"
}

func (m *NoteModel) BeforeCreate(*gorm.DB) error {
	if m.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	m.ID = id

	return nil
}
