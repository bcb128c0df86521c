// Package model holds the GORM persistence models. Column names follow the schema shipped in
// the postgres migrations.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table.
type UserModel struct {
	ID           uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`
	Name         string    `gorm:"column:user_name;type:varchar(100);not null"`
	Email        string    `gorm:"column:user_email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"column:create_on;not null"`
	UpdatedAt    time.Time `gorm:"column:last_update;not null"`

	Notes []NoteModel `gorm:"foreignKey:OwnerID;references:ID;constraint:OnDelete:RESTRICT"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// BeforeCreate assigns a time-ordered UUID when the caller did not set one.
func (m *UserModel) BeforeCreate(*gorm.DB) error {
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
