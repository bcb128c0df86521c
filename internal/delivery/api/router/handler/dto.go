// Package handler contains the HTTP handlers of the JSON API.
package handler

import (
	"time"

	"notes/internal/domain/entity"

	"github.com/google/uuid"
)

// Request and response bodies keep the field names of the service's public API.

type RegisterRequest struct {
	Name     string `json:"user_name" validate:"required,max=100"`
	Email    string `json:"user_email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Email    string `json:"user_email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// NoteRequest requires note_content to be present; an empty string is a valid body.
type NoteRequest struct {
	Title   string  `json:"note_title" validate:"required,max=255"`
	Content *string `json:"note_content" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// UserResponse never includes the password hash.
type UserResponse struct {
	ID         uuid.UUID `json:"user_id"`
	Name       string    `json:"user_name"`
	Email      string    `json:"user_email"`
	CreatedOn  time.Time `json:"create_on"`
	LastUpdate time.Time `json:"last_update"`
}

type NoteResponse struct {
	ID         uuid.UUID `json:"note_id"`
	Title      string    `json:"note_title"`
	Content    string    `json:"note_content"`
	CreatedOn  time.Time `json:"created_on"`
	LastUpdate time.Time `json:"last_update"`
	OwnerID    uuid.UUID `json:"owner_id"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		CreatedOn:  u.CreatedAt,
		LastUpdate: u.UpdatedAt,
	}
}

func toNoteResponse(n *entity.Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID,
		Title:      n.Title,
		Content:    n.Content,
		CreatedOn:  n.CreatedAt,
		LastUpdate: n.UpdatedAt,
		OwnerID:    n.OwnerID,
	}
}

func toNoteResponses(notes []*entity.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n))
	}

	return out
}
