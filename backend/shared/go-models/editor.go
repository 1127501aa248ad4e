package models

import (
	"time"

	"github.com/google/uuid"
)

// Editor is a back-office user. Articles record the editor who saved them last.
type Editor struct {
	Versioned

	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Role         string    `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (e *Editor) GetID() string {
	return e.ID.String()
}

// DisplayName is how other editors see this editor in conflict messages.
func (e *Editor) DisplayName() string {
	if e == nil {
		return ""
	}
	if e.FullName != "" {
		return e.FullName
	}
	return e.Username
}
