package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Author struct {
	Versioned

	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	FirstNames  string    `json:"first_names"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Telephone   string    `json:"telephone"`
	Cell        string    `json:"cell"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created"`
	UpdatedAt   time.Time `json:"modified"`
}

func (a *Author) GetID() string {
	return a.ID.String()
}

// Name is the author's name as printed in a byline.
func (a *Author) Name() string {
	return strings.TrimSpace(a.FirstNames + " " + a.LastName)
}
