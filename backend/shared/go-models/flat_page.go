package models

import (
	"time"

	"github.com/google/uuid"
)

type FlatPage struct {
	Versioned

	ID                   uuid.UUID `json:"id"`
	URL                  string    `json:"url"`
	Title                string    `json:"title"`
	Content              string    `json:"content"`
	Sites                []string  `json:"sites"`
	EnableComments       bool      `json:"enable_comments"`
	RegistrationRequired bool      `json:"registration_required"`
	TemplateName         string    `json:"template_name"`
	CreatedAt            time.Time `json:"created"`
	UpdatedAt            time.Time `json:"modified"`
}

func (p *FlatPage) GetID() string {
	return p.ID.String()
}
