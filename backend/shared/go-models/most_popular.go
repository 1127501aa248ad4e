package models

import (
	"time"

	"github.com/google/uuid"
)

// MostPopular is a snapshot of the most read articles, newline separated.
type MostPopular struct {
	ID          uuid.UUID `json:"id"`
	ArticleList string    `json:"article_list"`
	CreatedAt   time.Time `json:"created"`
}
