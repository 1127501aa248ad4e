package models

import (
	"time"

	"github.com/google/uuid"
)

// UserEdit records that an editor opened or saved an article.
type UserEdit struct {
	ID         uuid.UUID `json:"id"`
	ArticleID  uuid.UUID `json:"article_id"`
	EditorID   uuid.UUID `json:"editor_id"`
	EditorName string    `json:"editor_name"`
	EditTime   time.Time `json:"edit_time"`
}
