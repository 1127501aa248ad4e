package models

import "github.com/google/uuid"

// Republication targets a partner publication for an article.
type Republication struct {
	ID            uuid.UUID      `json:"id"`
	ArticleID     uuid.UUID      `json:"article_id"`
	RepublisherID uuid.UUID      `json:"republisher_id"`
	Status        ScheduleResult `json:"status"`
	Note          string         `json:"note"`
	Position      int            `json:"position"`
}
