// backend/shared/go-models/audit_log.go
package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
	AuditReject AuditAction = "REJECT"
)

type AuditTargetType string

const (
	TargetArticle     AuditTargetType = "ARTICLE"
	TargetAuthor      AuditTargetType = "AUTHOR"
	TargetCategory    AuditTargetType = "CATEGORY"
	TargetRegion      AuditTargetType = "REGION"
	TargetTopic       AuditTargetType = "TOPIC"
	TargetFlatPage    AuditTargetType = "FLAT_PAGE"
	TargetMostPopular AuditTargetType = "MOST_POPULAR"
)

type AuditLog struct {
	ID         uuid.UUID       `json:"id"`
	EditorID   uuid.UUID       `json:"editor_id"`
	Action     AuditAction     `json:"action"`
	TargetID   uuid.UUID       `json:"target_id"`
	TargetType AuditTargetType `json:"target_type"`
	Details    json.RawMessage `json:"details,omitempty"` // JSONB snapshot of the saved record
	CreatedAt  time.Time       `json:"created_at"`
}
