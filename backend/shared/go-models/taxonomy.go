package models

import (
	"time"

	"github.com/google/uuid"
)

// TaxonomyKind selects which classification table a Term lives in.
type TaxonomyKind string

const (
	KindCategory TaxonomyKind = "category"
	KindRegion   TaxonomyKind = "region"
	KindTopic    TaxonomyKind = "topic"
)

// Term is a category, region or topic. All three share name + slug.
type Term struct {
	Versioned

	ID          uuid.UUID    `json:"id"`
	Kind        TaxonomyKind `json:"kind"`
	Name        string       `json:"name"`
	Slug        string       `json:"slug"`
	Description string       `json:"description"`
	CreatedAt   time.Time    `json:"created"`
	UpdatedAt   time.Time    `json:"modified"`
}

func (t *Term) GetID() string {
	return t.ID.String()
}

func (k TaxonomyKind) AuditTarget() AuditTargetType {
	switch k {
	case KindCategory:
		return TargetCategory
	case KindRegion:
		return TargetRegion
	default:
		return TargetTopic
	}
}
