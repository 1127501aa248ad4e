package repositories

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgtype"
)

// Scanning nullable columns goes through pgtype so a NULL never lands in a
// zero uuid or zero time by accident.

func uuidPtr(v pgtype.UUID) *uuid.UUID {
	if v.Status != pgtype.Present {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
}

func timePtr(v pgtype.Timestamptz) *time.Time {
	if v.Status != pgtype.Present {
		return nil
	}
	t := v.Time
	return &t
}

func textOrEmpty(v pgtype.Text) string {
	if v.Status != pgtype.Present {
		return ""
	}
	return v.String
}
