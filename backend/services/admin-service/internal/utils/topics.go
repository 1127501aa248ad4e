package utils

import (
	"strings"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// MainTopicInput trims the submitted primary-topic value and reports
// whether anything was chosen. The "(None)" sentinel counts as nothing.
func MainTopicInput(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if v == "" || v == utils.NoTopicSentinel {
		return "", false
	}
	return v, true
}

// UnionTopics adds main to topics unless it is already there. Existing
// order is kept, duplicates in topics collapse, and main goes last.
func UnionTopics(topics []uuid.UUID, main *uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(topics)+1)
	out := make([]uuid.UUID, 0, len(topics)+1)
	for _, id := range topics {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if main != nil {
		if _, dup := seen[*main]; !dup {
			out = append(out, *main)
		}
	}
	return out
}
