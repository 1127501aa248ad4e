package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMainTopicInput(t *testing.T) {
	for _, raw := range []string{"(None)", "", "   ", " (None) "} {
		v, ok := MainTopicInput(raw)
		assert.False(t, ok, "raw %q", raw)
		assert.Empty(t, v)
	}

	v, ok := MainTopicInput("  Politics ")
	assert.True(t, ok)
	assert.Equal(t, "Politics", v)
}

func TestUnionTopics(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	assert.Equal(t, []uuid.UUID{a, b, c}, UnionTopics([]uuid.UUID{a, b}, &c))
	assert.Equal(t, []uuid.UUID{a, b}, UnionTopics([]uuid.UUID{a, b}, &a))
	assert.Equal(t, []uuid.UUID{a, b}, UnionTopics([]uuid.UUID{a, b, a}, nil))
	assert.Equal(t, []uuid.UUID{c}, UnionTopics(nil, &c))
	assert.Empty(t, UnionTopics(nil, nil))
}
