package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Café Society":             "cafe-society",
		"  Hello,   World!  ":      "hello-world",
		"The editor's choice":      "the-editors-choice",
		"Ünïcödé & Friends — 2024": "unicode-friends-2024",
		"---":                      "",
		"":                         "",
		"already-a-slug":           "already-a-slug",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestSlugify_Length(t *testing.T) {
	s := Slugify(strings.Repeat("word ", 30))
	assert.LessOrEqual(t, len(s), MaxSlugLength)
	assert.False(t, strings.HasSuffix(s, "-"))
}
