package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	firstParagraphRe = regexp.MustCompile(`(?is)<p(?:\s[^>]*)?>(.*?)</p>`)
	tagRe            = regexp.MustCompile(`(?s)<[^>]*>`)
)

// JoinNames renders names as a byline: "A", "A and B", "A, B and C".
func JoinNames(names []string) string {
	var kept []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	switch len(kept) {
	case 0:
		return ""
	case 1:
		return kept[0]
	default:
		return strings.Join(kept[:len(kept)-1], ", ") + " and " + kept[len(kept)-1]
	}
}

// StripTags removes markup and decodes entities, collapsing whitespace.
func StripTags(s string) string {
	s = html.UnescapeString(tagRe.ReplaceAllString(s, " "))
	return strings.Join(strings.Fields(s), " ")
}

// SummaryText is the explicit summary if there is one, otherwise the text of
// the body's first non-blank paragraph.
func SummaryText(summary, body string) string {
	if s := StripTags(summary); s != "" {
		return s
	}
	for _, m := range firstParagraphRe.FindAllStringSubmatch(body, -1) {
		if s := StripTags(m[1]); s != "" {
			return s
		}
	}
	return StripTags(body)
}
