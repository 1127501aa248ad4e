package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinNames(t *testing.T) {
	assert.Equal(t, "", JoinNames(nil))
	assert.Equal(t, "Ann", JoinNames([]string{"Ann"}))
	assert.Equal(t, "Ann and Bo", JoinNames([]string{"Ann", " ", "Bo"}))
	assert.Equal(t, "Ann, Bo and Cy", JoinNames([]string{"Ann", "Bo", "Cy"}))
}

func TestSummaryText(t *testing.T) {
	assert.Equal(t, "Given summary", SummaryText("<b>Given</b> summary", "<p>Body</p>"))
	assert.Equal(t, "First real paragraph & more",
		SummaryText("", "<p>&nbsp;</p><p class=\"lead\">First <em>real</em> paragraph &amp; more</p><p>Second</p>"))
	assert.Equal(t, "No paragraphs", SummaryText("", "No <br>paragraphs"))
}
