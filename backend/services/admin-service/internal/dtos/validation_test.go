package dtos

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidator_Slug(t *testing.T) {
	v := NewValidator()
	ok := TermRequest{Name: "Politics", Slug: "local-politics-2024"}
	assert.NoError(t, v.Struct(ok))

	for _, bad := range []string{"Upper", "double--dash", "-lead", "trail-", "spa ce"} {
		req := TermRequest{Name: "x", Slug: bad}
		assert.Error(t, v.Struct(req), bad)
	}
}

func TestArticleRequest_TweetLength(t *testing.T) {
	v := NewValidator()
	req := ArticleRequest{
		Title:  "Budget vote",
		Tweets: []TweetRequest{{TweetText: strings.Repeat("é", 280)}},
	}
	assert.NoError(t, v.Struct(req))

	req.Tweets[0].TweetText = strings.Repeat("a", 281)
	assert.Error(t, v.Struct(req))
}

func TestArticleRequest_SendStatus(t *testing.T) {
	v := NewValidator()
	req := ArticleRequest{Title: "x", FacebookSendStatus: "queued"}
	assert.Error(t, v.Struct(req))
	req.FacebookSendStatus = "paused"
	assert.NoError(t, v.Struct(req))
}

func TestFlatPageRequest_URL(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Struct(FlatPageRequest{URL: "/about/", Title: "About"}))
	assert.Error(t, v.Struct(FlatPageRequest{URL: "about/", Title: "About"}))
	assert.Error(t, v.Struct(FlatPageRequest{URL: "/about", Title: "About"}))
}

func TestArticleListParams(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Struct(ArticleListParams{Page: 1, PageSize: 50, Year: 2024, Month: 3, Day: 14}))
	assert.Error(t, v.Struct(ArticleListParams{Page: 1, PageSize: 50, Day: 14}))
	assert.Error(t, v.Struct(ArticleListParams{Page: 1, PageSize: 50, Published: "yesterday"}))
	assert.Error(t, v.Struct(ArticleListParams{Page: 0, PageSize: 50}))
}

func TestNewValidator_JSONFieldNames(t *testing.T) {
	v := NewValidator()
	err := v.Struct(ArticleRequest{Title: "x", Tweets: []TweetRequest{{}}})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "ArticleRequest.tweets[0].tweet_text", verrs[0].Namespace())
}
