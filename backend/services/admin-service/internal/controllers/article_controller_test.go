package controllers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type articleJSON struct {
	ID         uuid.UUID `json:"id"`
	Version    int64     `json:"version"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	EditorName string    `json:"user"`
	Byline     string    `json:"cached_byline_no_links"`
}

func (f *fixture) createArticle(t *testing.T, title string) articleJSON {
	t.Helper()
	rr := f.do(t, f.alice, http.MethodPost, "/api/v1/admin/articles", dtos.ArticleRequest{
		Title:    title,
		Author01: &f.author.ID,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[articleJSON](t, rr)
}

func TestArticleCreate(t *testing.T) {
	f := newFixture(t)
	a := f.createArticle(t, "Dam levels drop")

	assert.Equal(t, int64(1), a.Version)
	assert.Equal(t, "dam-levels-drop", a.Slug)
	assert.Equal(t, "Alice Smith", a.EditorName)
	assert.Equal(t, "Thandi Nkosi", a.Byline)
}

func TestArticleCreate_ValidationDetails(t *testing.T) {
	f := newFixture(t)
	rr := f.do(t, f.alice, http.MethodPost, "/api/v1/admin/articles", dtos.ArticleRequest{
		Title:  "Long tweet",
		Tweets: []dtos.TweetRequest{{TweetText: strings.Repeat("x", utils.MaxTweetLength+1)}},
	})
	require.Equal(t, http.StatusBadRequest, rr.Code)

	body := decode[errorBody](t, rr)
	assert.Equal(t, utils.ErrCodeValidation, body.Code)
	var details []struct {
		Field string `json:"field"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(body.Details, &details))
	require.Len(t, details, 1)
	assert.Equal(t, "tweets[0].tweet_text", details[0].Field)
	assert.Equal(t, "max", details[0].Code)
}

func TestArticleCreate_MalformedJSON(t *testing.T) {
	f := newFixture(t)
	rr := f.do(t, f.alice, http.MethodPost, "/api/v1/admin/articles", "not an object")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, utils.ErrCodeInvalidPayload, decode[errorBody](t, rr).Code)
}

func TestArticleUpdate_StaleVersionIsRejected(t *testing.T) {
	f := newFixture(t)
	a := f.createArticle(t, "Dam levels drop")
	path := "/api/v1/admin/articles/" + a.ID.String()

	// Bob opens the article and sees that Alice was just in it.
	rr := f.do(t, f.bob, http.MethodGet, path+"/edit", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	edit := decode[dtos.ArticleEditResponse](t, rr)
	assert.Equal(t, int64(1), edit.Article.Version)
	require.Len(t, edit.RecentEditors, 1)
	assert.Equal(t, "Alice Smith", edit.RecentEditors[0].EditorName)
	assert.NotEmpty(t, edit.Choices.PrimaryImageSize.Choices)

	rr = f.do(t, f.bob, http.MethodPut, path, dtos.ArticleRequest{
		Version: 1, Title: "Dam levels rise", Author01: &f.author.ID,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, int64(2), decode[articleJSON](t, rr).Version)

	// Alice still holds version 1.
	rr = f.do(t, f.alice, http.MethodPut, path, dtos.ArticleRequest{
		Version: 1, Title: "Dam levels fall", Author01: &f.author.ID,
	})
	require.Equal(t, http.StatusConflict, rr.Code)
	body := decode[errorBody](t, rr)
	assert.Equal(t, utils.ErrCodeRowVersionConflict, body.Code)
	assert.Contains(t, body.Message, "Bob Dlamini")

	var current articleJSON
	require.NoError(t, json.Unmarshal(body.Details, &current))
	assert.Equal(t, int64(2), current.Version)
	assert.Equal(t, "Dam levels rise", current.Title)

	// After reloading, Alice's save goes through.
	rr = f.do(t, f.alice, http.MethodPut, path, dtos.ArticleRequest{
		Version: 2, Title: "Dam levels fall", Author01: &f.author.ID,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	saved := decode[articleJSON](t, rr)
	assert.Equal(t, int64(3), saved.Version)
	assert.Equal(t, "Alice Smith", saved.EditorName)
}

func TestArticleGetAndDelete(t *testing.T) {
	f := newFixture(t)
	a := f.createArticle(t, "Budget speech")
	path := "/api/v1/admin/articles/" + a.ID.String()

	rr := f.do(t, f.bob, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Budget speech", decode[articleJSON](t, rr).Title)

	rr = f.do(t, f.bob, http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, f.bob, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = f.do(t, f.bob, http.MethodGet, "/api/v1/admin/articles/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestArticleList(t *testing.T) {
	f := newFixture(t)
	f.createArticle(t, "Dam levels drop")
	f.createArticle(t, "Budget speech")

	rr := f.do(t, f.alice, http.MethodGet, "/api/v1/admin/articles?q=dam", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	page := decode[dtos.Paged[dtos.ArticleListItem]](t, rr)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Dam levels drop", page.Data[0].Title)

	tests := []struct {
		name  string
		query string
	}{
		{"month without year", "?month=3"},
		{"unknown published filter", "?published=tomorrow"},
		{"bad category id", "?category=nope"},
		{"non-numeric page", "?page=two"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := f.do(t, f.alice, http.MethodGet, "/api/v1/admin/articles"+tc.query, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestArticleUserEdits(t *testing.T) {
	f := newFixture(t)
	a := f.createArticle(t, "Dam levels drop")

	rr := f.do(t, f.bob, http.MethodGet, "/api/v1/admin/articles/"+a.ID.String()+"/edit", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = f.do(t, f.alice, http.MethodGet, "/api/v1/admin/articles/"+a.ID.String()+"/user-edits", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	edits := decode[[]struct {
		EditorName string `json:"editor_name"`
	}](t, rr)
	require.Len(t, edits, 2)
	assert.Equal(t, "Bob Dlamini", edits[0].EditorName)
	assert.Equal(t, "Alice Smith", edits[1].EditorName)

	rr = f.do(t, f.alice, http.MethodGet, "/api/v1/admin/user-edits?article="+a.ID.String(), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decode[[]json.RawMessage](t, rr), 2)
}
