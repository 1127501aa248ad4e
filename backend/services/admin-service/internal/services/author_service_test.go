package services

import (
	"net/http"
	"testing"

	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorRename_RefreshesBylines(t *testing.T) {
	f := newFixture(t)
	second, err := f.authors.Create(f.ctx, f.alice.ID, dtos.AuthorRequest{FirstNames: "Sipho", LastName: "Dlamini"})
	require.NoError(t, err)

	article := f.createArticle(t, f.alice, dtos.ArticleRequest{
		Title:    "Joint report",
		Author01: &f.author.ID,
		Author02: &second.ID,
	})
	assert.Equal(t, "Thandi Nkosi and Sipho Dlamini", article.CachedBylineNoLinks)

	_, err = f.authors.Update(f.ctx, f.alice.ID, second.ID, dtos.AuthorRequest{
		Version:    second.Version,
		FirstNames: "Sipho",
		LastName:   "Dlamini-Zulu",
	})
	require.NoError(t, err)

	reloaded, err := f.articles.Get(f.ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Thandi Nkosi and Sipho Dlamini-Zulu", reloaded.CachedBylineNoLinks)
	assert.Equal(t, int64(2), reloaded.Version)
}

func TestAuthorDelete_RefreshesBylines(t *testing.T) {
	f := newFixture(t)
	second, err := f.authors.Create(f.ctx, f.alice.ID, dtos.AuthorRequest{FirstNames: "Sipho", LastName: "Dlamini"})
	require.NoError(t, err)
	article := f.createArticle(t, f.alice, dtos.ArticleRequest{
		Title:    "Joint report",
		Author01: &f.author.ID,
		Author02: &second.ID,
	})

	require.NoError(t, f.authors.Delete(f.ctx, f.alice.ID, second.ID))

	reloaded, err := f.articles.Get(f.ctx, article.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.Author02)
	assert.Equal(t, "Thandi Nkosi", reloaded.CachedBylineNoLinks)
}

func TestAuthorUpdate_ExplicitBylineUntouched(t *testing.T) {
	f := newFixture(t)
	article := f.createArticle(t, f.alice, dtos.ArticleRequest{
		Title:    "Staff piece",
		Author01: &f.author.ID,
		Byline:   "<a href=\"/staff\">Staff reporter</a>",
	})
	assert.Equal(t, "Staff reporter", article.CachedBylineNoLinks)

	_, err := f.authors.Update(f.ctx, f.alice.ID, f.author.ID, dtos.AuthorRequest{
		Version: 1, FirstNames: "Thandiwe", LastName: "Nkosi",
	})
	require.NoError(t, err)

	reloaded, err := f.articles.Get(f.ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reloaded.Version)
}

func TestAuthorUpdate_StaleVersion(t *testing.T) {
	f := newFixture(t)
	_, err := f.authors.Update(f.ctx, f.alice.ID, f.author.ID, dtos.AuthorRequest{Version: 1, FirstNames: "A", LastName: "B"})
	require.NoError(t, err)

	_, err = f.authors.Update(f.ctx, f.bob.ID, f.author.ID, dtos.AuthorRequest{Version: 1, FirstNames: "C", LastName: "D"})
	appErr := requireAppError(t, err, http.StatusConflict)
	assert.Equal(t, utils.ErrCodeRowVersionConflict, appErr.Code)
	assert.NotNil(t, appErr.Details)
}

func TestAuthorList_DefaultsToSurnameOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.authors.Create(f.ctx, f.alice.ID, dtos.AuthorRequest{FirstNames: "Zola", LastName: "Abrahams"})
	require.NoError(t, err)

	page, err := f.authors.List(f.ctx, "", "", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 2, page.Total)
	assert.Equal(t, "Abrahams", page.Data[0].LastName)
}
