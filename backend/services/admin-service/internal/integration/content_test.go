//go:build (dev_test || dev || staging_test) && integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/routes"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-testhelpers"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth(t *testing.T) {
	h.T = t
	resp, err := http.Get(h.BaseURL + routes.Health)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCategoryLifecycle(t *testing.T) {
	h.T = t
	ctx := context.Background()
	client := h.NewHTTPClient()
	editor := h.CreateTestEditor(ctx, "Taxonomy Editor", utils.EditorRole)
	jwt := h.CreateEditorJWT(editor.ID, editor.Role, clientIP)

	slug := testhelpers.UniqueSlug("desk")
	body, _ := json.Marshal(dtos.TermRequest{Name: "Desk " + slug, Slug: slug})
	r := h.BuildAuthRequest(http.MethodPost, h.BaseURL+"/api/v1/admin/categories", jwt, body, clientIP)
	resp := h.DoRequest(r, client)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, h.ReadBody(resp))

	var created models.Term
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, models.KindCategory, created.Kind)

	// Same slug again hits the unique constraint.
	r = h.BuildAuthRequest(http.MethodPost, h.BaseURL+"/api/v1/admin/categories", jwt, body, clientIP)
	dup := h.DoRequest(r, client)
	defer dup.Body.Close()
	assert.Equal(t, http.StatusConflict, dup.StatusCode)

	r = h.BuildAuthRequest(http.MethodDelete, h.BaseURL+"/api/v1/admin/categories/"+created.ID.String(), jwt, nil, clientIP)
	del := h.DoRequest(r, client)
	defer del.Body.Close()
	assert.Equal(t, http.StatusOK, del.StatusCode)
}

func TestAuthorRenameUpdatesStoredByline(t *testing.T) {
	h.T = t
	ctx := context.Background()
	client := h.NewHTTPClient()
	editor := h.CreateTestEditor(ctx, "Byline Editor", utils.EditorRole)
	jwt := h.CreateEditorJWT(editor.ID, editor.Role, clientIP)

	author := h.CreateTestAuthor(ctx, "Sipho", "Mokoena")
	body, _ := json.Marshal(dtos.ArticleRequest{Title: "Integration byline", Author01: &author.ID})
	r := h.BuildAuthRequest(http.MethodPost, h.BaseURL+routes.Articles, jwt, body, clientIP)
	resp := h.DoRequest(r, client)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode, h.ReadBody(resp))
	var article dtos.ArticleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&article))

	body, _ = json.Marshal(dtos.AuthorRequest{Version: author.Version, FirstNames: "Sipho J.", LastName: "Mokoena"})
	r = h.BuildAuthRequest(http.MethodPut, withID(routes.AuthorByID, author.ID), jwt, body, clientIP)
	upd := h.DoRequest(r, client)
	defer upd.Body.Close()
	require.Equal(t, http.StatusOK, upd.StatusCode, h.ReadBody(upd))

	stored, err := h.ArticleRepo.GetByID(ctx, article.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Sipho J. Mokoena", stored.CachedBylineNoLinks)
}

func TestUnauthenticatedRequestsAreRejected(t *testing.T) {
	h.T = t
	client := h.NewHTTPClient()
	r := h.BuildAuthRequest(http.MethodGet, h.BaseURL+routes.Articles, "", nil, clientIP)
	resp := h.DoRequest(r, client)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
