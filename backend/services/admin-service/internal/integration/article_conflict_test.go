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
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleEditConflictFlow(t *testing.T) {
	h.T = t
	ctx := context.Background()
	client := h.NewHTTPClient()

	alice := h.CreateTestEditor(ctx, "Alice Integration", utils.EditorRole)
	bob := h.CreateTestEditor(ctx, "Bob Integration", utils.EditorRole)
	aliceJWT := h.CreateEditorJWT(alice.ID, alice.Role, clientIP)
	bobJWT := h.CreateEditorJWT(bob.ID, bob.Role, clientIP)

	author := h.CreateTestAuthor(ctx, "Thandi", "Nkosi")
	topic := h.CreateTestTopic(ctx, "Integration Water")
	article := h.CreateTestArticle(ctx, "Integration dam levels", alice)

	open := func(jwt string) dtos.ArticleEditResponse {
		r := h.BuildAuthRequest(http.MethodGet, withID(routes.ArticleEdit, article.ID), jwt, nil, clientIP)
		resp := h.DoRequest(r, client)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))
		var out dtos.ArticleEditResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		return out
	}
	save := func(jwt string, version int64, title string) *http.Response {
		body, err := json.Marshal(dtos.ArticleRequest{
			Version:   version,
			Title:     title,
			Slug:      article.Slug,
			Author01:  &author.ID,
			MainTopic: topic.Name,
			Body:      "<p>Reservoirs are at 20% capacity.</p>",
			UseEditor: true,
		})
		require.NoError(t, err)
		r := h.BuildAuthRequest(http.MethodPut, withID(routes.ArticleByID, article.ID), jwt, body, clientIP)
		return h.DoRequest(r, client)
	}

	aliceSession := open(aliceJWT)
	bobSession := open(bobJWT)
	require.Equal(t, aliceSession.Article.Version, bobSession.Article.Version)

	t.Run("bob sees alice in recent editors", func(t *testing.T) {
		names := make([]string, 0, len(bobSession.RecentEditors))
		for _, re := range bobSession.RecentEditors {
			names = append(names, re.EditorName)
		}
		assert.Contains(t, names, "Alice Integration")
	})

	t.Run("first save wins", func(t *testing.T) {
		resp := save(bobJWT, bobSession.Article.Version, "Integration dam levels rise")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))

		var saved dtos.ArticleResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&saved))
		assert.Equal(t, bobSession.Article.Version+1, saved.Version)
		assert.Equal(t, "Thandi Nkosi", saved.CachedBylineNoLinks)
		assert.Contains(t, saved.TopicIDs, topic.ID)
	})

	t.Run("stale save is rejected with the current article", func(t *testing.T) {
		resp := save(aliceJWT, aliceSession.Article.Version, "Integration dam levels fall")
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode, h.ReadBody(resp))

		var body struct {
			Code    string         `json:"code"`
			Message string         `json:"message"`
			Details models.Article `json:"details"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, utils.ErrCodeRowVersionConflict, body.Code)
		assert.Contains(t, body.Message, "Bob Integration")
		assert.Equal(t, "Integration dam levels rise", body.Details.Title)
	})

	t.Run("stored row is untouched by the rejected save", func(t *testing.T) {
		stored, err := h.ArticleRepo.GetByID(ctx, article.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, "Integration dam levels rise", stored.Title)
		assert.Equal(t, bobSession.Article.Version+1, stored.Version)
		require.NotNil(t, stored.EditorID)
		assert.Equal(t, bob.ID, *stored.EditorID)
	})

	t.Run("reloaded save succeeds", func(t *testing.T) {
		latest := open(aliceJWT)
		resp := save(aliceJWT, latest.Article.Version, "Integration dam levels fall")
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, h.ReadBody(resp))
	})
}
