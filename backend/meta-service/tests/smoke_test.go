//go:build dev_test || staging_test

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/newsroom/mono-repo/backend/shared/go-seeding"
	"github.com/stretchr/testify/require"
)

type smokeArticle struct {
	ID      string `json:"id"`
	Version int64  `json:"version"`
	Title   string `json:"title"`
}

type smokeClient struct {
	t      *testing.T
	base   string
	token  string
	client *http.Client
}

// TestSmokeEditorFlow logs in as the seeded editor, edits an article twice
// and checks that a stale save is refused.
func TestSmokeEditorFlow(t *testing.T) {
	appURL := os.Getenv("APP_URL_FROM_COMPOSE_NETWORK")
	require.NotEmpty(t, appURL, "APP_URL_FROM_COMPOSE_NETWORK environment variable must be set")

	c := &smokeClient{t: t, base: appURL, client: &http.Client{Timeout: 10 * time.Second}}

	// 1) Service is up
	status, _ := c.call(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, status, "health check failed")

	// 2) Unauthenticated requests bounce
	status, _ = c.call(http.MethodGet, "/api/v1/admin/auth/me", nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// 3) Login => access token. The cookie is Secure, so use the bearer form here.
	status, body := c.call(http.MethodPost, "/api/v1/admin/auth/login", map[string]string{
		"username": seeding.DefaultEditorUsername,
		"password": seeding.DefaultEditorPassword,
	})
	require.Equal(t, http.StatusOK, status, "login: %s", body)
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.AccessToken)
	c.token = login.AccessToken

	status, body = c.call(http.MethodGet, "/api/v1/admin/auth/me", nil)
	require.Equal(t, http.StatusOK, status, "me: %s", body)
	t.Log("[INFO] Seeded editor logged in.")

	// 4) Create an article
	title := fmt.Sprintf("Smoke test %d", rand.Intn(1e9))
	status, body = c.call(http.MethodPost, "/api/v1/admin/articles", map[string]any{
		"title":      title,
		"byline":     "Smoke Desk",
		"main_topic": "(None)",
	})
	require.Equal(t, http.StatusCreated, status, "create: %s", body)
	var created smokeArticle
	require.NoError(t, json.Unmarshal(body, &created))
	path := "/api/v1/admin/articles/" + created.ID

	// 5) Open for edit, then save the version we were handed
	status, body = c.call(http.MethodGet, path+"/edit", nil)
	require.Equal(t, http.StatusOK, status, "edit: %s", body)
	var session struct {
		Article smokeArticle `json:"article"`
	}
	require.NoError(t, json.Unmarshal(body, &session))

	status, body = c.call(http.MethodPut, path, map[string]any{
		"version": session.Article.Version,
		"title":   title + " (updated)",
		"byline":  "Smoke Desk",
	})
	require.Equal(t, http.StatusOK, status, "save: %s", body)

	// 6) Saving the same version again is stale
	status, body = c.call(http.MethodPut, path, map[string]any{
		"version": session.Article.Version,
		"title":   title + " (stale)",
		"byline":  "Smoke Desk",
	})
	require.Equal(t, http.StatusConflict, status, "stale save: %s", body)
	t.Log("[INFO] Stale save rejected as expected.")

	// 7) Cleanup + logout
	status, _ = c.call(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = c.call(http.MethodGet, path, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, _ = c.call(http.MethodPost, "/api/v1/admin/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
}

func (c *smokeClient) call(method, path string, payload any) (int, []byte) {
	c.t.Helper()
	var reader io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp.StatusCode, body
}
