package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIP = "203.0.113.7"

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func protectedHandler(t *testing.T, mw func(http.Handler) http.Handler) http.Handler {
	t.Helper()
	return mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := EditorIDFromContext(r.Context())
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{
			"id":   id,
			"role": EditorRoleFromContext(r.Context()),
		})
	}))
}

func doRequest(h http.Handler, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/articles", nil)
	req.RemoteAddr = testIP + ":51234"
	if mutate != nil {
		mutate(req)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errorCode(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body.Code
}

func TestEditorAuthMiddleware_CookieToken(t *testing.T) {
	key := newKey(t)
	tok, err := IssueAccessToken(key, "ed-1", utils.EditorRole, testIP, time.Hour, time.Now())
	require.NoError(t, err)

	rr := doRequest(protectedHandler(t, EditorAuthMiddleware(&key.PublicKey)), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: AccessTokenCookieName, Value: tok})
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "ed-1", got["id"])
	assert.Equal(t, utils.EditorRole, got["role"])
}

func TestEditorAuthMiddleware_BearerToken(t *testing.T) {
	key := newKey(t)
	tok, err := IssueAccessToken(key, "ed-2", utils.AdminRole, testIP, time.Hour, time.Now())
	require.NoError(t, err)

	rr := doRequest(protectedHandler(t, EditorAuthMiddleware(&key.PublicKey)), func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok)
	})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestEditorAuthMiddleware_Rejections(t *testing.T) {
	key := newKey(t)
	other := newKey(t)

	expired, err := IssueAccessToken(key, "ed", utils.EditorRole, testIP, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	wrongIP, err := IssueAccessToken(key, "ed", utils.EditorRole, "198.51.100.1", time.Hour, time.Now())
	require.NoError(t, err)
	wrongKey, err := IssueAccessToken(other, "ed", utils.EditorRole, testIP, time.Hour, time.Now())
	require.NoError(t, err)
	reader, err := IssueAccessToken(key, "ed", "reader", testIP, time.Hour, time.Now())
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		status int
		code   string
	}{
		{"missing", "", http.StatusUnauthorized, utils.ErrCodeUnauthorized},
		{"expired", expired, http.StatusUnauthorized, utils.ErrCodeTokenExpired},
		{"ip mismatch", wrongIP, http.StatusUnauthorized, utils.ErrCodeUnauthorized},
		{"foreign key", wrongKey, http.StatusUnauthorized, utils.ErrCodeUnauthorized},
		{"unknown role", reader, http.StatusForbidden, utils.ErrCodeForbidden},
	}
	h := protectedHandler(t, EditorAuthMiddleware(&key.PublicKey))
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(h, func(r *http.Request) {
				if tc.token != "" {
					r.Header.Set("Authorization", "Bearer "+tc.token)
				}
			})
			assert.Equal(t, tc.status, rr.Code)
			assert.Equal(t, tc.code, errorCode(t, rr))
		})
	}
}

func TestAdminOnly(t *testing.T) {
	key := newKey(t)
	h := EditorAuthMiddleware(&key.PublicKey)(AdminOnly(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	editorTok, err := IssueAccessToken(key, "ed", utils.EditorRole, testIP, time.Hour, time.Now())
	require.NoError(t, err)
	adminTok, err := IssueAccessToken(key, "ad", utils.AdminRole, testIP, time.Hour, time.Now())
	require.NoError(t, err)

	rr := doRequest(h, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+editorTok) })
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(h, func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+adminTok) })
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestOptionalAuthMiddleware(t *testing.T) {
	key := newKey(t)
	h := protectedHandler(t, OptionalAuthMiddleware(&key.PublicKey))

	valid, err := IssueAccessToken(key, "ed-3", utils.EditorRole, testIP, time.Hour, time.Now())
	require.NoError(t, err)
	expired, err := IssueAccessToken(key, "ed-3", utils.EditorRole, testIP, time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		wantID string
	}{
		{"anonymous", "", ""},
		{"valid", valid, "ed-3"},
		{"expired", expired, ""},
		{"garbage", "garbage", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(h, func(r *http.Request) {
				if tc.token != "" {
					r.AddCookie(&http.Cookie{Name: AccessTokenCookieName, Value: tc.token})
				}
			})
			require.Equal(t, http.StatusOK, rr.Code)
			var got map[string]string
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tc.wantID, got["id"])
		})
	}
}
