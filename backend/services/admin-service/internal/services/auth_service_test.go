package services

import (
	"crypto/rand"
	"crypto/rsa"
	"net/http"
	"testing"
	"time"

	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	go_dtos "github.com/newsroom/mono-repo/backend/shared/go-dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-middleware"
	"github.com/newsroom/mono-repo/backend/shared/go-testhelpers/memrepo"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	svc := NewAuthService(memrepo.NewStore().Editors(), key, time.Hour)
	return svc, key
}

func TestAuthService_LoginIssuesBoundToken(t *testing.T) {
	svc, key := newAuthService(t)
	f := newFixture(t)

	editor, err := svc.CreateEditor(f.ctx, CreateEditorRequest{
		Username: "desk", FullName: "News Desk", Password: "correct horse", Role: utils.EditorRole,
	})
	require.NoError(t, err)

	resp, err := svc.Login(f.ctx, dtos.LoginRequest{Username: "desk", Password: "correct horse"}, "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, editor.ID.String(), resp.Editor.ID)
	assert.Equal(t, int64(3600), resp.ExpiresIn)

	token, err := middleware.ValidateToken(resp.AccessToken, "10.0.0.7", &key.PublicKey)
	require.NoError(t, err)
	assert.True(t, token.Valid)

	_, err = middleware.ValidateToken(resp.AccessToken, "10.0.0.8", &key.PublicKey)
	assert.Error(t, err)
}

func TestAuthService_LoginFailures(t *testing.T) {
	svc, _ := newAuthService(t)
	f := newFixture(t)
	_, err := svc.CreateEditor(f.ctx, CreateEditorRequest{Username: "desk", Password: "correct horse", Role: utils.EditorRole})
	require.NoError(t, err)

	for name, req := range map[string]dtos.LoginRequest{
		"wrong password": {Username: "desk", Password: "battery staple"},
		"unknown user":   {Username: "nobody", Password: "correct horse"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Login(f.ctx, req, "10.0.0.7")
			appErr := requireAppError(t, err, http.StatusUnauthorized)
			assert.Equal(t, utils.ErrCodeInvalidCredentials, appErr.Code)
		})
	}
}

func TestAuthService_CreateEditorDuplicate(t *testing.T) {
	svc, _ := newAuthService(t)
	f := newFixture(t)
	req := CreateEditorRequest{Username: "desk", Password: "correct horse", Role: utils.AdminRole}
	_, err := svc.CreateEditor(f.ctx, req)
	require.NoError(t, err)
	_, err = svc.CreateEditor(f.ctx, req)
	appErr := requireAppError(t, err, http.StatusConflict)
	assert.ErrorIs(t, appErr, utils.ErrDuplicateUsername)
}

func TestAuthService_CreateEditorValidates(t *testing.T) {
	svc, _ := newAuthService(t)
	f := newFixture(t)
	_, err := svc.CreateEditor(f.ctx, CreateEditorRequest{Username: "desk", Password: "short", Role: "owner"})
	appErr := requireAppError(t, err, http.StatusBadRequest)
	details, ok := appErr.Details.([]go_dtos.ValidationErrorDetail)
	require.True(t, ok)
	assert.Len(t, details, 2)
}
