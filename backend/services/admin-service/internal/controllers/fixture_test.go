package controllers

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/admin"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/config"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/services"
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	"github.com/newsroom/mono-repo/backend/shared/go-middleware"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-testhelpers/memrepo"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

// httptest.NewRequest always uses this remote address.
const testClientIP = "192.0.2.1"

const testPassword = "correct-horse-battery"

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fixture struct {
	store  *memrepo.Store
	key    *rsa.PrivateKey
	router *mux.Router

	alice, bob, root *models.Editor
	politics         *models.Term
	author           *models.Author
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithDB(t, fakePinger{})
}

func newFixtureWithDB(t *testing.T, db Pinger) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memrepo.NewStore()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	cfg := &config.Config{
		AppName:                 "admin-service",
		TokenExpiry:             time.Hour,
		UserEditRetention:       72 * time.Hour,
		RecentEditorsWindow:     time.Hour,
		RSAPrivateKey:           key,
		RSAPublicKey:            &key.PublicKey,
		LDFlag_CORSHighSecurity: true,
	}

	sizes, err := internal_utils.LoadImageSizes("")
	require.NoError(t, err)
	choices := services.NewChoicesService(sizes)
	site, err := admin.NewNewsroomSite()
	require.NoError(t, err)

	articleService := services.NewArticleService(
		store.Articles(), store.Terms(), store.Authors(), store.Editors(), store.UserEdits(),
		store.AuditLogs(), choices, nil, cfg.RecentEditorsWindow,
	)
	userEditService := services.NewUserEditService(store.UserEdits(), cfg.UserEditRetention)
	authService := services.NewAuthService(store.Editors(), cfg.RSAPrivateKey, cfg.TokenExpiry)

	handlers := Handlers{
		Health:    NewHealthController(db),
		Auth:      NewAuthController(authService, cfg),
		Registry:  NewRegistryController(site, choices),
		Articles:  NewArticleController(articleService, userEditService),
		Authors:   NewAuthorController(services.NewAuthorService(store.Authors(), articleService, store.AuditLogs())),
		Taxonomy:  NewTaxonomyController(services.NewTaxonomyService(store.Terms(), store.AuditLogs())),
		FlatPages: NewFlatPageController(services.NewFlatPageService(store.FlatPages(), store.AuditLogs())),
		Records: NewRecordsController(
			userEditService,
			services.NewMostPopularService(store.MostPopular(), store.AuditLogs()),
		),
	}

	f := &fixture{store: store, key: key, router: NewRouter(handlers, cfg.RSAPublicKey)}

	hash, err := utils.HashPassword(testPassword)
	require.NoError(t, err)
	f.alice = &models.Editor{ID: uuid.New(), Username: "alice", FullName: "Alice Smith", PasswordHash: hash, Role: utils.EditorRole, IsActive: true}
	f.bob = &models.Editor{ID: uuid.New(), Username: "bob", FullName: "Bob Dlamini", PasswordHash: hash, Role: utils.EditorRole, IsActive: true}
	f.root = &models.Editor{ID: uuid.New(), Username: "root", PasswordHash: hash, Role: utils.AdminRole, IsActive: true}
	for _, e := range []*models.Editor{f.alice, f.bob, f.root} {
		require.NoError(t, store.Editors().Create(ctx, e))
	}

	f.politics = &models.Term{ID: uuid.New(), Kind: models.KindTopic, Name: "Politics", Slug: "politics"}
	require.NoError(t, store.Terms().Create(ctx, f.politics))
	f.author = &models.Author{ID: uuid.New(), FirstNames: "Thandi", LastName: "Nkosi"}
	require.NoError(t, store.Authors().Create(ctx, f.author))
	return f
}

func (f *fixture) token(t *testing.T, e *models.Editor) string {
	t.Helper()
	tok, err := middleware.IssueAccessToken(f.key, e.ID.String(), e.Role, testClientIP, time.Hour, time.Now())
	require.NoError(t, err)
	return tok
}

// do sends body as JSON; as may be nil for an anonymous request.
func (f *fixture) do(t *testing.T, as *models.Editor, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if as != nil {
		req.Header.Set("Authorization", "Bearer "+f.token(t, as))
	}
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

// errorBody mirrors utils.ErrorResponse with raw details.
type errorBody struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Details json.RawMessage `json:"details"`
}

var errDBDown = errors.New("connection refused")
