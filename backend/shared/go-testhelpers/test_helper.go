package testhelpers

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"log"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

// TestHelper encapsulates all necessary components for running integration tests across services.
type TestHelper struct {
	T          *testing.T
	Ctx        context.Context
	BaseURL    string
	DB         *pgxpool.Pool
	PrivateKey *rsa.PrivateKey

	// From ldflags
	AppName         string
	UniqueRunNumber string
	UniqueRunnerID  string

	// Repositories
	EditorRepo   repositories.EditorRepository
	ArticleRepo  repositories.ArticleRepository
	AuthorRepo   repositories.AuthorRepository
	TermRepo     repositories.TermRepository
	FlatPageRepo repositories.FlatPageRepository
	UserEditRepo repositories.UserEditRepository
}

// NewTestHelper sets up the testing environment from env vars, connects to the DB
// and initializes repositories. It's designed to be called once per test.
func NewTestHelper(t *testing.T, appName, uniqueRunID, uniqueRunNum string) *TestHelper {
	// 1. Load environment
	baseURL := os.Getenv("APP_URL_FROM_ANYWHERE")
	if baseURL == "" {
		log.Fatal("APP_URL_FROM_ANYWHERE env var is missing")
	}
	dbURL := os.Getenv("DB_URL")
	require.NotEmpty(t, dbURL, "DB_URL not set")

	// 2. Signing key, shared with the service under test
	privateKeyB64 := os.Getenv("RSA_PRIVATE_KEY_BASE64")
	require.NotEmpty(t, privateKeyB64, "RSA_PRIVATE_KEY_BASE64 not set")
	privateKeyPEM, err := base64.StdEncoding.DecodeString(privateKeyB64)
	require.NoError(t, err)
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	require.NoError(t, err)

	// 3. Connect to DB with isolated role
	effectiveURL, err := utils.WithIsolatedRole(dbURL, uniqueRunID, uniqueRunNum)
	require.NoError(t, err)

	ctx := context.Background()
	dbPool, err := pgxpool.Connect(ctx, effectiveURL)
	require.NoError(t, err)
	t.Cleanup(func() { dbPool.Close() })

	// 4. Initialize all repositories and the helper
	return &TestHelper{
		T:               t,
		Ctx:             ctx,
		BaseURL:         baseURL,
		DB:              dbPool,
		PrivateKey:      privateKey,
		AppName:         appName,
		UniqueRunnerID:  uniqueRunID,
		UniqueRunNumber: uniqueRunNum,
		EditorRepo:      repositories.NewEditorRepository(dbPool),
		ArticleRepo:     repositories.NewArticleRepository(dbPool),
		AuthorRepo:      repositories.NewAuthorRepository(dbPool),
		TermRepo:        repositories.NewTermRepository(dbPool),
		FlatPageRepo:    repositories.NewFlatPageRepository(dbPool),
		UserEditRepo:    repositories.NewUserEditRepository(dbPool),
	}
}
