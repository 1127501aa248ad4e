package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-testhelpers/memrepo"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu      sync.Mutex
	notices []EditConflictNotice
}

func (r *recordingNotifier) NotifyEditConflict(_ context.Context, n EditConflictNotice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

type fixture struct {
	ctx      context.Context
	store    *memrepo.Store
	notifier *recordingNotifier
	articles *ArticleService
	authors  *AuthorService
	taxonomy *TaxonomyService

	alice, bob *models.Editor
	politics   *models.Term
	water      *models.Term
	news       *models.Term
	author     *models.Author
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memrepo.NewStore()

	sizes, err := internal_utils.LoadImageSizes("")
	require.NoError(t, err)

	f := &fixture{ctx: ctx, store: store, notifier: &recordingNotifier{}}
	f.articles = NewArticleService(
		store.Articles(), store.Terms(), store.Authors(), store.Editors(), store.UserEdits(),
		store.AuditLogs(), NewChoicesService(sizes), f.notifier, time.Hour,
	)
	f.authors = NewAuthorService(store.Authors(), f.articles, store.AuditLogs())
	f.taxonomy = NewTaxonomyService(store.Terms(), store.AuditLogs())

	f.alice = &models.Editor{ID: uuid.New(), Username: "alice", FullName: "Alice Smith", Email: "alice@example.com", Role: utils.EditorRole, IsActive: true}
	f.bob = &models.Editor{ID: uuid.New(), Username: "bob", Email: "bob@example.com", Role: utils.EditorRole, IsActive: true}
	require.NoError(t, store.Editors().Create(ctx, f.alice))
	require.NoError(t, store.Editors().Create(ctx, f.bob))

	f.politics = &models.Term{ID: uuid.New(), Kind: models.KindTopic, Name: "Politics", Slug: "politics"}
	f.water = &models.Term{ID: uuid.New(), Kind: models.KindTopic, Name: "Water", Slug: "water"}
	f.news = &models.Term{ID: uuid.New(), Kind: models.KindCategory, Name: "News", Slug: "news"}
	for _, term := range []*models.Term{f.politics, f.water, f.news} {
		require.NoError(t, store.Terms().Create(ctx, term))
	}

	f.author = &models.Author{ID: uuid.New(), FirstNames: "Thandi", LastName: "Nkosi"}
	require.NoError(t, store.Authors().Create(ctx, f.author))
	return f
}
