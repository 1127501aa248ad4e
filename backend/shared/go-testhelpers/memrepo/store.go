// Package memrepo holds in-memory implementations of the repository
// interfaces for unit tests. They honour the versioned-write and
// unique-constraint contracts of the Postgres repositories.
package memrepo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// Store backs every repository with maps guarded by one mutex.
type Store struct {
	mu sync.Mutex

	articles    map[uuid.UUID]models.Article
	terms       map[models.TaxonomyKind]map[uuid.UUID]models.Term
	authors     map[uuid.UUID]models.Author
	flatPages   map[uuid.UUID]models.FlatPage
	editors     map[uuid.UUID]models.Editor
	userEdits   []models.UserEdit
	mostPopular []models.MostPopular
	auditLogs   []models.AuditLog

	// BeforeArticleUpdate runs inside UpdateIfVersion before the version
	// compare, so tests can slip in a racing save.
	BeforeArticleUpdate func(id uuid.UUID)

	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		articles: make(map[uuid.UUID]models.Article),
		terms: map[models.TaxonomyKind]map[uuid.UUID]models.Term{
			models.KindCategory: {},
			models.KindRegion:   {},
			models.KindTopic:    {},
		},
		authors:   make(map[uuid.UUID]models.Author),
		flatPages: make(map[uuid.UUID]models.FlatPage),
		editors:   make(map[uuid.UUID]models.Editor),
		Now:       time.Now,
	}
}

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func tag(n int) pgconn.CommandTag {
	if n == 0 {
		return pgconn.CommandTag("UPDATE 0")
	}
	return pgconn.CommandTag("UPDATE 1")
}

func (s *Store) Articles() repositories.ArticleRepository        { return &articleRepo{s} }
func (s *Store) Terms() repositories.TermRepository              { return &termRepo{s} }
func (s *Store) Authors() repositories.AuthorRepository          { return &authorRepo{s} }
func (s *Store) FlatPages() repositories.FlatPageRepository      { return &flatPageRepo{s} }
func (s *Store) Editors() repositories.EditorRepository          { return &editorRepo{s} }
func (s *Store) UserEdits() repositories.UserEditRepository      { return &userEditRepo{s} }
func (s *Store) MostPopular() repositories.MostPopularRepository { return &mostPopularRepo{s} }
func (s *Store) AuditLogs() repositories.AuditLogRepository      { return &auditLogRepo{s} }

// AuditEntries returns a copy of every audit row written so far.
func (s *Store) AuditEntries() []models.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.AuditLog(nil), s.auditLogs...)
}

// UserEditEntries returns a copy of every user edit row.
func (s *Store) UserEditEntries() []models.UserEdit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.UserEdit(nil), s.userEdits...)
}

// ----- articles -----

type articleRepo struct{ s *Store }

func cloneArticle(a models.Article) *models.Article {
	a.TopicIDs = append([]uuid.UUID(nil), a.TopicIDs...)
	a.Tweets = append([]models.Tweet(nil), a.Tweets...)
	for i := range a.Tweets {
		a.Tweets[i].TagAccounts = append([]string(nil), a.Tweets[i].TagAccounts...)
	}
	a.Republications = append([]models.Republication(nil), a.Republications...)
	return &a
}

func (s *Store) slugTaken(slug string, except uuid.UUID) bool {
	for id, a := range s.articles {
		if id != except && a.Slug == slug {
			return true
		}
	}
	return false
}

func (s *Store) hydrateArticle(a *models.Article) {
	a.EditorName = ""
	if a.EditorID != nil {
		if e, ok := s.editors[*a.EditorID]; ok {
			a.EditorName = e.DisplayName()
		}
	}
	for i := range a.Tweets {
		a.Tweets[i].ArticleID = a.ID
		a.Tweets[i].Position = i
		if a.Tweets[i].ID == uuid.Nil {
			a.Tweets[i].ID = uuid.New()
		}
	}
	for i := range a.Republications {
		a.Republications[i].ArticleID = a.ID
		a.Republications[i].Position = i
		if a.Republications[i].ID == uuid.Nil {
			a.Republications[i].ID = uuid.New()
		}
	}
}

func (r *articleRepo) Create(_ context.Context, a *models.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.slugTaken(a.Slug, a.ID) {
		return uniqueViolation(repositories.ConstraintArticleSlug)
	}
	now := r.s.Now()
	a.CreatedAt, a.UpdatedAt, a.Version = now, now, 1
	r.s.hydrateArticle(a)
	r.s.articles[a.ID] = *cloneArticle(*a)
	return nil
}

func (r *articleRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.articles[id]
	if !ok {
		return nil, nil
	}
	out := cloneArticle(a)
	r.s.hydrateArticle(out)
	return out, nil
}

func (r *articleRepo) Search(_ context.Context, q repositories.ArticleQuery) ([]*models.Article, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var matched []*models.Article
	for _, a := range r.s.articles {
		if !matchesArticle(a, q) {
			continue
		}
		out := cloneArticle(a)
		r.s.hydrateArticle(out)
		matched = append(matched, out)
	}
	sort.Slice(matched, func(i, j int) bool {
		if q.Ordering == "title" {
			return matched[i].Title < matched[j].Title
		}
		return matched[i].UpdatedAt.After(matched[j].UpdatedAt)
	})

	total := len(matched)
	if q.Offset >= total {
		return []*models.Article{}, total, nil
	}
	end := total
	if q.Limit > 0 && q.Offset+q.Limit < total {
		end = q.Offset + q.Limit
	}
	return matched[q.Offset:end], total, nil
}

func matchesArticle(a models.Article, q repositories.ArticleQuery) bool {
	for _, term := range strings.Fields(strings.ToLower(q.Search)) {
		if !strings.Contains(strings.ToLower(a.Title), term) &&
			!strings.Contains(strings.ToLower(a.CachedBylineNoLinks), term) {
			return false
		}
	}
	if q.CategoryID != nil && utils.Val(a.CategoryID) != *q.CategoryID {
		return false
	}
	if q.RegionID != nil && utils.Val(a.RegionID) != *q.RegionID {
		return false
	}
	if q.TopicID != nil {
		found := false
		for _, t := range a.TopicIDs {
			if t == *q.TopicID {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	switch q.Published {
	case repositories.PublishedNoDate:
		return a.Published == nil
	case repositories.PublishedHasDate:
		return a.Published != nil
	}
	return true
}

func (r *articleRepo) UpdateIfVersion(_ context.Context, a *models.Article, expected int64) (pgconn.CommandTag, error) {
	if hook := r.s.BeforeArticleUpdate; hook != nil {
		hook(a.ID)
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.articles[a.ID]
	if !ok || stored.Version != expected {
		return tag(0), nil
	}
	if r.s.slugTaken(a.Slug, a.ID) {
		return nil, uniqueViolation(repositories.ConstraintArticleSlug)
	}
	next := cloneArticle(*a)
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = r.s.Now()
	next.Version = expected + 1
	r.s.hydrateArticle(next)
	r.s.articles[a.ID] = *next
	return tag(1), nil
}

func (r *articleRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.articles[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.articles, id)
	return nil
}

func (r *articleRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Article) error) error {
	get := func(ctx context.Context, id string) (*models.Article, error) {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		return r.GetByID(ctx, parsed)
	}
	return repositories.WithRetry(ctx, 5, id.String(), get, r.UpdateIfVersion, mutate)
}

func (r *articleRepo) ListIDsByAuthor(_ context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ids []uuid.UUID
	for id, a := range r.s.articles {
		for _, aid := range a.AuthorIDs() {
			if aid == authorID {
				ids = append(ids, id)
				break
			}
		}
	}
	return ids, nil
}
