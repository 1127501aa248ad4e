package memrepo

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
)

// ----- authors -----

type authorRepo struct{ s *Store }

func (r *authorRepo) Create(_ context.Context, a *models.Author) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := r.s.Now()
	a.CreatedAt, a.UpdatedAt, a.Version = now, now, 1
	r.s.authors[a.ID] = *a
	return nil
}

func (r *authorRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.authors[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *authorRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]*models.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Author
	for _, id := range ids {
		if a, ok := r.s.authors[id]; ok {
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *authorRepo) Search(_ context.Context, search, _ string, limit, offset int) ([]*models.Author, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Author
	for _, a := range r.s.authors {
		hay := strings.ToLower(a.LastName + " " + a.FirstNames)
		if search != "" && !strings.Contains(hay, strings.ToLower(search)) {
			continue
		}
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].LastName != out[j].LastName {
			return out[i].LastName < out[j].LastName
		}
		return out[i].FirstNames < out[j].FirstNames
	})
	total := len(out)
	if offset >= total {
		return []*models.Author{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	return out[offset:end], total, nil
}

func (r *authorRepo) UpdateIfVersion(_ context.Context, a *models.Author, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.authors[a.ID]
	if !ok || stored.Version != expected {
		return tag(0), nil
	}
	next := *a
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = r.s.Now()
	next.Version = expected + 1
	r.s.authors[a.ID] = next
	return tag(1), nil
}

func (r *authorRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.authors[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.authors, id)
	// ON DELETE SET NULL on the article author slots.
	for aid, a := range r.s.articles {
		for _, slot := range []**uuid.UUID{&a.Author01, &a.Author02, &a.Author03, &a.Author04, &a.Author05} {
			if *slot != nil && **slot == id {
				*slot = nil
			}
		}
		r.s.articles[aid] = a
	}
	return nil
}

// ----- editors -----

type editorRepo struct{ s *Store }

func (r *editorRepo) Create(_ context.Context, e *models.Editor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.editors {
		if other.Username == e.Username {
			return uniqueViolation(repositories.ConstraintEditorUsername)
		}
	}
	now := r.s.Now()
	e.CreatedAt, e.UpdatedAt, e.Version = now, now, 1
	r.s.editors[e.ID] = *e
	return nil
}

func (r *editorRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Editor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.editors[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r *editorRepo) GetByUsername(_ context.Context, username string) (*models.Editor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.editors {
		if e.Username == username {
			return &e, nil
		}
	}
	return nil, nil
}

func (r *editorRepo) List(_ context.Context) ([]*models.Editor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Editor
	for _, e := range r.s.editors {
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
