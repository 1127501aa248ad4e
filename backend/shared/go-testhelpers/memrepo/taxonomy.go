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

type termRepo struct{ s *Store }

func (r *termRepo) Create(_ context.Context, t *models.Term) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.terms[t.Kind] {
		if other.Slug == t.Slug {
			return uniqueViolation(repositories.TermSlugConstraint(t.Kind))
		}
	}
	now := r.s.Now()
	t.CreatedAt, t.UpdatedAt, t.Version = now, now, 1
	r.s.terms[t.Kind][t.ID] = *t
	return nil
}

func (r *termRepo) GetByID(_ context.Context, kind models.TaxonomyKind, id uuid.UUID) (*models.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.terms[kind][id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *termRepo) GetByName(_ context.Context, kind models.TaxonomyKind, name string) (*models.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.terms[kind] {
		if t.Name == name {
			return &t, nil
		}
	}
	return nil, nil
}

func (r *termRepo) ListByIDs(_ context.Context, kind models.TaxonomyKind, ids []uuid.UUID) ([]*models.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Term
	for _, id := range ids {
		if t, ok := r.s.terms[kind][id]; ok {
			out = append(out, &t)
		}
	}
	return out, nil
}

func (r *termRepo) List(_ context.Context, kind models.TaxonomyKind, search string) ([]*models.Term, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.Term
	for _, t := range r.s.terms[kind] {
		if search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(search)) {
			continue
		}
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *termRepo) UpdateIfVersion(_ context.Context, t *models.Term, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.terms[t.Kind][t.ID]
	if !ok || stored.Version != expected {
		return tag(0), nil
	}
	for id, other := range r.s.terms[t.Kind] {
		if id != t.ID && other.Slug == t.Slug {
			return nil, uniqueViolation(repositories.TermSlugConstraint(t.Kind))
		}
	}
	next := *t
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = r.s.Now()
	next.Version = expected + 1
	r.s.terms[t.Kind][t.ID] = next
	return tag(1), nil
}

func (r *termRepo) Delete(_ context.Context, kind models.TaxonomyKind, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.terms[kind][id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.terms[kind], id)
	return nil
}
