package memrepo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
)

// ----- flat pages -----

type flatPageRepo struct{ s *Store }

func (r *flatPageRepo) urlTaken(url string, except uuid.UUID) bool {
	for id, p := range r.s.flatPages {
		if id != except && p.URL == url {
			return true
		}
	}
	return false
}

func (r *flatPageRepo) Create(_ context.Context, p *models.FlatPage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.urlTaken(p.URL, p.ID) {
		return uniqueViolation(repositories.ConstraintFlatPageURL)
	}
	now := r.s.Now()
	p.CreatedAt, p.UpdatedAt, p.Version = now, now, 1
	r.s.flatPages[p.ID] = *p
	return nil
}

func (r *flatPageRepo) GetByID(_ context.Context, id uuid.UUID) (*models.FlatPage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.flatPages[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *flatPageRepo) List(_ context.Context, search string) ([]*models.FlatPage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.FlatPage
	for _, p := range r.s.flatPages {
		if search != "" && !strings.Contains(strings.ToLower(p.URL+" "+p.Title), strings.ToLower(search)) {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out, nil
}

func (r *flatPageRepo) UpdateIfVersion(_ context.Context, p *models.FlatPage, expected int64) (pgconn.CommandTag, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.flatPages[p.ID]
	if !ok || stored.Version != expected {
		return tag(0), nil
	}
	if r.urlTaken(p.URL, p.ID) {
		return nil, uniqueViolation(repositories.ConstraintFlatPageURL)
	}
	next := *p
	next.CreatedAt = stored.CreatedAt
	next.UpdatedAt = r.s.Now()
	next.Version = expected + 1
	r.s.flatPages[p.ID] = next
	return tag(1), nil
}

func (r *flatPageRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.flatPages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.s.flatPages, id)
	return nil
}

// ----- user edits -----

type userEditRepo struct{ s *Store }

func (r *userEditRepo) Create(_ context.Context, ue *models.UserEdit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ue.EditTime = r.s.Now()
	if e, ok := r.s.editors[ue.EditorID]; ok {
		ue.EditorName = e.DisplayName()
	}
	r.s.userEdits = append(r.s.userEdits, *ue)
	return nil
}

func (r *userEditRepo) ListRecentForArticle(_ context.Context, articleID uuid.UUID, since time.Time, excludeEditor uuid.UUID) ([]*models.UserEdit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	latest := make(map[uuid.UUID]models.UserEdit)
	for _, ue := range r.s.userEdits {
		if ue.ArticleID != articleID || ue.EditorID == excludeEditor || ue.EditTime.Before(since) {
			continue
		}
		if prev, ok := latest[ue.EditorID]; !ok || ue.EditTime.After(prev.EditTime) {
			latest[ue.EditorID] = ue
		}
	}
	out := make([]*models.UserEdit, 0, len(latest))
	for _, ue := range latest {
		out = append(out, &ue)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EditTime.After(out[j].EditTime) })
	return out, nil
}

func (r *userEditRepo) List(_ context.Context, articleID *uuid.UUID, limit, offset int) ([]*models.UserEdit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.UserEdit
	for i := len(r.s.userEdits) - 1; i >= 0; i-- {
		ue := r.s.userEdits[i]
		if articleID != nil && ue.ArticleID != *articleID {
			continue
		}
		out = append(out, &ue)
	}
	if offset >= len(out) {
		return []*models.UserEdit{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *userEditRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.userEdits[:0]
	var removed int64
	for _, ue := range r.s.userEdits {
		if ue.EditTime.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, ue)
	}
	r.s.userEdits = kept
	return removed, nil
}

// ----- most popular -----

type mostPopularRepo struct{ s *Store }

func (r *mostPopularRepo) Create(_ context.Context, mp *models.MostPopular) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	mp.CreatedAt = r.s.Now()
	r.s.mostPopular = append(r.s.mostPopular, *mp)
	return nil
}

func (r *mostPopularRepo) GetLatest(_ context.Context) (*models.MostPopular, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if len(r.s.mostPopular) == 0 {
		return nil, nil
	}
	mp := r.s.mostPopular[len(r.s.mostPopular)-1]
	return &mp, nil
}

func (r *mostPopularRepo) List(_ context.Context, limit int) ([]*models.MostPopular, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.MostPopular
	for i := len(r.s.mostPopular) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		mp := r.s.mostPopular[i]
		out = append(out, &mp)
	}
	return out, nil
}

// ----- audit logs -----

type auditLogRepo struct{ s *Store }

func (r *auditLogRepo) Create(_ context.Context, entry *models.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	entry.CreatedAt = r.s.Now()
	r.s.auditLogs = append(r.s.auditLogs, *entry)
	return nil
}

func (r *auditLogRepo) ListForTarget(_ context.Context, targetID uuid.UUID) ([]*models.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*models.AuditLog
	for _, l := range r.s.auditLogs {
		if l.TargetID == targetID {
			out = append(out, &l)
		}
	}
	return out, nil
}
