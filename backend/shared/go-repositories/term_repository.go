package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

// TermRepository stores categories, regions and topics. The three share a
// shape and live in one table each.
type TermRepository interface {
	Create(ctx context.Context, t *models.Term) error
	GetByID(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) (*models.Term, error)
	GetByName(ctx context.Context, kind models.TaxonomyKind, name string) (*models.Term, error)
	ListByIDs(ctx context.Context, kind models.TaxonomyKind, ids []uuid.UUID) ([]*models.Term, error)
	List(ctx context.Context, kind models.TaxonomyKind, search string) ([]*models.Term, error)
	UpdateIfVersion(ctx context.Context, t *models.Term, expected int64) (pgconn.CommandTag, error)
	Delete(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) error
}

type termRepo struct {
	db    DB
	bases map[models.TaxonomyKind]*BaseVersionedRepo[*models.Term]
}

func NewTermRepository(db DB) TermRepository {
	r := &termRepo{db: db, bases: map[models.TaxonomyKind]*BaseVersionedRepo[*models.Term]{}}
	for _, kind := range []models.TaxonomyKind{models.KindCategory, models.KindRegion, models.KindTopic} {
		r.bases[kind] = NewBaseRepo(db, termSelect(kind)+" WHERE id=$1", termScanner(kind))
	}
	return r
}

// TermTable maps a taxonomy kind to its table.
func TermTable(kind models.TaxonomyKind) (string, error) {
	switch kind {
	case models.KindCategory:
		return "categories", nil
	case models.KindRegion:
		return "regions", nil
	case models.KindTopic:
		return "topics", nil
	}
	return "", fmt.Errorf("unknown taxonomy kind %q", kind)
}

// TermSlugConstraint is the unique index on the kind's slug column.
func TermSlugConstraint(kind models.TaxonomyKind) string {
	table, _ := TermTable(kind)
	return table + "_slug_key"
}

func (r *termRepo) Create(ctx context.Context, t *models.Term) error {
	table, err := TermTable(t.Kind)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(`
        INSERT INTO %s (id, name, slug, description, created_at, updated_at, version)
        VALUES ($1,$2,$3,$4,NOW(),NOW(),1)
        RETURNING created_at, updated_at, version`, table)
	return r.db.QueryRow(ctx, q, t.ID, t.Name, t.Slug, t.Description).
		Scan(&t.CreatedAt, &t.UpdatedAt, &t.Version)
}

func (r *termRepo) GetByID(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) (*models.Term, error) {
	base, ok := r.bases[kind]
	if !ok {
		return nil, fmt.Errorf("unknown taxonomy kind %q", kind)
	}
	return base.GetByID(ctx, id.String())
}

func (r *termRepo) GetByName(ctx context.Context, kind models.TaxonomyKind, name string) (*models.Term, error) {
	if _, err := TermTable(kind); err != nil {
		return nil, err
	}
	row := r.db.QueryRow(ctx, termSelect(kind)+" WHERE name=$1 ORDER BY created_at LIMIT 1", name)
	return termScanner(kind)(row)
}

func (r *termRepo) ListByIDs(ctx context.Context, kind models.TaxonomyKind, ids []uuid.UUID) ([]*models.Term, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if _, err := TermTable(kind); err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, termSelect(kind)+" WHERE id = ANY($1) ORDER BY name", ids)
	if err != nil {
		return nil, err
	}
	return collectTerms(rows, kind)
}

func (r *termRepo) List(ctx context.Context, kind models.TaxonomyKind, search string) ([]*models.Term, error) {
	if _, err := TermTable(kind); err != nil {
		return nil, err
	}
	var (
		rows pgx.Rows
		err  error
	)
	if search == "" {
		rows, err = r.db.Query(ctx, termSelect(kind)+" ORDER BY name, id")
	} else {
		rows, err = r.db.Query(ctx, termSelect(kind)+" WHERE name ILIKE $1 ORDER BY name, id", "%"+search+"%")
	}
	if err != nil {
		return nil, err
	}
	return collectTerms(rows, kind)
}

func (r *termRepo) UpdateIfVersion(ctx context.Context, t *models.Term, expected int64) (pgconn.CommandTag, error) {
	table, err := TermTable(t.Kind)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
        UPDATE %s SET name=$1, slug=$2, description=$3,
            updated_at=NOW(), version=version+1
        WHERE id=$4 AND version=$5`, table)
	return r.db.Exec(ctx, q, t.Name, t.Slug, t.Description, t.ID, expected)
}

func (r *termRepo) Delete(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) error {
	table, err := TermTable(kind)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, "DELETE FROM "+table+" WHERE id=$1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- helpers ---------- */

func termSelect(kind models.TaxonomyKind) string {
	table, _ := TermTable(kind)
	return `SELECT id, name, slug, description, created_at, updated_at, version FROM ` + table
}

func termScanner(kind models.TaxonomyKind) func(pgx.Row) (*models.Term, error) {
	return func(row pgx.Row) (*models.Term, error) {
		t := &models.Term{Kind: kind}
		err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.CreatedAt, &t.UpdatedAt, &t.Version)
		if err != nil {
			if err == pgx.ErrNoRows {
				return nil, nil
			}
			return nil, err
		}
		return t, nil
	}
}

func collectTerms(rows pgx.Rows, kind models.TaxonomyKind) ([]*models.Term, error) {
	defer rows.Close()
	scan := termScanner(kind)
	var out []*models.Term
	for rows.Next() {
		t, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
