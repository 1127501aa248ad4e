package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

type FlatPageRepository interface {
	Create(ctx context.Context, p *models.FlatPage) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.FlatPage, error)
	List(ctx context.Context, search string) ([]*models.FlatPage, error)
	UpdateIfVersion(ctx context.Context, p *models.FlatPage, expected int64) (pgconn.CommandTag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConstraintFlatPageURL is the unique index on flat_pages.url.
const ConstraintFlatPageURL = "flat_pages_url_key"

type flatPageRepo struct {
	*BaseVersionedRepo[*models.FlatPage]
	db DB
}

func NewFlatPageRepository(db DB) FlatPageRepository {
	r := &flatPageRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectFlatPage()+" WHERE id=$1", scanFlatPage)
	return r
}

func (r *flatPageRepo) Create(ctx context.Context, p *models.FlatPage) error {
	if p.Sites == nil {
		p.Sites = []string{}
	}
	q := `
        INSERT INTO flat_pages (
            id, url, title, content, sites, enable_comments,
            registration_required, template_name, created_at, updated_at, version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW(),1)
        RETURNING created_at, updated_at, version`
	return r.db.QueryRow(ctx, q,
		p.ID, p.URL, p.Title, p.Content, p.Sites, p.EnableComments,
		p.RegistrationRequired, p.TemplateName,
	).Scan(&p.CreatedAt, &p.UpdatedAt, &p.Version)
}

func (r *flatPageRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.FlatPage, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *flatPageRepo) List(ctx context.Context, search string) ([]*models.FlatPage, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if search == "" {
		rows, err = r.db.Query(ctx, baseSelectFlatPage()+" ORDER BY url")
	} else {
		like := "%" + search + "%"
		rows, err = r.db.Query(ctx, baseSelectFlatPage()+" WHERE url ILIKE $1 OR title ILIKE $1 ORDER BY url", like)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.FlatPage
	for rows.Next() {
		p, err := scanFlatPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *flatPageRepo) UpdateIfVersion(ctx context.Context, p *models.FlatPage, expected int64) (pgconn.CommandTag, error) {
	if p.Sites == nil {
		p.Sites = []string{}
	}
	q := `
        UPDATE flat_pages SET
            url=$1, title=$2, content=$3, sites=$4, enable_comments=$5,
            registration_required=$6, template_name=$7,
            updated_at=NOW(), version=version+1
        WHERE id=$8 AND version=$9`
	return r.db.Exec(ctx, q,
		p.URL, p.Title, p.Content, p.Sites, p.EnableComments,
		p.RegistrationRequired, p.TemplateName,
		p.ID, expected,
	)
}

func (r *flatPageRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM flat_pages WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectFlatPage() string {
	return `
        SELECT id, url, title, content, sites, enable_comments,
               registration_required, template_name, created_at, updated_at, version
        FROM flat_pages`
}

func scanFlatPage(row pgx.Row) (*models.FlatPage, error) {
	var p models.FlatPage
	var sites pgtype.TextArray
	err := row.Scan(
		&p.ID, &p.URL, &p.Title, &p.Content, &sites, &p.EnableComments,
		&p.RegistrationRequired, &p.TemplateName, &p.CreatedAt, &p.UpdatedAt, &p.Version,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := sites.AssignTo(&p.Sites); err != nil {
		return nil, err
	}
	if p.Sites == nil {
		p.Sites = []string{}
	}
	return &p, nil
}
