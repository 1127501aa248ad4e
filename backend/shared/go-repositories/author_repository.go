package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

type AuthorRepository interface {
	Create(ctx context.Context, a *models.Author) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Author, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Author, error)
	Search(ctx context.Context, search, ordering string, limit, offset int) ([]*models.Author, int, error)
	UpdateIfVersion(ctx context.Context, a *models.Author, expected int64) (pgconn.CommandTag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// DefaultAuthorOrdering sorts by surname.
const DefaultAuthorOrdering = "last_name,first_names"

var authorOrderColumns = map[string]string{
	"last_name":   "last_name",
	"first_names": "first_names",
	"email":       "email",
	"created":     "created_at",
	"modified":    "updated_at",
}

type authorRepo struct {
	*BaseVersionedRepo[*models.Author]
	db DB
}

func NewAuthorRepository(db DB) AuthorRepository {
	r := &authorRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectAuthor()+" WHERE id=$1", scanAuthor)
	return r
}

func (r *authorRepo) Create(ctx context.Context, a *models.Author) error {
	q := `
        INSERT INTO authors (
            id, title, first_names, last_name, email, telephone, cell, description,
            created_at, updated_at, version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW(),1)
        RETURNING created_at, updated_at, version`
	return r.db.QueryRow(ctx, q,
		a.ID, a.Title, a.FirstNames, a.LastName, a.Email, a.Telephone, a.Cell, a.Description,
	).Scan(&a.CreatedAt, &a.UpdatedAt, &a.Version)
}

func (r *authorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *authorRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.Author, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, baseSelectAuthor()+" WHERE id = ANY($1)", ids)
	if err != nil {
		return nil, err
	}
	return collectAuthors(rows)
}

func (r *authorRepo) Search(ctx context.Context, search, ordering string, limit, offset int) ([]*models.Author, int, error) {
	var qa queryArgs
	for _, term := range strings.Fields(search) {
		like := "%" + term + "%"
		qa.add("(last_name ILIKE ? OR first_names ILIKE ?)", like, like)
	}
	if ordering == "" {
		ordering = DefaultAuthorOrdering
	}
	orderBy, err := orderClause(ordering, authorOrderColumns, "id")
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM authors"+qa.where(), qa.args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	idx := len(qa.args) + 1
	sql := baseSelectAuthor() + qa.where() + orderBy + fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
	rows, err := r.db.Query(ctx, sql, append(qa.args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	out, err := collectAuthors(rows)
	return out, total, err
}

func (r *authorRepo) UpdateIfVersion(ctx context.Context, a *models.Author, expected int64) (pgconn.CommandTag, error) {
	q := `
        UPDATE authors SET
            title=$1, first_names=$2, last_name=$3, email=$4,
            telephone=$5, cell=$6, description=$7,
            updated_at=NOW(), version=version+1
        WHERE id=$8 AND version=$9`
	return r.db.Exec(ctx, q,
		a.Title, a.FirstNames, a.LastName, a.Email, a.Telephone, a.Cell, a.Description,
		a.ID, expected,
	)
}

func (r *authorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectAuthor() string {
	return `
        SELECT id, title, first_names, last_name, email, telephone, cell, description,
               created_at, updated_at, version
        FROM authors`
}

func scanAuthor(row pgx.Row) (*models.Author, error) {
	var a models.Author
	err := row.Scan(
		&a.ID, &a.Title, &a.FirstNames, &a.LastName, &a.Email, &a.Telephone, &a.Cell, &a.Description,
		&a.CreatedAt, &a.UpdatedAt, &a.Version,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func collectAuthors(rows pgx.Rows) ([]*models.Author, error) {
	defer rows.Close()
	var out []*models.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
