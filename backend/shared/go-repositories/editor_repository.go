package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

type EditorRepository interface {
	Create(ctx context.Context, e *models.Editor) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Editor, error)
	GetByUsername(ctx context.Context, username string) (*models.Editor, error)
	List(ctx context.Context) ([]*models.Editor, error)
}

// ConstraintEditorUsername is the unique index on editors.username.
const ConstraintEditorUsername = "editors_username_key"

type editorRepo struct {
	*BaseVersionedRepo[*models.Editor]
	db DB
}

func NewEditorRepository(db DB) EditorRepository {
	r := &editorRepo{db: db}
	r.BaseVersionedRepo = NewBaseRepo(db, baseSelectEditor()+" WHERE id=$1", scanEditor)
	return r
}

func (r *editorRepo) Create(ctx context.Context, e *models.Editor) error {
	q := `
        INSERT INTO editors (
            id, username, full_name, email, password_hash, role, is_active,
            created_at, updated_at, version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,NOW(),NOW(),1)
        RETURNING created_at, updated_at, version`
	return r.db.QueryRow(ctx, q,
		e.ID, e.Username, e.FullName, e.Email, e.PasswordHash, e.Role, e.IsActive,
	).Scan(&e.CreatedAt, &e.UpdatedAt, &e.Version)
}

func (r *editorRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Editor, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *editorRepo) GetByUsername(ctx context.Context, username string) (*models.Editor, error) {
	row := r.db.QueryRow(ctx, baseSelectEditor()+" WHERE username=$1", username)
	return scanEditor(row)
}

func (r *editorRepo) List(ctx context.Context) ([]*models.Editor, error) {
	rows, err := r.db.Query(ctx, baseSelectEditor()+" ORDER BY username")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Editor
	for rows.Next() {
		e, err := scanEditor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func baseSelectEditor() string {
	return `
        SELECT id, username, full_name, email, password_hash, role, is_active,
               created_at, updated_at, version
        FROM editors`
}

func scanEditor(row pgx.Row) (*models.Editor, error) {
	var e models.Editor
	err := row.Scan(
		&e.ID, &e.Username, &e.FullName, &e.Email, &e.PasswordHash, &e.Role, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt, &e.Version,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
