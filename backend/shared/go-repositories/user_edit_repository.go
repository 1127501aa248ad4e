package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

type UserEditRepository interface {
	Create(ctx context.Context, ue *models.UserEdit) error
	// ListRecentForArticle returns the latest edit per editor since the
	// given time, leaving out excludeEditor.
	ListRecentForArticle(ctx context.Context, articleID uuid.UUID, since time.Time, excludeEditor uuid.UUID) ([]*models.UserEdit, error)
	List(ctx context.Context, articleID *uuid.UUID, limit, offset int) ([]*models.UserEdit, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type userEditRepo struct {
	db DB
}

func NewUserEditRepository(db DB) UserEditRepository {
	return &userEditRepo{db: db}
}

func (r *userEditRepo) Create(ctx context.Context, ue *models.UserEdit) error {
	q := `
        INSERT INTO user_edits (id, article_id, editor_id, edit_time)
        VALUES ($1,$2,$3,NOW())
        RETURNING edit_time`
	return r.db.QueryRow(ctx, q, ue.ID, ue.ArticleID, ue.EditorID).Scan(&ue.EditTime)
}

func (r *userEditRepo) ListRecentForArticle(
	ctx context.Context,
	articleID uuid.UUID,
	since time.Time,
	excludeEditor uuid.UUID,
) ([]*models.UserEdit, error) {
	q := `
        SELECT DISTINCT ON (ue.editor_id)
            ue.id, ue.article_id, ue.editor_id,
            COALESCE(NULLIF(e.full_name, ''), e.username, ''), ue.edit_time
        FROM user_edits ue
        LEFT JOIN editors e ON e.id = ue.editor_id
        WHERE ue.article_id=$1 AND ue.edit_time >= $2 AND ue.editor_id <> $3
        ORDER BY ue.editor_id, ue.edit_time DESC`
	rows, err := r.db.Query(ctx, q, articleID, since, excludeEditor)
	if err != nil {
		return nil, err
	}
	return collectUserEdits(rows)
}

func (r *userEditRepo) List(ctx context.Context, articleID *uuid.UUID, limit, offset int) ([]*models.UserEdit, error) {
	q := `
        SELECT ue.id, ue.article_id, ue.editor_id,
               COALESCE(NULLIF(e.full_name, ''), e.username, ''), ue.edit_time
        FROM user_edits ue
        LEFT JOIN editors e ON e.id = ue.editor_id
        WHERE ($1::uuid IS NULL OR ue.article_id = $1)
        ORDER BY ue.edit_time DESC, ue.id
        LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, q, articleID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectUserEdits(rows)
}

func (r *userEditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_edits WHERE edit_time < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func collectUserEdits(rows pgx.Rows) ([]*models.UserEdit, error) {
	defer rows.Close()
	var out []*models.UserEdit
	for rows.Next() {
		var ue models.UserEdit
		if err := rows.Scan(&ue.ID, &ue.ArticleID, &ue.EditorID, &ue.EditorName, &ue.EditTime); err != nil {
			return nil, err
		}
		out = append(out, &ue)
	}
	return out, rows.Err()
}
