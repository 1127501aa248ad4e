package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

type MostPopularRepository interface {
	Create(ctx context.Context, mp *models.MostPopular) error
	GetLatest(ctx context.Context) (*models.MostPopular, error)
	List(ctx context.Context, limit int) ([]*models.MostPopular, error)
}

type mostPopularRepo struct {
	db DB
}

func NewMostPopularRepository(db DB) MostPopularRepository {
	return &mostPopularRepo{db: db}
}

func (r *mostPopularRepo) Create(ctx context.Context, mp *models.MostPopular) error {
	return r.db.QueryRow(ctx, `
        INSERT INTO most_popular (id, article_list, created_at)
        VALUES ($1,$2,NOW())
        RETURNING created_at`, mp.ID, mp.ArticleList,
	).Scan(&mp.CreatedAt)
}

func (r *mostPopularRepo) GetLatest(ctx context.Context) (*models.MostPopular, error) {
	var mp models.MostPopular
	err := r.db.QueryRow(ctx, `
        SELECT id, article_list, created_at FROM most_popular
        ORDER BY created_at DESC LIMIT 1`,
	).Scan(&mp.ID, &mp.ArticleList, &mp.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &mp, nil
}

func (r *mostPopularRepo) List(ctx context.Context, limit int) ([]*models.MostPopular, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, article_list, created_at FROM most_popular
        ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.MostPopular
	for rows.Next() {
		var mp models.MostPopular
		if err := rows.Scan(&mp.ID, &mp.ArticleList, &mp.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &mp)
	}
	return out, rows.Err()
}
