package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type ArticleRepository interface {
	Create(ctx context.Context, a *models.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	Search(ctx context.Context, q ArticleQuery) ([]*models.Article, int, error)

	// UpdateIfVersion writes the article and its inline rows only when the
	// stored version still equals expected, bumping it by one. Zero rows
	// affected means another save got there first.
	UpdateIfVersion(ctx context.Context, a *models.Article, expected int64) (pgconn.CommandTag, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// UpdateWithRetry re-applies mutate on the latest row until the
	// versioned write lands. Only for server-side recomputation.
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Article) error) error
	ListIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error)
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type articleRepo struct {
	*BaseVersionedRepo[*models.Article]
	db DB
}

// errStaleVersion rolls back the inline rewrite when the CAS missed.
var errStaleVersion = errors.New("stale article version")

// ConstraintArticleSlug is the unique index on articles.slug.
const ConstraintArticleSlug = "articles_slug_key"

func NewArticleRepository(db DB) ArticleRepository {
	r := &articleRepo{db: db}
	selectStmt := baseSelectArticle() + " WHERE a.id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanArticle)
	return r
}

var articleWritableColumns = []string{
	"title", "subtitle", "slug",
	"author_01", "author_02", "author_03", "author_04", "author_05",
	"byline", "cached_byline_no_links",
	"primary_image", "primary_image_size", "primary_image_caption", "primary_image_alt", "external_primary_image",
	"body", "use_editor",
	"category_id", "main_topic_id", "region_id", "published",
	"summary_image", "summary_image_size", "summary_image_alt", "summary_text", "cached_summary_text", "summary_template",
	"copyright", "include_in_rss", "comments_on", "stickiness", "exclude_from_list_views", "recommended", "template", "disqus_id",
	"facebook_wait_time", "facebook_image", "facebook_image_caption", "facebook_description", "facebook_message", "facebook_send_status",
	"editor_id",
}

// articleValues must stay in articleWritableColumns order.
func articleValues(a *models.Article) []any {
	return []any{
		a.Title, a.Subtitle, a.Slug,
		a.Author01, a.Author02, a.Author03, a.Author04, a.Author05,
		a.Byline, a.CachedBylineNoLinks,
		a.PrimaryImage, a.PrimaryImageSize, a.PrimaryImageCaption, a.PrimaryImageAlt, a.ExternalPrimaryImage,
		a.Body, a.UseEditor,
		a.CategoryID, a.MainTopicID, a.RegionID, a.Published,
		a.SummaryImage, a.SummaryImageSize, a.SummaryImageAlt, a.SummaryText, a.CachedSummaryText, a.SummaryTemplate,
		a.Copyright, a.IncludeInRSS, a.CommentsOn, a.Stickiness, a.ExcludeFromListViews, a.Recommended, a.Template, a.DisqusID,
		a.FacebookWaitTime, a.FacebookImage, a.FacebookImageCaption, a.FacebookDescription, a.FacebookMessage, a.FacebookSendStatus,
		a.EditorID,
	}
}

func (r *articleRepo) Create(ctx context.Context, a *models.Article) error {
	placeholders := make([]string, 0, len(articleWritableColumns)+1)
	for i := range len(articleWritableColumns) + 1 {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+1))
	}
	sql := fmt.Sprintf(`
        INSERT INTO articles (id, %s, created_at, updated_at, version)
        VALUES (%s, NOW(), NOW(), 1)
        RETURNING created_at, updated_at, version`,
		strings.Join(articleWritableColumns, ", "),
		strings.Join(placeholders, ","),
	)
	args := append([]any{a.ID}, articleValues(a)...)

	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, sql, args...).Scan(&a.CreatedAt, &a.UpdatedAt, &a.Version); err != nil {
			return err
		}
		return replaceArticleChildren(ctx, tx, a)
	})
}

func (r *articleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	a, err := r.BaseVersionedRepo.GetByID(ctx, id.String())
	if err != nil || a == nil {
		return a, err
	}
	if err := loadArticleChildren(ctx, r.db, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (r *articleRepo) UpdateIfVersion(ctx context.Context, a *models.Article, expected int64) (pgconn.CommandTag, error) {
	sets := make([]string, 0, len(articleWritableColumns))
	for i, col := range articleWritableColumns {
		sets = append(sets, fmt.Sprintf("%s=$%d", col, i+1))
	}
	n := len(articleWritableColumns)
	sql := fmt.Sprintf(`
        UPDATE articles SET %s, updated_at=NOW(), version=version+1
        WHERE id=$%d AND version=$%d`,
		strings.Join(sets, ", "), n+1, n+2,
	)
	args := append(articleValues(a), a.ID, expected)

	var tag pgconn.CommandTag
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		var err error
		tag, err = tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		if tag.RowsAffected() != 1 {
			return errStaleVersion
		}
		return replaceArticleChildren(ctx, tx, a)
	})
	if errors.Is(err, errStaleVersion) {
		return tag, nil
	}
	return tag, err
}

func (r *articleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM articles WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *articleRepo) Search(ctx context.Context, q ArticleQuery) ([]*models.Article, int, error) {
	where, args, err := q.where()
	if err != nil {
		return nil, 0, err
	}
	orderBy, err := q.orderBy()
	if err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT count(*) FROM articles a"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	idx := len(args) + 1
	sql := baseSelectArticle() + where + orderBy + fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, q.Limit, q.Offset)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*models.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func (r *articleRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Article) error) error {
	// The getter must hydrate inline rows, since the update rewrites them.
	getFull := func(ctx context.Context, id string) (*models.Article, error) {
		uid, err := uuid.Parse(id)
		if err != nil {
			return nil, err
		}
		return r.GetByID(ctx, uid)
	}
	return WithRetry(ctx, defaultMaxRetries, id.String(), getFull, r.UpdateIfVersion, mutate)
}

func (r *articleRepo) ListIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id FROM articles
        WHERE $1 IN (author_01, author_02, author_03, author_04, author_05)`, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

/* ---------- inline rows ---------- */

func loadArticleChildren(ctx context.Context, db DB, a *models.Article) error {
	rows, err := db.Query(ctx, `SELECT topic_id FROM article_topics WHERE article_id=$1 ORDER BY position`, a.ID)
	if err != nil {
		return err
	}
	a.TopicIDs = []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		a.TopicIDs = append(a.TopicIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = db.Query(ctx, `
        SELECT id, article_id, wait_time, status, tweet_text, tag_accounts, position
        FROM article_tweets WHERE article_id=$1 ORDER BY position`, a.ID)
	if err != nil {
		return err
	}
	a.Tweets = []models.Tweet{}
	for rows.Next() {
		var t models.Tweet
		var status string
		if err := rows.Scan(&t.ID, &t.ArticleID, &t.WaitTime, &status, &t.TweetText, &t.TagAccounts, &t.Position); err != nil {
			rows.Close()
			return err
		}
		t.Status = models.ScheduleResult(status)
		a.Tweets = append(a.Tweets, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = db.Query(ctx, `
        SELECT id, article_id, republisher_id, status, note, position
        FROM article_republications WHERE article_id=$1 ORDER BY position`, a.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	a.Republications = []models.Republication{}
	for rows.Next() {
		var rp models.Republication
		var status string
		if err := rows.Scan(&rp.ID, &rp.ArticleID, &rp.RepublisherID, &status, &rp.Note, &rp.Position); err != nil {
			return err
		}
		rp.Status = models.ScheduleResult(status)
		a.Republications = append(a.Republications, rp)
	}
	return rows.Err()
}

// replaceArticleChildren rewrites topics and inline rows as a set.
func replaceArticleChildren(ctx context.Context, tx pgx.Tx, a *models.Article) error {
	for _, table := range []string{"article_topics", "article_tweets", "article_republications"} {
		if _, err := tx.Exec(ctx, "DELETE FROM "+table+" WHERE article_id=$1", a.ID); err != nil {
			return err
		}
	}

	for i, topicID := range a.TopicIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO article_topics (article_id, topic_id, position) VALUES ($1,$2,$3)`,
			a.ID, topicID, i,
		); err != nil {
			return err
		}
	}

	for i := range a.Tweets {
		t := &a.Tweets[i]
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.ArticleID = a.ID
		t.Position = i
		if t.TagAccounts == nil {
			t.TagAccounts = []string{}
		}
		if _, err := tx.Exec(ctx, `
            INSERT INTO article_tweets (id, article_id, wait_time, status, tweet_text, tag_accounts, position)
            VALUES ($1,$2,$3,$4,$5,$6,$7)`,
			t.ID, t.ArticleID, t.WaitTime, string(t.Status), t.TweetText, t.TagAccounts, t.Position,
		); err != nil {
			return err
		}
	}

	for i := range a.Republications {
		rp := &a.Republications[i]
		if rp.ID == uuid.Nil {
			rp.ID = uuid.New()
		}
		rp.ArticleID = a.ID
		rp.Position = i
		if _, err := tx.Exec(ctx, `
            INSERT INTO article_republications (id, article_id, republisher_id, status, note, position)
            VALUES ($1,$2,$3,$4,$5,$6)`,
			rp.ID, rp.ArticleID, rp.RepublisherID, string(rp.Status), rp.Note, rp.Position,
		); err != nil {
			return err
		}
	}
	return nil
}

/* ---------- select / scan ---------- */

func baseSelectArticle() string {
	cols := make([]string, 0, len(articleWritableColumns))
	for _, c := range articleWritableColumns {
		cols = append(cols, "a."+c)
	}
	return fmt.Sprintf(`
        SELECT
            a.id, %s,
            a.created_at, a.updated_at, a.version,
            COALESCE(NULLIF(e.full_name, ''), e.username)
        FROM articles a
        LEFT JOIN editors e ON e.id = a.editor_id
    `, strings.Join(cols, ", "))
}

func scanArticle(row pgx.Row) (*models.Article, error) {
	var a models.Article
	var (
		author01, author02, author03, author04, author05 pgtype.UUID
		categoryID, mainTopicID, regionID, editorID      pgtype.UUID
		published                                        pgtype.Timestamptz
		editorName                                       pgtype.Text
	)
	err := row.Scan(
		&a.ID, &a.Title, &a.Subtitle, &a.Slug,
		&author01, &author02, &author03, &author04, &author05,
		&a.Byline, &a.CachedBylineNoLinks,
		&a.PrimaryImage, &a.PrimaryImageSize, &a.PrimaryImageCaption, &a.PrimaryImageAlt, &a.ExternalPrimaryImage,
		&a.Body, &a.UseEditor,
		&categoryID, &mainTopicID, &regionID, &published,
		&a.SummaryImage, &a.SummaryImageSize, &a.SummaryImageAlt, &a.SummaryText, &a.CachedSummaryText, &a.SummaryTemplate,
		&a.Copyright, &a.IncludeInRSS, &a.CommentsOn, &a.Stickiness, &a.ExcludeFromListViews, &a.Recommended, &a.Template, &a.DisqusID,
		&a.FacebookWaitTime, &a.FacebookImage, &a.FacebookImageCaption, &a.FacebookDescription, &a.FacebookMessage, &a.FacebookSendStatus,
		&editorID,
		&a.CreatedAt, &a.UpdatedAt, &a.Version,
		&editorName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	a.Author01, a.Author02, a.Author03 = uuidPtr(author01), uuidPtr(author02), uuidPtr(author03)
	a.Author04, a.Author05 = uuidPtr(author04), uuidPtr(author05)
	a.CategoryID, a.MainTopicID, a.RegionID = uuidPtr(categoryID), uuidPtr(mainTopicID), uuidPtr(regionID)
	a.EditorID = uuidPtr(editorID)
	a.Published = timePtr(published)
	a.EditorName = textOrEmpty(editorName)
	return &a, nil
}
