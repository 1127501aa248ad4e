package repositories

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var queryNow = time.Date(2024, time.March, 14, 15, 30, 0, 0, time.UTC)

func TestArticleQuery_Empty(t *testing.T) {
	where, args, err := ArticleQuery{Now: queryNow}.where()
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestArticleQuery_SearchTermsEachMatchAField(t *testing.T) {
	where, args, err := ArticleQuery{Search: "  water  crisis ", Now: queryNow}.where()
	require.NoError(t, err)
	assert.Equal(t,
		" WHERE (a.title ILIKE $1 OR a.cached_byline_no_links ILIKE $2)"+
			" AND (a.title ILIKE $3 OR a.cached_byline_no_links ILIKE $4)",
		where)
	assert.Equal(t, []any{"%water%", "%water%", "%crisis%", "%crisis%"}, args)
}

func TestArticleQuery_PublishedFilters(t *testing.T) {
	day := time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		filter string
		where  string
		args   []any
	}{
		{PublishedToday, " WHERE a.published >= $1 AND a.published < $2", []any{day, day.AddDate(0, 0, 1)}},
		{PublishedPast7Days, " WHERE a.published >= $1 AND a.published < $2", []any{day.AddDate(0, 0, -7), day.AddDate(0, 0, 1)}},
		{PublishedThisMonth, " WHERE a.published >= $1 AND a.published < $2", []any{
			time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		}},
		{PublishedThisYear, " WHERE a.published >= $1 AND a.published < $2", []any{
			time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		}},
		{PublishedNoDate, " WHERE a.published IS NULL", nil},
		{PublishedHasDate, " WHERE a.published IS NOT NULL", nil},
	}
	for _, tc := range tests {
		t.Run(tc.filter, func(t *testing.T) {
			where, args, err := ArticleQuery{Published: tc.filter, Now: queryNow}.where()
			require.NoError(t, err)
			assert.Equal(t, tc.where, where)
			assert.Equal(t, tc.args, args)
		})
	}
}

func TestArticleQuery_UnknownPublishedFilter(t *testing.T) {
	_, _, err := ArticleQuery{Published: "last_century", Now: queryNow}.where()
	assert.Error(t, err)
}

func TestArticleQuery_RelationFilters(t *testing.T) {
	cat, topic := uuid.New(), uuid.New()
	where, args, err := ArticleQuery{CategoryID: &cat, TopicID: &topic, Now: queryNow}.where()
	require.NoError(t, err)
	assert.Equal(t,
		" WHERE a.category_id = $1 AND EXISTS (SELECT 1 FROM article_topics t WHERE t.article_id = a.id AND t.topic_id = $2)",
		where)
	assert.Equal(t, []any{cat, topic}, args)
}

func TestArticleQuery_DateDrillDown(t *testing.T) {
	_, args, err := ArticleQuery{Year: 2024, Month: 2, Now: queryNow}.where()
	require.NoError(t, err)
	assert.Equal(t, []any{
		time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
	}, args)

	_, args, err = ArticleQuery{Year: 2024, Month: 2, Day: 29, Now: queryNow}.where()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), args[1])

	_, _, err = ArticleQuery{Year: 2023, Month: 2, Day: 29, Now: queryNow}.where()
	assert.ErrorIs(t, err, ErrInvalidQuery)
	_, _, err = ArticleQuery{Month: 2, Now: queryNow}.where()
	assert.Error(t, err)
	_, _, err = ArticleQuery{Year: 2024, Day: 3, Now: queryNow}.where()
	assert.Error(t, err)
}

func TestArticleQuery_Ordering(t *testing.T) {
	order, err := ArticleQuery{}.orderBy()
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY a.updated_at DESC, a.id", order)

	order, err = ArticleQuery{Ordering: "title,-published"}.orderBy()
	require.NoError(t, err)
	assert.Equal(t, " ORDER BY a.title ASC, a.published DESC, a.id", order)

	_, err = ArticleQuery{Ordering: "password_hash"}.orderBy()
	assert.Error(t, err)
}
