package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Published-date filter values accepted by ArticleQuery.Published.
const (
	PublishedToday     = "today"
	PublishedPast7Days = "past_7_days"
	PublishedThisMonth = "this_month"
	PublishedThisYear  = "this_year"
	PublishedNoDate    = "no_date"
	PublishedHasDate   = "has_date"
)

// ErrInvalidQuery wraps every rejection of a filter or ordering value.
var ErrInvalidQuery = errors.New("invalid query")

// DefaultArticleOrdering lists the most recently modified first.
const DefaultArticleOrdering = "-modified"

var articleOrderColumns = map[string]string{
	"title":      "a.title",
	"slug":       "a.slug",
	"published":  "a.published",
	"created":    "a.created_at",
	"modified":   "a.updated_at",
	"stickiness": "a.stickiness",
}

// ArticleQuery is the admin change-list query: search box, sidebar
// filters, date drill-down and column ordering.
type ArticleQuery struct {
	Search     string
	Published  string
	CategoryID *uuid.UUID
	RegionID   *uuid.UUID
	TopicID    *uuid.UUID

	// Date drill-down on the modified time. Month needs Year, Day needs Month.
	Year, Month, Day int

	Ordering string
	Limit    int
	Offset   int

	// Now anchors the relative published filters. Zero means time.Now().
	Now time.Time
}

type queryArgs struct {
	conds []string
	args  []any
}

func (q *queryArgs) add(cond string, vals ...any) {
	for _, v := range vals {
		q.args = append(q.args, v)
		cond = strings.Replace(cond, "?", fmt.Sprintf("$%d", len(q.args)), 1)
	}
	q.conds = append(q.conds, cond)
}

func (q *queryArgs) where() string {
	if len(q.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.conds, " AND ")
}

func (q ArticleQuery) where() (string, []any, error) {
	var qa queryArgs

	for _, term := range strings.Fields(q.Search) {
		like := "%" + term + "%"
		qa.add("(a.title ILIKE ? OR a.cached_byline_no_links ILIKE ?)", like, like)
	}

	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch q.Published {
	case "":
	case PublishedToday:
		qa.add("a.published >= ? AND a.published < ?", today, today.AddDate(0, 0, 1))
	case PublishedPast7Days:
		qa.add("a.published >= ? AND a.published < ?", today.AddDate(0, 0, -7), today.AddDate(0, 0, 1))
	case PublishedThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		qa.add("a.published >= ? AND a.published < ?", first, first.AddDate(0, 1, 0))
	case PublishedThisYear:
		first := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		qa.add("a.published >= ? AND a.published < ?", first, first.AddDate(1, 0, 0))
	case PublishedNoDate:
		qa.add("a.published IS NULL")
	case PublishedHasDate:
		qa.add("a.published IS NOT NULL")
	default:
		return "", nil, fmt.Errorf("%w: unknown published filter %q", ErrInvalidQuery, q.Published)
	}

	if q.CategoryID != nil {
		qa.add("a.category_id = ?", *q.CategoryID)
	}
	if q.RegionID != nil {
		qa.add("a.region_id = ?", *q.RegionID)
	}
	if q.TopicID != nil {
		qa.add("EXISTS (SELECT 1 FROM article_topics t WHERE t.article_id = a.id AND t.topic_id = ?)", *q.TopicID)
	}

	if q.Year != 0 || q.Month != 0 || q.Day != 0 {
		start, end, err := dateRange(q.Year, q.Month, q.Day, now.Location())
		if err != nil {
			return "", nil, err
		}
		qa.add("a.updated_at >= ? AND a.updated_at < ?", start, end)
	}

	return qa.where(), qa.args, nil
}

func dateRange(year, month, day int, loc *time.Location) (time.Time, time.Time, error) {
	switch {
	case year == 0:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date drill-down needs a year", ErrInvalidQuery)
	case day != 0 && month == 0:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: date drill-down by day needs a month", ErrInvalidQuery)
	case month < 0 || month > 12:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid month %d", ErrInvalidQuery, month)
	}

	switch {
	case day != 0:
		start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
		if start.Day() != day {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid day %d for %d-%02d", ErrInvalidQuery, day, year, month)
		}
		return start, start.AddDate(0, 0, 1), nil
	case month != 0:
		start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), nil
	default:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0), nil
	}
}

func (q ArticleQuery) orderBy() (string, error) {
	ordering := q.Ordering
	if ordering == "" {
		ordering = DefaultArticleOrdering
	}
	return orderClause(ordering, articleOrderColumns, "a.id")
}

// orderClause turns "-field,other" into an ORDER BY over allow-listed
// columns, with the primary key as a stable tiebreaker.
func orderClause(ordering string, allowed map[string]string, pk string) (string, error) {
	var parts []string
	for _, f := range strings.Split(ordering, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(f, "-") {
			dir = "DESC"
			f = f[1:]
		}
		col, ok := allowed[f]
		if !ok {
			return "", fmt.Errorf("%w: cannot order by %q", ErrInvalidQuery, f)
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: empty ordering", ErrInvalidQuery)
	}
	return " ORDER BY " + strings.Join(parts, ", ") + ", " + pk, nil
}
