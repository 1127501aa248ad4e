package dtos

import (
	"time"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
)

// ArticleRequest is the full article form. Version is the value the
// client received when it opened the article and is ignored on create.
type ArticleRequest struct {
	Version  int64  `json:"version" validate:"gte=0"`
	Title    string `json:"title" validate:"required,max=200"`
	Subtitle string `json:"subtitle" validate:"max=200"`
	Slug     string `json:"slug" validate:"omitempty,max=50,slug"`

	Author01 *uuid.UUID `json:"author_01,omitempty"`
	Author02 *uuid.UUID `json:"author_02,omitempty"`
	Author03 *uuid.UUID `json:"author_03,omitempty"`
	Author04 *uuid.UUID `json:"author_04,omitempty"`
	Author05 *uuid.UUID `json:"author_05,omitempty"`
	Byline   string     `json:"byline" validate:"max=200"`

	PrimaryImage         string `json:"primary_image" validate:"max=200"`
	PrimaryImageSize     string `json:"primary_image_size"`
	PrimaryImageCaption  string `json:"primary_image_caption" validate:"max=600"`
	PrimaryImageAlt      string `json:"primary_image_alt" validate:"max=200"`
	ExternalPrimaryImage string `json:"external_primary_image" validate:"omitempty,url,max=500"`

	Body      string `json:"body"`
	UseEditor bool   `json:"use_editor"`

	CategoryID *uuid.UUID  `json:"category_id,omitempty"`
	TopicIDs   []uuid.UUID `json:"topic_ids" validate:"dive,required"`
	// MainTopic is a topic ID, a topic name or "(None)".
	MainTopic string     `json:"main_topic"`
	RegionID  *uuid.UUID `json:"region_id,omitempty"`
	Published *time.Time `json:"published,omitempty"`

	SummaryImage     string `json:"summary_image" validate:"max=200"`
	SummaryImageSize string `json:"summary_image_size"`
	SummaryImageAlt  string `json:"summary_image_alt" validate:"max=200"`
	SummaryText      string `json:"summary_text"`
	SummaryTemplate  string `json:"summary_template" validate:"max=200"`

	Copyright            string `json:"copyright"`
	IncludeInRSS         bool   `json:"include_in_rss"`
	CommentsOn           bool   `json:"comments_on"`
	Stickiness           int    `json:"stickiness"`
	ExcludeFromListViews bool   `json:"exclude_from_list_views"`
	Recommended          bool   `json:"recommended"`
	Template             string `json:"template" validate:"max=200"`
	DisqusID             string `json:"disqus_id" validate:"max=20"`

	FacebookWaitTime     int    `json:"facebook_wait_time" validate:"gte=0"`
	FacebookImage        string `json:"facebook_image" validate:"max=200"`
	FacebookImageCaption string `json:"facebook_image_caption" validate:"max=200"`
	FacebookDescription  string `json:"facebook_description" validate:"max=200"`
	FacebookMessage      string `json:"facebook_message"`
	FacebookSendStatus   string `json:"facebook_send_status" validate:"omitempty,oneof=scheduled paused sent failed"`

	Tweets         []TweetRequest         `json:"tweets" validate:"dive"`
	Republications []RepublicationRequest `json:"republications" validate:"dive"`
}

type TweetRequest struct {
	WaitTime    int      `json:"wait_time" validate:"gte=0"`
	Status      string   `json:"status" validate:"omitempty,oneof=scheduled paused sent failed"`
	TweetText   string   `json:"tweet_text" validate:"required,max=280"`
	TagAccounts []string `json:"tag_accounts" validate:"dive,required,max=200"`
}

type RepublicationRequest struct {
	RepublisherID uuid.UUID `json:"republisher_id" validate:"required"`
	Status        string    `json:"status" validate:"omitempty,oneof=scheduled paused sent failed"`
	Note          string    `json:"note" validate:"max=200"`
}

// ArticleListParams is parsed from the change-list query string.
type ArticleListParams struct {
	Search     string
	Published  string `validate:"omitempty,oneof=today past_7_days this_month this_year no_date has_date"`
	CategoryID *uuid.UUID
	RegionID   *uuid.UUID
	TopicID    *uuid.UUID
	Year       int `validate:"omitempty,gte=1900,lte=9999"`
	Month      int `validate:"omitempty,gte=1,lte=12,excluded_without=Year"`
	Day        int `validate:"omitempty,gte=1,lte=31,excluded_without=Month"`
	Ordering   string
	Page       int `validate:"gte=1"`
	PageSize   int `validate:"gte=1,lte=200"`
}

// ArticleListItem carries the change-list columns.
type ArticleListItem struct {
	ID                  uuid.UUID  `json:"id"`
	Title               string     `json:"title"`
	Created             time.Time  `json:"created"`
	Modified            time.Time  `json:"modified"`
	Published           *time.Time `json:"published,omitempty"`
	IsPublished         bool       `json:"is_published"`
	CachedBylineNoLinks string     `json:"cached_byline_no_links"`
	CategoryID          *uuid.UUID `json:"category_id,omitempty"`
	Version             int64      `json:"version"`
}

func NewArticleListItem(a *models.Article, now time.Time) ArticleListItem {
	return ArticleListItem{
		ID:                  a.ID,
		Title:               a.Title,
		Created:             a.CreatedAt,
		Modified:            a.UpdatedAt,
		Published:           a.Published,
		IsPublished:         a.IsPublished(now),
		CachedBylineNoLinks: a.CachedBylineNoLinks,
		CategoryID:          a.CategoryID,
		Version:             a.Version,
	}
}

// ArticleResponse is a full article plus the derived publication flag.
type ArticleResponse struct {
	*models.Article
	IsPublished bool `json:"is_published"`
}

func NewArticleResponse(a *models.Article, now time.Time) ArticleResponse {
	return ArticleResponse{Article: a, IsPublished: a.IsPublished(now)}
}

// RecentEditor is another editor who opened the same article lately.
type RecentEditor struct {
	EditorID   uuid.UUID `json:"editor_id"`
	EditorName string    `json:"editor_name"`
	EditTime   time.Time `json:"edit_time"`
}

// ArticleEditResponse opens an edit session. The client must echo
// Article.Version when it saves.
type ArticleEditResponse struct {
	Article       ArticleResponse `json:"article"`
	Choices       FormChoices     `json:"choices"`
	RecentEditors []RecentEditor  `json:"recent_editors"`
}
