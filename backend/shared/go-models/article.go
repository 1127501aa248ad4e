package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is the main editable record of the back office.
type Article struct {
	Versioned

	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Slug     string    `json:"slug"`

	Author01 *uuid.UUID `json:"author_01,omitempty"`
	Author02 *uuid.UUID `json:"author_02,omitempty"`
	Author03 *uuid.UUID `json:"author_03,omitempty"`
	Author04 *uuid.UUID `json:"author_04,omitempty"`
	Author05 *uuid.UUID `json:"author_05,omitempty"`

	Byline              string `json:"byline"`
	CachedBylineNoLinks string `json:"cached_byline_no_links"`

	PrimaryImage         string `json:"primary_image"`
	PrimaryImageSize     string `json:"primary_image_size"`
	PrimaryImageCaption  string `json:"primary_image_caption"`
	PrimaryImageAlt      string `json:"primary_image_alt"`
	ExternalPrimaryImage string `json:"external_primary_image"`

	Body      string `json:"body"`
	UseEditor bool   `json:"use_editor"`

	CategoryID  *uuid.UUID  `json:"category_id,omitempty"`
	TopicIDs    []uuid.UUID `json:"topic_ids"`
	MainTopicID *uuid.UUID  `json:"main_topic_id,omitempty"`
	RegionID    *uuid.UUID  `json:"region_id,omitempty"`
	Published   *time.Time  `json:"published,omitempty"`

	SummaryImage      string `json:"summary_image"`
	SummaryImageSize  string `json:"summary_image_size"`
	SummaryImageAlt   string `json:"summary_image_alt"`
	SummaryText       string `json:"summary_text"`
	CachedSummaryText string `json:"cached_summary_text"`
	SummaryTemplate   string `json:"summary_template"`

	Copyright            string `json:"copyright"`
	IncludeInRSS         bool   `json:"include_in_rss"`
	CommentsOn           bool   `json:"comments_on"`
	Stickiness           int    `json:"stickiness"`
	ExcludeFromListViews bool   `json:"exclude_from_list_views"`
	Recommended          bool   `json:"recommended"`
	Template             string `json:"template"`
	DisqusID             string `json:"disqus_id"`

	FacebookWaitTime     int    `json:"facebook_wait_time"`
	FacebookImage        string `json:"facebook_image"`
	FacebookImageCaption string `json:"facebook_image_caption"`
	FacebookDescription  string `json:"facebook_description"`
	FacebookMessage      string `json:"facebook_message"`
	FacebookSendStatus   string `json:"facebook_send_status"`

	// EditorID is the last editor to save the article ("user" in the form).
	EditorID   *uuid.UUID `json:"user_id,omitempty"`
	EditorName string     `json:"user,omitempty"`

	Tweets         []Tweet         `json:"tweets"`
	Republications []Republication `json:"republications"`

	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified"`
}

func (a *Article) GetID() string {
	return a.ID.String()
}

// AuthorIDs returns the filled author slots in order.
func (a *Article) AuthorIDs() []uuid.UUID {
	var out []uuid.UUID
	for _, id := range []*uuid.UUID{a.Author01, a.Author02, a.Author03, a.Author04, a.Author05} {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}

// IsPublished is true once the publication time has been reached.
func (a *Article) IsPublished(now time.Time) bool {
	return a.Published != nil && !a.Published.After(now)
}
