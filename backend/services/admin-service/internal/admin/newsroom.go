package admin

import (
	"fmt"

	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/routes"
)

const (
	collapsedClass = "grp-collapse grp-closed"
	editorCSS      = "/static/newsroom/css/admin_enhance.css"
)

var editorJS = []string{
	"//cdn.ckeditor.com/4.5.6/standard-all/ckeditor.js",
	"/static/newsroom/js/ck_styles.js",
	"/static/newsroom/js/ck_init_admin.js",
}

func rows(fields ...string) [][]string {
	out := make([][]string, len(fields))
	for i, f := range fields {
		out[i] = []string{f}
	}
	return out
}

func slugFromName() map[string][]string {
	return map[string][]string{"slug": {"name"}}
}

// NewNewsroomSite returns the site with every newsroom model registered.
func NewNewsroomSite() (*Site, error) {
	site := NewSite()
	regs := []*ModelAdmin{
		articleAdmin(),
		{Name: "useredit", VerboseName: "User edits", Endpoint: routes.UserEdits,
			ListDisplay: []string{"article", "editor", "edit_time"}},
		{Name: "category", VerboseName: "Categories", Endpoint: "/api/v1/admin/categories",
			ListDisplay: []string{"name"}, PrepopulatedFields: slugFromName()},
		{Name: "region", VerboseName: "Regions", Endpoint: "/api/v1/admin/regions",
			ListDisplay: []string{"name"}, PrepopulatedFields: slugFromName()},
		{Name: "topic", VerboseName: "Topics", Endpoint: "/api/v1/admin/topics",
			ListDisplay: []string{"name"}, PrepopulatedFields: slugFromName()},
		{
			Name:         "author",
			VerboseName:  "Authors",
			Endpoint:     routes.Authors,
			ListDisplay:  []string{"last_name", "first_names", "created", "modified", "email", "telephone", "cell"},
			SearchFields: []string{"last_name", "first_names"},
		},
		{Name: "mostpopular", VerboseName: "Most popular", Endpoint: routes.MostPopular,
			ListDisplay: []string{"created"}},
		{Name: "flatpage", VerboseName: "Flat pages", Endpoint: routes.FlatPages,
			ListDisplay: []string{"url", "title"}},
	}
	for _, m := range regs {
		if err := site.Register(m); err != nil {
			return nil, err
		}
	}

	// Flat pages swap the stock admin for one that loads the rich-text editor.
	if err := site.Unregister("flatpage"); err != nil {
		return nil, err
	}
	if err := site.Register(flatPageAdmin()); err != nil {
		return nil, fmt.Errorf("re-register flatpage: %w", err)
	}
	return site, nil
}

func articleAdmin() *ModelAdmin {
	return &ModelAdmin{
		Name:        "article",
		VerboseName: "Articles",
		Endpoint:    routes.Articles,
		ListDisplay: []string{"title", "created", "modified", "published",
			"is_published", "cached_byline_no_links", "category"},
		SearchFields:       []string{"title", "cached_byline_no_links"},
		ListFilter:         []string{"published", "category", "region", "topics"},
		Ordering:           []string{"-modified"},
		DateHierarchy:      "modified",
		PrepopulatedFields: map[string][]string{"slug": {"title"}},
		RawIDFields: []string{"author_01", "author_02", "author_03", "author_04",
			"author_05", "topics", "main_topic"},
		Autocomplete: &AutocompleteLookups{
			FK:  []string{"author_01", "author_02", "author_03", "author_04", "author_05", "main_topic"},
			M2M: []string{"topics"},
		},
		ReadonlyFields: []string{"cached_byline_no_links", "cached_summary_text", "user", "modified"},
		Fieldsets: []Fieldset{
			{Name: "Identifying Information", Classes: []string{"wide"},
				Rows: rows("title", "subtitle", "cached_byline_no_links", "author_01")},
			{Name: "Additional authors", Classes: []string{"wide", collapsedClass},
				Rows: rows("author_02", "author_03", "author_04", "author_05")},
			{Name: "Primary Image", Classes: []string{"wide"},
				Rows: [][]string{
					{"primary_image", "primary_image_size"},
					{"primary_image_caption"},
					{"primary_image_alt"},
				}},
			{Name: "External URL for primary image", Classes: []string{collapsedClass},
				Rows: rows("external_primary_image")},
			{Name: "Content", Classes: []string{"wide"}, Rows: rows("body")},
			{Name: "Publish",
				Rows: rows("category", "topics", "main_topic", "region", "slug", "published")},
			{Name: "Summary", Classes: []string{collapsedClass},
				Rows: [][]string{
					{"summary_image", "summary_image_size"},
					{"summary_image_alt"},
					{"cached_summary_text"},
					{"summary_text"},
					{"summary_template"},
				}},
			{Name: "Advanced", Classes: []string{collapsedClass},
				Rows: append(rows("copyright", "include_in_rss", "comments_on", "stickiness",
					"exclude_from_list_views", "recommended", "byline", "use_editor",
					"template", "disqus_id"),
					[]string{"user", "modified", "version"})},
			{Name: "Facebook", Classes: []string{collapsedClass},
				Rows: rows("facebook_wait_time", "facebook_image", "facebook_image_caption",
					"facebook_description", "facebook_message", "facebook_send_status")},
		},
		Inlines: []Inline{
			{Model: "tweet", Endpoint: "tweets", Fields: []string{"wait_time", "status", "tweet_text", "tag_accounts"}, Extra: 1},
			{Model: "republication", Endpoint: "republications", Fields: []string{"republisher_id", "status", "note"}, Extra: 1},
		},
		Media: &Media{
			CSS: []string{editorCSS},
			JS: append(append([]string{}, editorJS...),
				"/static/newsroom/js/admin_enhance.js",
				"/static/socialmedia/js/tweets.js"),
		},
	}
}

func flatPageAdmin() *ModelAdmin {
	return &ModelAdmin{
		Name:         "flatpage",
		VerboseName:  "Flat pages",
		Endpoint:     routes.FlatPages,
		ListDisplay:  []string{"url", "title"},
		SearchFields: []string{"url", "title"},
		ListFilter:   []string{"sites", "registration_required"},
		Ordering:     []string{"url"},
		Fieldsets: []Fieldset{
			{Rows: rows("url", "title", "content", "sites")},
			{Name: "Advanced options", Classes: []string{"collapse"},
				Rows: rows("registration_required", "template_name")},
		},
		Media: &Media{
			CSS: []string{editorCSS},
			JS:  append([]string{}, editorJS...),
		},
	}
}
