package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	go_dtos "github.com/newsroom/mono-repo/backend/shared/go-dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// cleanArticle runs the save-time form pass and returns the article to
// write. persisted is nil for a new article. The order matters: the main
// topic is resolved before the version guard, the guard runs before any
// derived field is computed.
func (s *ArticleService) cleanArticle(
	ctx context.Context,
	persisted *models.Article,
	editorID uuid.UUID,
	req dtos.ArticleRequest,
) (*models.Article, error) {
	mainTopic, err := s.resolveMainTopic(ctx, req.MainTopic)
	if err != nil {
		return nil, utils.Internal("Failed to resolve main topic", err)
	}

	var (
		persistedVersion int64
		holder           string
	)
	if persisted != nil {
		persistedVersion = persisted.Version
		holder = persisted.EditorName
	}
	decision := internal_utils.CheckEditConflict(persisted == nil, req.Version, persistedVersion, holder)
	if err := decision.Err(); err != nil {
		var conflictErr *internal_utils.EditConflictError
		if errors.As(err, &conflictErr) {
			conflictErr.Current = persisted
		}
		return nil, err
	}

	a := articleFromRequest(req)
	a.MainTopicID = mainTopic
	a.TopicIDs = internal_utils.UnionTopics(req.TopicIDs, mainTopic)
	if a.UseEditor {
		a.Body = internal_utils.CleanEditorHTML(a.Body)
	}

	details := s.checkChoices(a)
	authorNames, refDetails, err := s.checkReferences(ctx, a)
	if err != nil {
		return nil, utils.Internal("Failed to look up related records", err)
	}
	details = append(details, refDetails...)

	if a.Slug == "" {
		a.Slug = internal_utils.Slugify(a.Title)
		if a.Slug == "" {
			details = append(details, fieldError("slug", "required", "Enter a slug; none can be derived from this title."))
		}
	}
	if len(details) > 0 {
		return nil, fieldErrors(details...)
	}

	a.CachedBylineNoLinks = cachedByline(a.Byline, authorNames)
	a.CachedSummaryText = internal_utils.SummaryText(a.SummaryText, a.Body)
	a.EditorID = &editorID
	if persisted != nil {
		a.ID = persisted.ID
		a.CreatedAt = persisted.CreatedAt
	}
	return a, nil
}

// resolveMainTopic maps the submitted main topic to a topic ID, trying it
// as an ID first and as a name second. Anything unresolvable is no topic.
func (s *ArticleService) resolveMainTopic(ctx context.Context, raw string) (*uuid.UUID, error) {
	value, ok := internal_utils.MainTopicInput(raw)
	if !ok {
		return nil, nil
	}
	if id, err := uuid.Parse(value); err == nil {
		t, err := s.terms.GetByID(ctx, models.KindTopic, id)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return &t.ID, nil
		}
	}
	t, err := s.terms.GetByName(ctx, models.KindTopic, value)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, nil
	}
	return &t.ID, nil
}

func (s *ArticleService) checkChoices(a *models.Article) []go_dtos.ValidationErrorDetail {
	var details []go_dtos.ValidationErrorDetail
	for _, f := range []struct {
		name  string
		value string
	}{
		{"primary_image_size", a.PrimaryImageSize},
		{"summary_image_size", a.SummaryImageSize},
	} {
		if !s.choices.ValidImageSize(f.value) {
			details = append(details, fieldError(f.name, "invalid_choice",
				fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", f.value)))
		}
	}
	if !models.ScheduleResult(a.FacebookSendStatus).Valid() {
		details = append(details, fieldError("facebook_send_status", "invalid_choice",
			fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", a.FacebookSendStatus)))
	}
	return details
}

// checkReferences confirms that every related record exists and returns
// the author names in slot order.
func (s *ArticleService) checkReferences(ctx context.Context, a *models.Article) ([]string, []go_dtos.ValidationErrorDetail, error) {
	var details []go_dtos.ValidationErrorDetail

	authorIDs := a.AuthorIDs()
	found, err := s.authors.ListByIDs(ctx, authorIDs)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]*models.Author, len(found))
	for _, au := range found {
		byID[au.ID] = au
	}
	var names []string
	for i, slot := range []*uuid.UUID{a.Author01, a.Author02, a.Author03, a.Author04, a.Author05} {
		if slot == nil {
			continue
		}
		au, ok := byID[*slot]
		if !ok {
			details = append(details, fieldError(fmt.Sprintf("author_%02d", i+1), "does_not_exist",
				fmt.Sprintf("Author %s does not exist.", *slot)))
			continue
		}
		names = append(names, au.Name())
	}

	topics, err := s.terms.ListByIDs(ctx, models.KindTopic, a.TopicIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(topics) != len(a.TopicIDs) {
		known := make(map[uuid.UUID]struct{}, len(topics))
		for _, t := range topics {
			known[t.ID] = struct{}{}
		}
		for _, id := range a.TopicIDs {
			if _, ok := known[id]; !ok {
				details = append(details, fieldError("topic_ids", "does_not_exist",
					fmt.Sprintf("Topic %s does not exist.", id)))
			}
		}
	}

	for _, ref := range []struct {
		field string
		label string
		kind  models.TaxonomyKind
		id    *uuid.UUID
	}{
		{"category_id", "Category", models.KindCategory, a.CategoryID},
		{"region_id", "Region", models.KindRegion, a.RegionID},
	} {
		if ref.id == nil {
			continue
		}
		t, err := s.terms.GetByID(ctx, ref.kind, *ref.id)
		if err != nil {
			return nil, nil, err
		}
		if t == nil {
			details = append(details, fieldError(ref.field, "does_not_exist",
				fmt.Sprintf("%s %s does not exist.", ref.label, *ref.id)))
		}
	}
	return names, details, nil
}

// cachedByline is the plain-text byline: the explicit byline when given,
// otherwise the author names joined as "A, B and C".
func cachedByline(byline string, authorNames []string) string {
	if b := internal_utils.StripTags(byline); b != "" {
		return b
	}
	return internal_utils.JoinNames(authorNames)
}

func articleFromRequest(req dtos.ArticleRequest) *models.Article {
	a := &models.Article{
		Title:                strings.TrimSpace(req.Title),
		Subtitle:             req.Subtitle,
		Slug:                 strings.TrimSpace(req.Slug),
		Author01:             req.Author01,
		Author02:             req.Author02,
		Author03:             req.Author03,
		Author04:             req.Author04,
		Author05:             req.Author05,
		Byline:               req.Byline,
		PrimaryImage:         req.PrimaryImage,
		PrimaryImageSize:     utils.FirstNonEmpty(req.PrimaryImageSize, utils.DefaultPrimaryImageSize),
		PrimaryImageCaption:  req.PrimaryImageCaption,
		PrimaryImageAlt:      req.PrimaryImageAlt,
		ExternalPrimaryImage: req.ExternalPrimaryImage,
		Body:                 req.Body,
		UseEditor:            req.UseEditor,
		CategoryID:           req.CategoryID,
		RegionID:             req.RegionID,
		Published:            req.Published,
		SummaryImage:         req.SummaryImage,
		SummaryImageSize:     utils.FirstNonEmpty(req.SummaryImageSize, utils.DefaultSummaryImageSize),
		SummaryImageAlt:      req.SummaryImageAlt,
		SummaryText:          req.SummaryText,
		SummaryTemplate:      req.SummaryTemplate,
		Copyright:            req.Copyright,
		IncludeInRSS:         req.IncludeInRSS,
		CommentsOn:           req.CommentsOn,
		Stickiness:           req.Stickiness,
		ExcludeFromListViews: req.ExcludeFromListViews,
		Recommended:          req.Recommended,
		Template:             req.Template,
		DisqusID:             req.DisqusID,
		FacebookWaitTime:     req.FacebookWaitTime,
		FacebookImage:        req.FacebookImage,
		FacebookImageCaption: req.FacebookImageCaption,
		FacebookDescription:  req.FacebookDescription,
		FacebookMessage:      req.FacebookMessage,
		FacebookSendStatus:   utils.FirstNonEmpty(req.FacebookSendStatus, string(models.ScheduleScheduled)),
	}
	for _, t := range req.Tweets {
		a.Tweets = append(a.Tweets, models.Tweet{
			WaitTime:    t.WaitTime,
			Status:      models.ScheduleResult(utils.FirstNonEmpty(t.Status, string(models.ScheduleScheduled))),
			TweetText:   t.TweetText,
			TagAccounts: t.TagAccounts,
		})
	}
	for _, r := range req.Republications {
		a.Republications = append(a.Republications, models.Republication{
			RepublisherID: r.RepublisherID,
			Status:        models.ScheduleResult(utils.FirstNonEmpty(r.Status, string(models.ScheduleScheduled))),
			Note:          r.Note,
		})
	}
	return a
}
