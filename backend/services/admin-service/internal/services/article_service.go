package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/sirupsen/logrus"
)

type ArticleService struct {
	articles     repositories.ArticleRepository
	terms        repositories.TermRepository
	authors      repositories.AuthorRepository
	editors      repositories.EditorRepository
	userEdits    repositories.UserEditRepository
	audit        auditLogger
	choices      *ChoicesService
	notifier     ConflictNotifier
	recentWindow time.Duration
	now          func() time.Time
}

func NewArticleService(
	articles repositories.ArticleRepository,
	terms repositories.TermRepository,
	authors repositories.AuthorRepository,
	editors repositories.EditorRepository,
	userEdits repositories.UserEditRepository,
	auditRepo repositories.AuditLogRepository,
	choices *ChoicesService,
	notifier ConflictNotifier,
	recentWindow time.Duration,
) *ArticleService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &ArticleService{
		articles:     articles,
		terms:        terms,
		authors:      authors,
		editors:      editors,
		userEdits:    userEdits,
		audit:        auditLogger{repo: auditRepo},
		choices:      choices,
		notifier:     notifier,
		recentWindow: recentWindow,
		now:          time.Now,
	}
}

// List returns one page of the article change list.
func (s *ArticleService) List(ctx context.Context, p dtos.ArticleListParams) (*dtos.Paged[dtos.ArticleListItem], error) {
	limit, offset := pageBounds(p.Page, p.PageSize)
	now := s.now()
	rows, total, err := s.articles.Search(ctx, repositories.ArticleQuery{
		Search:     p.Search,
		Published:  p.Published,
		CategoryID: p.CategoryID,
		RegionID:   p.RegionID,
		TopicID:    p.TopicID,
		Year:       p.Year,
		Month:      p.Month,
		Day:        p.Day,
		Ordering:   p.Ordering,
		Limit:      limit,
		Offset:     offset,
		Now:        now,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidQuery) {
			return nil, utils.BadRequest(err.Error(), err)
		}
		return nil, utils.Internal("Failed to list articles", err)
	}

	items := make([]dtos.ArticleListItem, 0, len(rows))
	for _, a := range rows {
		items = append(items, dtos.NewArticleListItem(a, now))
	}
	return &dtos.Paged[dtos.ArticleListItem]{
		Data:     items,
		Total:    total,
		Page:     offset/limit + 1,
		PageSize: limit,
	}, nil
}

func (s *ArticleService) load(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	a, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("Failed to load article", err)
	}
	if a == nil {
		return nil, utils.NotFound("Article not found")
	}
	return a, nil
}

func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (*dtos.ArticleResponse, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dtos.NewArticleResponse(a, s.now())
	return &resp, nil
}

// OpenForEdit starts an edit session: it returns the article with its
// current version, the form choices and the other editors who opened the
// article recently, and records this editor's visit.
func (s *ArticleService) OpenForEdit(ctx context.Context, editorID, id uuid.UUID) (*dtos.ArticleEditResponse, error) {
	a, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	recent, err := s.userEdits.ListRecentForArticle(ctx, id, now.Add(-s.recentWindow), editorID)
	if err != nil {
		return nil, utils.Internal("Failed to load recent editors", err)
	}
	editors := make([]dtos.RecentEditor, 0, len(recent))
	for _, ue := range recent {
		editors = append(editors, dtos.RecentEditor{
			EditorID:   ue.EditorID,
			EditorName: ue.EditorName,
			EditTime:   ue.EditTime,
		})
	}

	s.recordUserEdit(ctx, id, editorID)

	return &dtos.ArticleEditResponse{
		Article:       dtos.NewArticleResponse(a, now),
		Choices:       s.choices.FormChoices(),
		RecentEditors: editors,
	}, nil
}

func (s *ArticleService) Create(ctx context.Context, editorID uuid.UUID, req dtos.ArticleRequest) (*dtos.ArticleResponse, error) {
	a, err := s.cleanArticle(ctx, nil, editorID, req)
	if err != nil {
		return nil, err
	}
	a.ID = uuid.New()

	if err := s.articles.Create(ctx, a); err != nil {
		if utils.IsUniqueViolation(err, repositories.ConstraintArticleSlug) {
			return nil, conflict("An article with this slug already exists", utils.ErrDuplicateSlug)
		}
		return nil, utils.Internal("Failed to create article", err)
	}

	s.recordUserEdit(ctx, a.ID, editorID)
	s.audit.log(ctx, editorID, a.ID, models.AuditCreate, models.TargetArticle, a)
	return s.Get(ctx, a.ID)
}

// Update saves an edit that started from req.Version. A save based on an
// older version than the stored one is rejected with an
// *internal_utils.EditConflictError naming the editor who saved last; the
// caller must reload and reapply. Rejected saves are never retried.
func (s *ArticleService) Update(ctx context.Context, editorID, id uuid.UUID, req dtos.ArticleRequest) (*dtos.ArticleResponse, error) {
	persisted, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	a, err := s.cleanArticle(ctx, persisted, editorID, req)
	if err != nil {
		if errors.Is(err, utils.ErrRowVersionConflict) {
			s.rejectEdit(ctx, editorID, persisted, req.Version)
		}
		return nil, err
	}

	tag, err := s.articles.UpdateIfVersion(ctx, a, persisted.Version)
	if err != nil {
		if utils.IsUniqueViolation(err, repositories.ConstraintArticleSlug) {
			return nil, conflict("An article with this slug already exists", utils.ErrDuplicateSlug)
		}
		return nil, utils.Internal("Failed to update article", err)
	}
	if tag.RowsAffected() == 0 {
		// Another save committed between the guard and the write.
		latest, err := s.load(ctx, id)
		if err != nil {
			return nil, err
		}
		conflictErr := internal_utils.CheckEditConflict(false, persisted.Version, latest.Version, latest.EditorName).Err()
		if conflictErr == nil {
			return nil, utils.Internal("Failed to update article", utils.ErrNoRowsUpdated)
		}
		var ece *internal_utils.EditConflictError
		if errors.As(conflictErr, &ece) {
			ece.SubmittedVersion = req.Version
			ece.Current = latest
		}
		s.rejectEdit(ctx, editorID, latest, req.Version)
		return nil, conflictErr
	}

	s.recordUserEdit(ctx, id, editorID)
	s.audit.log(ctx, editorID, id, models.AuditUpdate, models.TargetArticle, a)
	return s.Get(ctx, id)
}

func (s *ArticleService) Delete(ctx context.Context, editorID, id uuid.UUID) error {
	if err := s.articles.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("Article not found")
		}
		return utils.Internal("Failed to delete article", err)
	}
	s.audit.log(ctx, editorID, id, models.AuditDelete, models.TargetArticle, nil)
	return nil
}

// ArticleIDsByAuthor lists the articles that credit authorID in any slot.
func (s *ArticleService) ArticleIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	return s.articles.ListIDsByAuthor(ctx, authorID)
}

// RefreshBylines recomputes the cached byline of the given articles after
// one of their authors was renamed or removed. Articles that vanished in
// the meantime are skipped.
func (s *ArticleService) RefreshBylines(ctx context.Context, articleIDs []uuid.UUID) error {
	for _, id := range articleIDs {
		err := s.articles.UpdateWithRetry(ctx, id, func(a *models.Article) error {
			authors, err := s.authors.ListByIDs(ctx, a.AuthorIDs())
			if err != nil {
				return err
			}
			byID := make(map[uuid.UUID]string, len(authors))
			for _, au := range authors {
				byID[au.ID] = au.Name()
			}
			var names []string
			for _, aid := range a.AuthorIDs() {
				if n, ok := byID[aid]; ok {
					names = append(names, n)
				}
			}
			byline := cachedByline(a.Byline, names)
			if byline == a.CachedBylineNoLinks {
				return errBylineUnchanged
			}
			a.CachedBylineNoLinks = byline
			return nil
		})
		if err != nil && !errors.Is(err, errBylineUnchanged) && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}
	}
	return nil
}

var errBylineUnchanged = errors.New("byline unchanged")

func (s *ArticleService) recordUserEdit(ctx context.Context, articleID, editorID uuid.UUID) {
	err := s.userEdits.Create(ctx, &models.UserEdit{
		ID:        uuid.New(),
		ArticleID: articleID,
		EditorID:  editorID,
	})
	if err != nil {
		utils.Logger.WithError(err).Warnf("Failed to record user edit for article %s", articleID)
	}
}

// rejectEdit logs and audits a refused save and tells the holder about it.
func (s *ArticleService) rejectEdit(ctx context.Context, editorID uuid.UUID, current *models.Article, submitted int64) {
	utils.Logger.WithFields(logrus.Fields{
		"article_id":        current.ID,
		"editor_id":         editorID,
		"submitted_version": submitted,
		"current_version":   current.Version,
	}).Info("Rejected stale article save")

	s.audit.log(ctx, editorID, current.ID, models.AuditReject, models.TargetArticle, map[string]int64{
		"submitted_version": submitted,
		"current_version":   current.Version,
	})

	if current.EditorID == nil {
		return
	}
	holder, err := s.editors.GetByID(ctx, *current.EditorID)
	if err != nil || holder == nil {
		return
	}
	requester, _ := s.editors.GetByID(ctx, editorID)
	s.notifier.NotifyEditConflict(ctx, EditConflictNotice{
		Article:   current,
		Holder:    holder,
		Requester: requester,
	})
}
