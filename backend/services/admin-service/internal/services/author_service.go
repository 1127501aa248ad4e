package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// bylineRefresher keeps article bylines in step with author names.
type bylineRefresher interface {
	ArticleIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error)
	RefreshBylines(ctx context.Context, articleIDs []uuid.UUID) error
}

type AuthorService struct {
	authors repositories.AuthorRepository
	bylines bylineRefresher
	audit   auditLogger
}

func NewAuthorService(authors repositories.AuthorRepository, bylines bylineRefresher, auditRepo repositories.AuditLogRepository) *AuthorService {
	return &AuthorService{
		authors: authors,
		bylines: bylines,
		audit:   auditLogger{repo: auditRepo},
	}
}

func (s *AuthorService) List(ctx context.Context, search, ordering string, page, pageSize int) (*dtos.Paged[*models.Author], error) {
	limit, offset := pageBounds(page, pageSize)
	if ordering == "" {
		ordering = repositories.DefaultAuthorOrdering
	}
	rows, total, err := s.authors.Search(ctx, strings.TrimSpace(search), ordering, limit, offset)
	if err != nil {
		if errors.Is(err, repositories.ErrInvalidQuery) {
			return nil, utils.BadRequest(err.Error(), err)
		}
		return nil, utils.Internal("Failed to list authors", err)
	}
	return &dtos.Paged[*models.Author]{Data: rows, Total: total, Page: offset/limit + 1, PageSize: limit}, nil
}

func (s *AuthorService) Get(ctx context.Context, id uuid.UUID) (*models.Author, error) {
	a, err := s.authors.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("Failed to load author", err)
	}
	if a == nil {
		return nil, utils.NotFound("Author not found")
	}
	return a, nil
}

func authorFromRequest(req dtos.AuthorRequest) *models.Author {
	return &models.Author{
		Title:       strings.TrimSpace(req.Title),
		FirstNames:  strings.TrimSpace(req.FirstNames),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       strings.TrimSpace(req.Email),
		Telephone:   req.Telephone,
		Cell:        req.Cell,
		Description: req.Description,
	}
}

func (s *AuthorService) Create(ctx context.Context, editorID uuid.UUID, req dtos.AuthorRequest) (*models.Author, error) {
	a := authorFromRequest(req)
	a.ID = uuid.New()
	if err := s.authors.Create(ctx, a); err != nil {
		return nil, utils.Internal("Failed to create author", err)
	}
	s.audit.log(ctx, editorID, a.ID, models.AuditCreate, models.TargetAuthor, a)
	return a, nil
}

// Update saves an author edit that started from req.Version. A rename
// refreshes the cached bylines of the author's articles.
func (s *AuthorService) Update(ctx context.Context, editorID, id uuid.UUID, req dtos.AuthorRequest) (*models.Author, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Version > req.Version {
		return nil, staleVersion("author", current)
	}

	a := authorFromRequest(req)
	a.ID = id
	a.CreatedAt = current.CreatedAt
	tag, err := s.authors.UpdateIfVersion(ctx, a, current.Version)
	if err != nil {
		return nil, utils.Internal("Failed to update author", err)
	}
	if tag.RowsAffected() == 0 {
		latest, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, staleVersion("author", latest)
	}
	a.Version = current.Version + 1

	if a.Name() != current.Name() {
		s.refreshBylines(ctx, id)
	}
	s.audit.log(ctx, editorID, id, models.AuditUpdate, models.TargetAuthor, a)
	return s.Get(ctx, id)
}

func (s *AuthorService) Delete(ctx context.Context, editorID, id uuid.UUID) error {
	articleIDs, err := s.bylines.ArticleIDsByAuthor(ctx, id)
	if err != nil {
		return utils.Internal("Failed to look up the author's articles", err)
	}
	if err := s.authors.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("Author not found")
		}
		return utils.Internal("Failed to delete author", err)
	}
	if err := s.bylines.RefreshBylines(ctx, articleIDs); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to refresh bylines after deleting author %s", id)
	}
	s.audit.log(ctx, editorID, id, models.AuditDelete, models.TargetAuthor, nil)
	return nil
}

func (s *AuthorService) refreshBylines(ctx context.Context, authorID uuid.UUID) {
	ids, err := s.bylines.ArticleIDsByAuthor(ctx, authorID)
	if err == nil {
		err = s.bylines.RefreshBylines(ctx, ids)
	}
	if err != nil {
		utils.Logger.WithError(err).Errorf("Failed to refresh bylines for author %s", authorID)
	}
}
