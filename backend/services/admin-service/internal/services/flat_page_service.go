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

type FlatPageService struct {
	pages repositories.FlatPageRepository
	audit auditLogger
}

func NewFlatPageService(pages repositories.FlatPageRepository, auditRepo repositories.AuditLogRepository) *FlatPageService {
	return &FlatPageService{pages: pages, audit: auditLogger{repo: auditRepo}}
}

func (s *FlatPageService) List(ctx context.Context, search string) ([]*models.FlatPage, error) {
	pages, err := s.pages.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, utils.Internal("Failed to list flat pages", err)
	}
	if pages == nil {
		pages = []*models.FlatPage{}
	}
	return pages, nil
}

func (s *FlatPageService) Get(ctx context.Context, id uuid.UUID) (*models.FlatPage, error) {
	p, err := s.pages.GetByID(ctx, id)
	if err != nil {
		return nil, utils.Internal("Failed to load flat page", err)
	}
	if p == nil {
		return nil, utils.NotFound("Flat page not found")
	}
	return p, nil
}

func flatPageFromRequest(req dtos.FlatPageRequest) *models.FlatPage {
	sites := req.Sites
	if sites == nil {
		sites = []string{}
	}
	return &models.FlatPage{
		URL:                  strings.TrimSpace(req.URL),
		Title:                strings.TrimSpace(req.Title),
		Content:              req.Content,
		Sites:                sites,
		EnableComments:       req.EnableComments,
		RegistrationRequired: req.RegistrationRequired,
		TemplateName:         strings.TrimSpace(req.TemplateName),
	}
}

func duplicateURL(err error) error {
	if utils.IsUniqueViolation(err, repositories.ConstraintFlatPageURL) {
		return conflict("A flat page with this URL already exists", utils.ErrDuplicateURL)
	}
	return nil
}

func (s *FlatPageService) Create(ctx context.Context, editorID uuid.UUID, req dtos.FlatPageRequest) (*models.FlatPage, error) {
	p := flatPageFromRequest(req)
	p.ID = uuid.New()
	if err := s.pages.Create(ctx, p); err != nil {
		if dup := duplicateURL(err); dup != nil {
			return nil, dup
		}
		return nil, utils.Internal("Failed to create flat page", err)
	}
	s.audit.log(ctx, editorID, p.ID, models.AuditCreate, models.TargetFlatPage, p)
	return p, nil
}

func (s *FlatPageService) Update(ctx context.Context, editorID, id uuid.UUID, req dtos.FlatPageRequest) (*models.FlatPage, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Version > req.Version {
		return nil, staleVersion("flat page", current)
	}
	p := flatPageFromRequest(req)
	p.ID = id
	p.CreatedAt = current.CreatedAt

	tag, err := s.pages.UpdateIfVersion(ctx, p, current.Version)
	if err != nil {
		if dup := duplicateURL(err); dup != nil {
			return nil, dup
		}
		return nil, utils.Internal("Failed to update flat page", err)
	}
	if tag.RowsAffected() == 0 {
		latest, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return nil, staleVersion("flat page", latest)
	}
	s.audit.log(ctx, editorID, id, models.AuditUpdate, models.TargetFlatPage, p)
	return s.Get(ctx, id)
}

func (s *FlatPageService) Delete(ctx context.Context, editorID, id uuid.UUID) error {
	if err := s.pages.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound("Flat page not found")
		}
		return utils.Internal("Failed to delete flat page", err)
	}
	s.audit.log(ctx, editorID, id, models.AuditDelete, models.TargetFlatPage, nil)
	return nil
}
