package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	internal_utils "github.com/newsroom/mono-repo/backend/services/admin-service/internal/utils"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// TaxonomyService manages categories, regions and topics.
type TaxonomyService struct {
	terms repositories.TermRepository
	audit auditLogger
}

func NewTaxonomyService(terms repositories.TermRepository, auditRepo repositories.AuditLogRepository) *TaxonomyService {
	return &TaxonomyService{terms: terms, audit: auditLogger{repo: auditRepo}}
}

func (s *TaxonomyService) List(ctx context.Context, kind models.TaxonomyKind, search string) ([]*models.Term, error) {
	terms, err := s.terms.List(ctx, kind, strings.TrimSpace(search))
	if err != nil {
		return nil, utils.Internal("Failed to list "+string(kind)+" terms", err)
	}
	if terms == nil {
		terms = []*models.Term{}
	}
	return terms, nil
}

func (s *TaxonomyService) Get(ctx context.Context, kind models.TaxonomyKind, id uuid.UUID) (*models.Term, error) {
	t, err := s.terms.GetByID(ctx, kind, id)
	if err != nil {
		return nil, utils.Internal("Failed to load "+string(kind), err)
	}
	if t == nil {
		return nil, utils.NotFound(strings.ToUpper(string(kind[:1])) + string(kind[1:]) + " not found")
	}
	return t, nil
}

// termFromRequest prepopulates the slug from the name when none was given.
func termFromRequest(kind models.TaxonomyKind, req dtos.TermRequest) (*models.Term, error) {
	t := &models.Term{
		Kind:        kind,
		Name:        strings.TrimSpace(req.Name),
		Slug:        strings.TrimSpace(req.Slug),
		Description: req.Description,
	}
	if t.Slug == "" {
		t.Slug = internal_utils.Slugify(t.Name)
	}
	if t.Slug == "" {
		return nil, fieldErrors(fieldError("slug", "required", "Enter a slug; none can be derived from this name."))
	}
	return t, nil
}

func duplicateTermSlug(kind models.TaxonomyKind, err error) error {
	if utils.IsUniqueViolation(err, repositories.TermSlugConstraint(kind)) {
		return conflict("A "+string(kind)+" with this slug already exists", utils.ErrDuplicateSlug)
	}
	return nil
}

func (s *TaxonomyService) Create(ctx context.Context, editorID uuid.UUID, kind models.TaxonomyKind, req dtos.TermRequest) (*models.Term, error) {
	t, err := termFromRequest(kind, req)
	if err != nil {
		return nil, err
	}
	t.ID = uuid.New()
	if err := s.terms.Create(ctx, t); err != nil {
		if dup := duplicateTermSlug(kind, err); dup != nil {
			return nil, dup
		}
		return nil, utils.Internal("Failed to create "+string(kind), err)
	}
	s.audit.log(ctx, editorID, t.ID, models.AuditCreate, kind.AuditTarget(), t)
	return t, nil
}

func (s *TaxonomyService) Update(ctx context.Context, editorID uuid.UUID, kind models.TaxonomyKind, id uuid.UUID, req dtos.TermRequest) (*models.Term, error) {
	current, err := s.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if current.Version > req.Version {
		return nil, staleVersion(string(kind), current)
	}
	t, err := termFromRequest(kind, req)
	if err != nil {
		return nil, err
	}
	t.ID = id
	t.CreatedAt = current.CreatedAt

	tag, err := s.terms.UpdateIfVersion(ctx, t, current.Version)
	if err != nil {
		if dup := duplicateTermSlug(kind, err); dup != nil {
			return nil, dup
		}
		return nil, utils.Internal("Failed to update "+string(kind), err)
	}
	if tag.RowsAffected() == 0 {
		latest, err := s.Get(ctx, kind, id)
		if err != nil {
			return nil, err
		}
		return nil, staleVersion(string(kind), latest)
	}
	s.audit.log(ctx, editorID, id, models.AuditUpdate, kind.AuditTarget(), t)
	return s.Get(ctx, kind, id)
}

func (s *TaxonomyService) Delete(ctx context.Context, editorID uuid.UUID, kind models.TaxonomyKind, id uuid.UUID) error {
	if err := s.terms.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return utils.NotFound(strings.ToUpper(string(kind[:1])) + string(kind[1:]) + " not found")
		}
		return utils.Internal("Failed to delete "+string(kind), err)
	}
	s.audit.log(ctx, editorID, id, models.AuditDelete, kind.AuditTarget(), nil)
	return nil
}
