package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/services/admin-service/internal/dtos"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type MostPopularService struct {
	repo  repositories.MostPopularRepository
	audit auditLogger
}

func NewMostPopularService(repo repositories.MostPopularRepository, auditRepo repositories.AuditLogRepository) *MostPopularService {
	return &MostPopularService{repo: repo, audit: auditLogger{repo: auditRepo}}
}

func (s *MostPopularService) List(ctx context.Context, limit int) ([]*models.MostPopular, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	rows, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, utils.Internal("Failed to list most popular snapshots", err)
	}
	if rows == nil {
		rows = []*models.MostPopular{}
	}
	return rows, nil
}

// Create stores a new snapshot. Blank lines in the list are dropped.
func (s *MostPopularService) Create(ctx context.Context, editorID uuid.UUID, req dtos.MostPopularRequest) (*models.MostPopular, error) {
	var lines []string
	for _, l := range strings.Split(req.ArticleList, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return nil, fieldErrors(fieldError("article_list", "required", "The article list is empty."))
	}
	mp := &models.MostPopular{ID: uuid.New(), ArticleList: strings.Join(lines, "\n")}
	if err := s.repo.Create(ctx, mp); err != nil {
		return nil, utils.Internal("Failed to store most popular snapshot", err)
	}
	s.audit.log(ctx, editorID, mp.ID, models.AuditCreate, models.TargetMostPopular, nil)
	return mp, nil
}
