package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type UserEditService struct {
	userEdits repositories.UserEditRepository
	retention time.Duration
	now       func() time.Time
}

func NewUserEditService(userEdits repositories.UserEditRepository, retention time.Duration) *UserEditService {
	return &UserEditService{userEdits: userEdits, retention: retention, now: time.Now}
}

// List returns user edits newest first, optionally for one article.
func (s *UserEditService) List(ctx context.Context, articleID *uuid.UUID, page, pageSize int) ([]*models.UserEdit, error) {
	limit, offset := pageBounds(page, pageSize)
	edits, err := s.userEdits.List(ctx, articleID, limit, offset)
	if err != nil {
		return nil, utils.Internal("Failed to list user edits", err)
	}
	if edits == nil {
		edits = []*models.UserEdit{}
	}
	return edits, nil
}

// Prune deletes user edits older than the retention window.
func (s *UserEditService) Prune(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.retention)
	n, err := s.userEdits.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	utils.Logger.Infof("Pruned %d user edits older than %s", n, cutoff.Format(time.RFC3339))
	return n, nil
}
