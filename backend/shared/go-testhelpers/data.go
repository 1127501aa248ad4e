// backend/shared/go-testhelpers/data.go

package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

// UniqueSlug generates a unique slug for testing.
func UniqueSlug(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CreateTestEditor creates and persists a new active editor.
func (h *TestHelper) CreateTestEditor(ctx context.Context, fullName, role string) *models.Editor {
	hash, err := utils.HashPassword("P@ssword123")
	require.NoError(h.T, err)

	e := &models.Editor{
		ID:           uuid.New(),
		Username:     UniqueSlug("editor"),
		FullName:     fullName,
		Email:        UniqueSlug("editor") + "@example.com",
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	require.NoError(h.T, h.EditorRepo.Create(ctx, e), "Failed to create test editor")
	return e
}

// CreateTestTopic creates and persists a topic with a unique slug.
func (h *TestHelper) CreateTestTopic(ctx context.Context, name string) *models.Term {
	t := &models.Term{
		ID:   uuid.New(),
		Kind: models.KindTopic,
		Name: name,
		Slug: UniqueSlug("topic"),
	}
	require.NoError(h.T, h.TermRepo.Create(ctx, t), "Failed to create test topic")
	return t
}

// CreateTestAuthor creates and persists an author.
func (h *TestHelper) CreateTestAuthor(ctx context.Context, first, last string) *models.Author {
	a := &models.Author{ID: uuid.New(), FirstNames: first, LastName: last}
	require.NoError(h.T, h.AuthorRepo.Create(ctx, a), "Failed to create test author")
	return a
}

// CreateTestArticle creates and persists a minimal article last saved by editor.
func (h *TestHelper) CreateTestArticle(ctx context.Context, title string, editor *models.Editor) *models.Article {
	a := &models.Article{
		ID:                 uuid.New(),
		Title:              title,
		Slug:               UniqueSlug("article"),
		Body:               "<p>Body</p>",
		UseEditor:          true,
		PrimaryImageSize:   utils.DefaultPrimaryImageSize,
		SummaryImageSize:   utils.DefaultSummaryImageSize,
		FacebookSendStatus: string(models.ScheduleScheduled),
		IncludeInRSS:       true,
		CommentsOn:         true,
	}
	if editor != nil {
		a.EditorID = &editor.ID
	}
	require.NoError(h.T, h.ArticleRepo.Create(ctx, a), "Failed to create test article")

	created, err := h.ArticleRepo.GetByID(ctx, a.ID)
	require.NoError(h.T, err)
	require.NotNil(h.T, created, "Failed to fetch article immediately after creation")
	return created
}
