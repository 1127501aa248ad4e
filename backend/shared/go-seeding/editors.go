package seeding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// DefaultEditorID is stable so re-running the seed is a no-op.
var DefaultEditorID = uuid.MustParse("11111111-2222-3333-4444-555555555555")

const (
	DefaultEditorUsername = "seededitor"
	DefaultEditorPassword = "P@ssword123"
)

func SeedDefaultEditor(ctx context.Context, editorRepo repositories.EditorRepository) error {
	existing, err := editorRepo.GetByID(ctx, DefaultEditorID)
	if err != nil {
		return fmt.Errorf("error checking for existing editor by ID: %w", err)
	}
	if existing != nil {
		utils.Logger.Infof("Default editor already exists (ID=%s); skipping seed.", existing.ID)
		return nil
	}

	hashedPass, err := utils.HashPassword(DefaultEditorPassword)
	if err != nil {
		return fmt.Errorf("failed to bcrypt-hash default editor password: %w", err)
	}

	editor := &models.Editor{
		ID:           DefaultEditorID,
		Username:     DefaultEditorUsername,
		FullName:     "Seed Editor",
		Email:        "seededitor@example.com",
		PasswordHash: hashedPass,
		Role:         utils.AdminRole,
		IsActive:     true,
	}
	if err := editorRepo.Create(ctx, editor); err != nil {
		return fmt.Errorf("failed to insert default editor: %w", err)
	}

	utils.Logger.Infof("Successfully seeded default editor (ID=%s, username=%s).", DefaultEditorID, editor.Username)
	return nil
}
