package app

import (
	"context"
	"fmt"

	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-seeding"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

// SeedDefaults inserts the default taxonomy and, when withEditor is set,
// the default admin editor. Both steps are idempotent.
func SeedDefaults(
	ctx context.Context,
	termRepo repositories.TermRepository,
	editorRepo repositories.EditorRepository,
	withEditor bool,
) error {
	if err := seeding.SeedDefaultTaxonomy(ctx, termRepo); err != nil {
		return fmt.Errorf("seed taxonomy: %w", err)
	}
	if !withEditor {
		utils.Logger.Info("Default editor seeding disabled.")
		return nil
	}
	if err := seeding.SeedDefaultEditor(ctx, editorRepo); err != nil {
		return fmt.Errorf("seed default editor: %w", err)
	}
	return nil
}
