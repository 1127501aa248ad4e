package seeding

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/newsroom/mono-repo/backend/shared/go-models"
	"github.com/newsroom/mono-repo/backend/shared/go-repositories"
	"github.com/newsroom/mono-repo/backend/shared/go-utils"
)

type seedTerm struct {
	kind models.TaxonomyKind
	name string
	slug string
}

var defaultTerms = []seedTerm{
	{models.KindCategory, "News", "news"},
	{models.KindCategory, "Opinion", "opinion"},
	{models.KindCategory, "Analysis", "analysis"},
	{models.KindRegion, "National", "national"},
	{models.KindRegion, "International", "international"},
	{models.KindTopic, "Politics", "politics"},
	{models.KindTopic, "Economy", "economy"},
	{models.KindTopic, "Health", "health"},
	{models.KindTopic, "Environment", "environment"},
}

// SeedDefaultTaxonomy inserts the starter categories, regions and topics.
// Terms whose name already exists are left alone.
func SeedDefaultTaxonomy(ctx context.Context, termRepo repositories.TermRepository) error {
	created := 0
	for _, st := range defaultTerms {
		existing, err := termRepo.GetByName(ctx, st.kind, st.name)
		if err != nil {
			return fmt.Errorf("error checking for existing %s %q: %w", st.kind, st.name, err)
		}
		if existing != nil {
			continue
		}

		term := &models.Term{ID: uuid.New(), Kind: st.kind, Name: st.name, Slug: st.slug}
		if err := termRepo.Create(ctx, term); err != nil {
			if utils.IsUniqueViolation(err, repositories.TermSlugConstraint(st.kind)) {
				utils.Logger.Warnf("Slug %q already taken for %s; skipping.", st.slug, st.kind)
				continue
			}
			return fmt.Errorf("failed to insert %s %q: %w", st.kind, st.name, err)
		}
		created++
	}

	utils.Logger.Infof("Seeded %d taxonomy terms.", created)
	return nil
}
