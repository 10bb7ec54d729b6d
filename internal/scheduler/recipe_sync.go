package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/logger"
	"github.com/MrSnakeDoc/barback/internal/recipes"
	"github.com/MrSnakeDoc/barback/internal/sources/seed"
)

// RecipeSyncer restores the saved and created sets on startup and imports
// the seed recipes when no created recipe survived.
type RecipeSyncer struct {
	persister recipes.Persister
	repo      *recipes.Repository
	seedFile  string
	logger    logger.Logger
}

// NewRecipeSyncer creates a new recipe syncer. persister may be nil and
// seedFile may be empty.
func NewRecipeSyncer(
	persister recipes.Persister,
	repo *recipes.Repository,
	seedFile string,
	log logger.Logger,
) *RecipeSyncer {
	return &RecipeSyncer{
		persister: persister,
		repo:      repo,
		seedFile:  seedFile,
		logger:    log,
	}
}

// Sync loads the persisted sets into the repository, then seeds.
func (rs *RecipeSyncer) Sync(ctx context.Context) error {
	if err := rs.restore(ctx); err != nil {
		return err
	}
	rs.seed(ctx)
	return nil
}

func (rs *RecipeSyncer) restore(ctx context.Context) error {
	if rs.persister == nil {
		return nil
	}

	rs.logger.Info("restoring recipes from redis")

	saved, err := rs.persister.LoadRecipes(ctx, domain.ProvenanceSaved)
	if err != nil {
		return fmt.Errorf("failed to load saved recipes: %w", err)
	}
	created, err := rs.persister.LoadRecipes(ctx, domain.ProvenanceCreated)
	if err != nil {
		return fmt.Errorf("failed to load created recipes: %w", err)
	}

	rs.repo.Restore(saved, created)

	rs.logger.Info("restored recipes from redis",
		logger.Int("saved", len(saved)),
		logger.Int("created", len(created)))
	return nil
}

// seed is best effort: a broken seed file never blocks startup.
func (rs *RecipeSyncer) seed(ctx context.Context) {
	if rs.seedFile == "" {
		return
	}
	if n := len(rs.repo.Created()); n > 0 {
		rs.logger.Debug("created recipes present, skipping seed",
			logger.Int("created", n))
		return
	}

	file, err := seed.NewLoader(rs.seedFile).Load()
	if err != nil {
		rs.logger.Warn("failed to load seed recipes", logger.Error(err))
		return
	}

	drinks, err := seed.NewMapper().MapRecipes(file)
	if err != nil {
		rs.logger.Warn("some seed recipes were skipped", logger.Error(err))
	}

	imported := 0
	for _, d := range drinks {
		if _, err := rs.repo.Create(ctx, d); err != nil {
			rs.logger.Warn("failed to import seed recipe",
				logger.String("name", d.Name),
				logger.Error(err))
			continue
		}
		imported++
	}

	if imported > 0 {
		rs.logger.Info("imported seed recipes",
			logger.Int("count", imported))
	}
}
