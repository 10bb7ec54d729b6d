package recipes

import (
	"context"
	"strings"

	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

// CategoryIndex lists the navigable categories. It keeps no state of its own
// and is recomputed on every call.
type CategoryIndex struct {
	repo   *Repository
	remote Remote
	logger logger.Logger
}

// NewCategoryIndex creates an index over repo. remote may be nil.
func NewCategoryIndex(repo *Repository, remote Remote, log logger.Logger) *CategoryIndex {
	return &CategoryIndex{repo: repo, remote: remote, logger: log}
}

// List returns the remote categories in enumeration order followed by the
// synthetic created category.
func (c *CategoryIndex) List(ctx context.Context) []domain.CategorySummary {
	names := c.remoteNames(ctx)
	if len(names) == 0 {
		c.repo.EnsureCatalog(ctx)
		names = c.repo.catalog.Categories()
	}

	out := make([]domain.CategorySummary, 0, len(names)+1)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if !navigable(name) || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, domain.CategorySummary{
			Name:       name,
			HasEntries: len(c.repo.FindByCategory(ctx, name)) > 0,
		})
	}

	return append(out, domain.CategorySummary{
		Name:       domain.CreatedCategory,
		HasEntries: len(c.repo.Created()) > 0,
	})
}

func (c *CategoryIndex) remoteNames(ctx context.Context) []string {
	if c.remote == nil {
		return nil
	}
	names, err := c.remote.ListCategories(ctx)
	if err != nil {
		c.logger.Warn("failed to list remote categories, using catalog",
			logger.Error(err))
		return nil
	}
	return names
}

// navigable drops sub-labels like "Coffee / Tea" and the reserved name.
func navigable(name string) bool {
	if name == "" || name == domain.CreatedCategory {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
