package seed

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/MrSnakeDoc/barback/internal/domain"
)

// Mapper converts seed recipes to domain.Drink entities
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapRecipes converts the file to drinks ready for Repository.Create.
// Invalid recipes are skipped and reported together in the returned error,
// the valid ones are still returned.
func (m *Mapper) MapRecipes(file RecipesFile) ([]domain.Drink, error) {
	var (
		drinks []domain.Drink
		errs   []error
	)

	for i, props := range file.Recipes {
		d := domain.Drink{
			Name:         strings.TrimSpace(props.Name),
			Category:     domain.CreatedCategory,
			Thumbnail:    strings.TrimSpace(props.Thumbnail),
			Alcoholic:    domain.ParseAlcoholic(props.Alcoholic),
			Instructions: strings.TrimSpace(props.Instructions),
			Ingredients:  mapIngredients(props.Ingredients),
			Provenance:   domain.ProvenanceCreated,
		}
		if props.Notes != "" || props.Rating != nil {
			d.Annotation = &domain.Annotation{Notes: props.Notes, Rating: props.Rating}
		}

		if err := d.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("recipe %d (%q): %w", i+1, props.Name, err))
			continue
		}
		drinks = append(drinks, d)
	}

	return drinks, errors.Join(errs...)
}

// mapIngredients flattens the single-key maps. A map with several keys is
// read in key order, YAML maps carry no order of their own.
func mapIngredients(in []map[string]string) []domain.Ingredient {
	var out []domain.Ingredient
	for _, m := range in {
		names := make([]string, 0, len(m))
		for name := range m {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			out = append(out, domain.Ingredient{
				Name:    strings.TrimSpace(name),
				Measure: strings.TrimSpace(m[name]),
			})
		}
	}
	return out
}
