package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

// searchParams holds the trimmed query string of /api/search.
type searchParams struct {
	query      string
	ingredient string
	alcoholic  string
	categories []string // repeated ?category=, deduplicated
}

func parseSearchParams(r *http.Request) searchParams {
	q := r.URL.Query()
	p := searchParams{
		query:      strings.TrimSpace(q.Get("q")),
		ingredient: strings.TrimSpace(q.Get("ingredient")),
		alcoholic:  strings.TrimSpace(q.Get("alcoholic")),
	}

	seen := make(map[string]bool)
	for _, c := range q["category"] {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		p.categories = append(p.categories, c)
	}
	return p
}

func (p searchParams) empty() bool {
	return p.query == "" && p.ingredient == "" && p.alcoholic == "" && len(p.categories) == 0
}

// Search finds drinks by name, ingredient, alcoholic flag or categories. The
// first parameter set picks the lookup, in that order, and the others narrow
// its result. Several categories are a union.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := parseSearchParams(r)
		if p.empty() {
			writeError(w, http.StatusBadRequest, "one of q, ingredient, alcoholic or category is required", d.Logger)
			return
		}

		flag := domain.AlcoholicUnknown
		if p.alcoholic != "" {
			flag = domain.ParseAlcoholic(p.alcoholic)
			if flag == domain.AlcoholicUnknown {
				writeError(w, http.StatusBadRequest, "alcoholic must be alcoholic or non alcoholic", d.Logger)
				return
			}
		}

		d.Logger.Info("search request",
			logger.String("q", p.query),
			logger.String("ingredient", p.ingredient),
			logger.String("alcoholic", string(flag)),
			logger.Int("categories", len(p.categories)))

		writeJSON(w, http.StatusOK, newDrinksResponse(runSearch(r.Context(), d, p, flag)), d.Logger)
	}
}

func runSearch(ctx context.Context, d deps.Deps, p searchParams, flag domain.Alcoholic) []domain.Drink {
	var found []domain.Drink
	switch {
	case p.query != "":
		found = d.Recipes.Search(ctx, p.query)
		if p.ingredient != "" {
			found = filterDrinks(found, func(x domain.Drink) bool { return x.HasIngredient(p.ingredient) })
		}
	case p.ingredient != "":
		found = d.Recipes.FindByIngredient(ctx, p.ingredient)
	case flag != domain.AlcoholicUnknown:
		found = d.Recipes.FindByAlcoholic(ctx, flag)
	default:
		return byCategories(ctx, d, p.categories)
	}

	if flag != domain.AlcoholicUnknown {
		found = filterDrinks(found, func(x domain.Drink) bool { return x.Alcoholic == flag })
	}
	if len(p.categories) > 0 {
		in := make(map[string]bool, len(p.categories))
		for _, c := range p.categories {
			in[c] = true
		}
		found = filterDrinks(found, func(x domain.Drink) bool { return in[x.Category] })
	}
	return found
}

// byCategories unions the drinks of every category, first occurrence wins.
func byCategories(ctx context.Context, d deps.Deps, categories []string) []domain.Drink {
	var out []domain.Drink
	seen := make(map[string]bool)
	for _, c := range categories {
		for _, x := range d.Recipes.FindByCategory(ctx, c) {
			if seen[x.ID] {
				continue
			}
			seen[x.ID] = true
			out = append(out, x)
		}
	}
	return out
}

func filterDrinks(in []domain.Drink, keep func(domain.Drink) bool) []domain.Drink {
	out := make([]domain.Drink, 0, len(in))
	for _, d := range in {
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}
