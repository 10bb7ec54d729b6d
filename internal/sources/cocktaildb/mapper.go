package cocktaildb

import (
	"strconv"

	"github.com/MrSnakeDoc/barback/internal/domain"
)

// mapDrinks converts API records to drinks. Records without an id are skipped.
func mapDrinks(recs []record) []domain.Drink {
	out := make([]domain.Drink, 0, len(recs))
	for _, r := range recs {
		d, ok := mapDrink(r)
		if !ok {
			continue
		}
		out = append(out, d)
	}
	return out
}

func mapDrink(r record) (domain.Drink, bool) {
	id := r.str("idDrink")
	if id == "" {
		return domain.Drink{}, false
	}

	d := domain.Drink{
		ID:           id,
		Name:         r.str("strDrink"),
		Category:     r.str("strCategory"),
		Thumbnail:    r.str("strDrinkThumb"),
		Alcoholic:    domain.ParseAlcoholic(r.str("strAlcoholic")),
		Instructions: r.str("strInstructions"),
		Ingredients:  mapIngredients(r),
		Provenance:   domain.ProvenanceRemote,
	}

	// the reserved category never comes from the API
	if d.Category == domain.CreatedCategory {
		d.Category = ""
	}
	return d, true
}

// mapIngredients folds the numbered strIngredientN/strMeasureN fields into an
// ordered list. A measure without an ingredient is dropped.
func mapIngredients(r record) []domain.Ingredient {
	var out []domain.Ingredient
	for i := 1; i <= domain.MaxIngredients; i++ {
		n := strconv.Itoa(i)
		name := r.str("strIngredient" + n)
		if name == "" {
			continue
		}
		out = append(out, domain.Ingredient{
			Name:    name,
			Measure: r.str("strMeasure" + n),
		})
	}
	return out
}

// mapCategories extracts strCategory from list.php?c=list records, keeping
// API order.
func mapCategories(recs []record) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		if c := r.str("strCategory"); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// alcoholicParam is the filter.php?a= value for a flag.
func alcoholicParam(flag domain.Alcoholic) string {
	switch flag {
	case domain.AlcoholicYes:
		return "Alcoholic"
	case domain.AlcoholicNo:
		return "Non_Alcoholic"
	default:
		return ""
	}
}
