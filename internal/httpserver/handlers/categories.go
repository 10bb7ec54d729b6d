package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
)

type categoriesResponse struct {
	Categories []domain.CategorySummary `json:"categories"`
}

type drinksResponse struct {
	Count  int            `json:"count"`
	Drinks []domain.Drink `json:"drinks"`
}

func newDrinksResponse(drinks []domain.Drink) drinksResponse {
	if drinks == nil {
		drinks = []domain.Drink{}
	}
	return drinksResponse{Count: len(drinks), Drinks: drinks}
}

// Categories lists browsable categories, the reserved one last.
func Categories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := d.Categories.List(r.Context())
		if list == nil {
			list = []domain.CategorySummary{}
		}
		writeJSON(w, http.StatusOK, categoriesResponse{Categories: list}, d.Logger)
	}
}

// Category lists the drinks of one category across every provenance.
func Category(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := pathParam(r, "name")
		if strings.TrimSpace(name) == "" {
			writeError(w, http.StatusBadRequest, "category name is required", d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, newDrinksResponse(d.Recipes.FindByCategory(r.Context(), name)), d.Logger)
	}
}

// pathParam returns the unescaped value of a chi route parameter.
func pathParam(r *http.Request, key string) string {
	raw := chi.URLParam(r, key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
