package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/barback/internal/convert"
	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
	"github.com/MrSnakeDoc/barback/internal/logger"
	"github.com/MrSnakeDoc/barback/internal/recipes"
)

type ratingRequest struct {
	Rating *int `json:"rating"`
}

const (
	minRating = 1
	maxRating = 5
)

// Drink returns one drink by id. With ?unit= set, ingredient measures are
// converted to that system.
func Drink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(pathParam(r, "id"))
		drink, ok := d.Recipes.FindByID(r.Context(), id)
		if id == "" || !ok {
			writeError(w, http.StatusNotFound, recipes.ErrNotFound.Error(), d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, withUnits(r, drink), d.Logger)
	}
}

// RandomDrink returns one drink picked from the catalog.
func RandomDrink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drink, ok := d.Recipes.Random(r.Context())
		if !ok {
			writeError(w, http.StatusServiceUnavailable, "catalog is empty", d.Logger)
			return
		}
		writeJSON(w, http.StatusOK, withUnits(r, drink), d.Logger)
	}
}

// RateDrink sets the rating of a saved, created or catalog drink.
func RateDrink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(pathParam(r, "id"))

		var req ratingRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}
		if req.Rating == nil || *req.Rating < minRating || *req.Rating > maxRating {
			writeError(w, http.StatusBadRequest, "rating must be between 1 and 5", d.Logger)
			return
		}

		if id == "" || !d.Recipes.Rate(r.Context(), id, *req.Rating) {
			writeError(w, http.StatusNotFound, recipes.ErrNotFound.Error(), d.Logger)
			return
		}

		d.Logger.Debug("drink rated",
			logger.String("id", id),
			logger.Int("rating", *req.Rating))

		drink, _ := d.Recipes.FindByID(r.Context(), id)
		writeJSON(w, http.StatusOK, drink, d.Logger)
	}
}

// withUnits converts measures only when the caller asked for a unit system.
func withUnits(r *http.Request, drink domain.Drink) domain.Drink {
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		return drink
	}
	return convert.Drink(drink, convert.ParseSystem(unit))
}
