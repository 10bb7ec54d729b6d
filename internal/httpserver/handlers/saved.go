package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
	"github.com/MrSnakeDoc/barback/internal/recipes"
)

type saveRequest struct {
	ID     string `json:"id"`
	Notes  string `json:"notes"`
	Rating *int   `json:"rating"`
}

// SavedList returns the saved set in insertion order.
func SavedList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newDrinksResponse(d.Recipes.Saved()), d.Logger)
	}
}

// SaveDrink saves a known drink with optional notes and rating. Saving an
// id twice answers 409.
func SaveDrink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req saveRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}
		req.ID = strings.TrimSpace(req.ID)
		if req.ID == "" {
			writeError(w, http.StatusBadRequest, "id is required", d.Logger)
			return
		}
		if req.Rating != nil && (*req.Rating < minRating || *req.Rating > maxRating) {
			writeError(w, http.StatusBadRequest, "rating must be between 1 and 5", d.Logger)
			return
		}

		if d.Recipes.IsSaved(req.ID) {
			writeError(w, http.StatusConflict, "drink is already saved", d.Logger)
			return
		}

		drink, ok := d.Recipes.FindByID(r.Context(), req.ID)
		if !ok {
			writeError(w, http.StatusNotFound, recipes.ErrNotFound.Error(), d.Logger)
			return
		}

		writeJSON(w, http.StatusCreated, d.Recipes.Save(r.Context(), drink, req.Notes, req.Rating), d.Logger)
	}
}
