package handlers

import (
	"errors"
	"net/http"

	"github.com/MrSnakeDoc/barback/internal/domain"
	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

type createRequest struct {
	Name         string              `json:"name"`
	Thumbnail    string              `json:"thumbnail"`
	Alcoholic    string              `json:"alcoholic"`
	Instructions string              `json:"instructions"`
	Ingredients  []domain.Ingredient `json:"ingredients"`
	Notes        string              `json:"notes"`
	Rating       *int                `json:"rating"`
}

func (c createRequest) toDrink() domain.Drink {
	d := domain.Drink{
		Name:         c.Name,
		Thumbnail:    c.Thumbnail,
		Alcoholic:    domain.ParseAlcoholic(c.Alcoholic),
		Instructions: c.Instructions,
		Ingredients:  c.Ingredients,
	}
	if c.Notes != "" || c.Rating != nil {
		d.Annotation = &domain.Annotation{Notes: c.Notes, Rating: c.Rating}
	}
	return d
}

// CreatedList returns the user-authored drinks in insertion order.
func CreatedList(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newDrinksResponse(d.Recipes.Created()), d.Logger)
	}
}

// CreateDrink stores a user-authored drink under a fresh id.
func CreateDrink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		}
		if req.Rating != nil && (*req.Rating < minRating || *req.Rating > maxRating) {
			writeError(w, http.StatusBadRequest, "rating must be between 1 and 5", d.Logger)
			return
		}

		drink, err := d.Recipes.Create(r.Context(), req.toDrink())
		switch {
		case errors.Is(err, domain.ErrInvalidDrink):
			writeError(w, http.StatusBadRequest, err.Error(), d.Logger)
			return
		case err != nil:
			d.Logger.Error("failed to create drink", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to create drink", d.Logger)
			return
		}

		writeJSON(w, http.StatusCreated, drink, d.Logger)
	}
}
