package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready  bool `json:"ready"`
	Drinks int  `json:"drinks"`
}

// Readyz answers 503 until the catalog snapshot holds at least one drink.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := d.Catalog.Count()
		status := http.StatusOK
		if n == 0 {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, readyzResponse{Ready: n > 0, Drinks: n}, d.Logger)
	}
}
