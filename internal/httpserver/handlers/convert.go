package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/barback/internal/convert"
	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
)

type convertResponse struct {
	Input  string `json:"input"`
	Unit   string `json:"unit"`
	Result string `json:"result"`
}

// Convert rewrites a single measure, e.g. ?q=2 oz&unit=metric.
func Convert(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		input := strings.TrimSpace(q.Get("q"))
		if input == "" {
			writeError(w, http.StatusBadRequest, "q is required", d.Logger)
			return
		}

		system := convert.ParseSystem(q.Get("unit"))
		writeJSON(w, http.StatusOK, convertResponse{
			Input:  input,
			Unit:   system.String(),
			Result: convert.Convert(input, system),
		}, d.Logger)
	}
}
