package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
	"github.com/MrSnakeDoc/barback/internal/logger"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Message   string `json:"message"`
}

// Reload asks the catalog reloader for a full refresh. It never blocks:
// a refresh already queued answers 429.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual catalog refresh triggered via endpoint",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusAccepted, reloadResponse{
				Triggered: true,
				Message:   "catalog refresh triggered",
			}, d.Logger)
		default:
			d.Logger.Warn("catalog refresh already pending",
				logger.String("remote_ip", r.RemoteAddr))
			writeJSON(w, http.StatusTooManyRequests, reloadResponse{
				Message: "catalog refresh already pending, please wait",
			}, d.Logger)
		}
	}
}
