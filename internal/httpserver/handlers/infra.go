package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
)

type componentStatus struct {
	OK           bool   `json:"ok"`
	DrinksLoaded *int   `json:"drinks_loaded,omitempty"`
	LastRefresh  string `json:"last_refresh,omitempty"`
	Mode         string `json:"mode,omitempty"`
	Impact       string `json:"impact,omitempty"`
	Error        string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of the catalog and of its backing store.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		drinks := d.Catalog.Count()
		lastRefresh := d.Catalog.LastRefresh()
		lastRefreshStr := "never"
		if !lastRefresh.IsZero() {
			lastRefreshStr = lastRefresh.Format(time.RFC3339)
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:           drinks > 0,
				DrinksLoaded: &drinks,
				LastRefresh:  lastRefreshStr,
			},
			"backing": checkBacking(r.Context(), d),
			"recipes": {
				OK:   true,
				Mode: recipesMode(d),
			},
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		}, d.Logger)
	}
}

func overallStatus(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical" // nothing to browse
	}
	if c, ok := components["backing"]; ok && !c.OK {
		return "degraded" // catalog and recipes are not persisted
	}
	return "ok"
}

func recipesMode(d deps.Deps) string {
	if d.RedisStore == nil {
		return "memory"
	}
	return "redis"
}

func checkBacking(parent context.Context, d deps.Deps) componentStatus {
	if d.RedisStore == nil {
		return componentStatus{
			OK:     true,
			Mode:   "csv",
			Impact: "recipes-not-persisted",
		}
	}

	ctx, cancel := context.WithTimeout(parent, 2*time.Second)
	defer cancel()

	if err := d.RedisStore.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "redis",
			Impact: "persistence-disabled",
			Error:  "unreachable",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "redis",
		Impact: "persistence-enabled",
	}
}
