package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
	"github.com/MrSnakeDoc/barback/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/barback/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

// registerAdmin wires the operational endpoints behind the CIDR guard.
// /reload and /infra additionally require an allowed Host header.
func registerAdmin(r chi.Router, d deps.Deps) {
	cidr := mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
	host := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.With(cidr).Get("/healthz", handlers.Healthz(d))
	r.With(cidr).Get("/readyz", handlers.Readyz(d))
	r.With(cidr).Handle("/metrics", promhttp.Handler())
	r.With(cidr, host).Get("/infra", handlers.Infra(d))
	r.With(cidr, host).Post("/reload", handlers.Reload(d))
}
