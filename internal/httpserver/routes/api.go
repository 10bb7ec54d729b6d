package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/barback/internal/httpserver/deps"
	"github.com/MrSnakeDoc/barback/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/barback/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:      d.RateBurst,
			PerMinute:  d.RatePerMinute,
			MaxEntries: 10_000,
			TrustProxy: d.TrustProxy,
		}))

		api.Get("/categories", handlers.Categories(d))
		api.Get("/categories/{name}", handlers.Category(d))

		api.Get("/drinks/random", handlers.RandomDrink(d))
		api.Get("/drinks/{id}", handlers.Drink(d))
		api.Post("/drinks/{id}/rating", handlers.RateDrink(d))

		api.Get("/search", handlers.Search(d))
		api.Get("/convert", handlers.Convert(d))

		api.Get("/saved", handlers.SavedList(d))
		api.Post("/saved", handlers.SaveDrink(d))

		api.Get("/created", handlers.CreatedList(d))
		api.Post("/created", handlers.CreateDrink(d))
	})
}
