package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"recipebox/internal/handlers"
)

func newRouter(cfg Config) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", handlers.Health)

	r.Route("/users", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(handlers.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
			r.Post("/create", handlers.CreateUser)
			r.Post("/token", handlers.IssueToken)
		})

		r.Group(func(r chi.Router) {
			r.Use(handlers.RequireAuthentication)
			r.Get("/me", handlers.Me)
			r.Put("/me", handlers.UpdateMe)
			r.Patch("/me", handlers.UpdateMe)
		})
	})

	r.Route("/recipe", func(r chi.Router) {
		r.Use(handlers.RequireAuthentication)

		r.Get("/tags", handlers.ListTags)
		r.Post("/tags", handlers.CreateTag)

		r.Get("/ingredients", handlers.ListIngredients)
		r.Post("/ingredients", handlers.CreateIngredient)

		r.Get("/recipes", handlers.ListRecipes)
		r.Post("/recipes", handlers.CreateRecipe)
		r.Get("/recipes/{id}", handlers.ShowRecipe)
		r.Put("/recipes/{id}", handlers.UpdateRecipe)
		r.Patch("/recipes/{id}", handlers.UpdateRecipe)
	})

	return r
}
