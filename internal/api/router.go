package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(CORS(app.AllowedOrigins))

	r.Get("/ping", PingHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.HealthHandler)

		r.Route("/content/{kind}", func(r chi.Router) {
			r.Get("/", app.ListContentHandler)
			r.Get("/categories", app.CategoriesHandler)
			r.Get("/{id}", app.GetContentHandler)
		})

		r.Get("/player/ws", app.PlayerSocketHandler)
	})

	return r
}
