package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/Aayush4518/WhisperBox-SQL/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	root.Get("/", func(w http.ResponseWriter, r *http.Request) {
		render.PlainText(w, r, "Backend is working!")
	})

	root.Route("/forms", func(r chi.Router) {
		r.Post("/", CreateForm(app))
		r.Get("/", ListForms(app))
		r.Get("/{formID}", GetFormById(app))
		r.Put("/{formID}", UpdateForm(app))
		r.Delete("/{formID}", DeleteForm(app))

		r.Post("/{formID}/responses", SubmitResponses(app))
		r.Get("/{formID}/responses", GetFormResponses(app))
	})

	return root
}
