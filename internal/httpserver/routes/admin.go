package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/handlers"
)

func init() { Register(registerAdmin) }

func registerAdmin(r chi.Router, d deps.Deps) {
	r.Get("/admin", handlers.AdminProbe(d))
}
