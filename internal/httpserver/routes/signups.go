package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/handlers"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/mw"
)

func init() { Register(registerSignups) }

func registerSignups(r chi.Router, d deps.Deps) {
	guard := mw.RequireSession(mw.SessionConfig{
		Sessions:       d.Sessions,
		InsecureSecret: d.JWTSecretInsecure,
		DevMode:        d.DevMode,
	}, d.Logger)

	r.Route("/signups", func(r chi.Router) {
		r.Use(guard)
		r.Get("/", handlers.ListSignups(d))
		r.Post("/", handlers.CreateSignup(d))
		r.Put("/", handlers.UpdateSignup(d))
		r.Patch("/", handlers.UpdateSignup(d))
		r.Delete("/", handlers.DeleteSignup(d))
	})
}
