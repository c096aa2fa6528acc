package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/handlers"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/mw"
)

func init() { Register(registerHealthz) }

func registerHealthz(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.InternalCIDRS, d.TrustProxy, d.Logger)).Get("/healthz", handlers.Healthz(d))
}
