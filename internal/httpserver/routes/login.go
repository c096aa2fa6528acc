package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/handlers"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/mw"
)

func init() { Register(registerLogin) }

func registerLogin(r chi.Router, d deps.Deps) {
	// Token bucket per client IP against password guessing.
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             5,
		RefillPerIPPerMin: 3,
		MaxEntries:        4096,
		TrustProxy:        d.TrustProxy,
	})
	r.With(limit).Post("/login", handlers.Login(d))
}
