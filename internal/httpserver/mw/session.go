package mw

import (
	"net/http"

	"github.com/napierala85-collab/kalendarz-soboty/internal/auth"
	"github.com/napierala85-collab/kalendarz-soboty/internal/logger"
)

// SessionConfig governs the bearer-session guard.
type SessionConfig struct {
	Sessions       *auth.Sessions
	InsecureSecret bool // signing secret is still the shipped default
	DevMode        bool // tolerate the insecure secret locally
}

// RequireSession rejects requests without a valid session token. An
// unconfigured signing secret outside dev mode is surfaced as a server
// misconfiguration, never as a caller error.
func RequireSession(cfg SessionConfig, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.InsecureSecret && !cfg.DevMode {
				http.Error(w, "server not configured (session signing secret is the shipped default)", http.StatusInternalServerError)
				return
			}

			token := auth.BearerToken(r)
			if token == "" {
				log.Debug("session guard: missing bearer token", logger.String("path", r.URL.Path))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if err := cfg.Sessions.Verify(token); err != nil {
				log.Debug("session guard: invalid token",
					logger.String("path", r.URL.Path),
					logger.Error(err))
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
