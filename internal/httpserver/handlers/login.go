package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/napierala85-collab/kalendarz-soboty/internal/auth"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/logger"
	"github.com/napierala85-collab/kalendarz-soboty/internal/metrics"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the shared site password for a signed session token.
func Login(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.SitePassword == "" {
			http.Error(w, "server not configured (site password missing)", http.StatusInternalServerError)
			return
		}
		if d.JWTSecretInsecure && !d.DevMode {
			d.Logger.Error("login refused: session signing secret is the shipped default")
			http.Error(w, "server not configured (session signing secret is the shipped default)", http.StatusInternalServerError)
			return
		}

		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if !auth.SecretsMatch(req.Password, d.SitePassword) {
			metrics.LoginFailures.Inc()
			d.Logger.Warn("login failed", logger.String("remote", r.RemoteAddr))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		token, err := d.Sessions.Issue(d.TimeNow())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, loginResponse{Token: token})
	}
}
