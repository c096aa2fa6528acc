package handlers

import (
	"net/http"

	"github.com/napierala85-collab/kalendarz-soboty/internal/auth"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
)

type adminResponse struct {
	OK bool `json:"ok"`
}

// AdminProbe answers whether the request's admin header matches the
// configured administrator secret. The frontend uses it to unlock the
// admin overlay; every privileged mutation re-checks the header itself.
func AdminProbe(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.AdminPassword == "" {
			http.Error(w, "server not configured (admin password missing)", http.StatusInternalServerError)
			return
		}
		if !auth.IsAdmin(r, d.AdminPassword) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		writeJSON(w, http.StatusOK, adminResponse{OK: true})
	}
}
