package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/napierala85-collab/kalendarz-soboty/internal/auth"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/logger"
)

func loginDeps() deps.Deps {
	return deps.Deps{
		Logger:       logger.Nop(),
		TimeNow:      time.Now,
		Sessions:     auth.NewSessions("a-real-signing-secret", time.Hour),
		SitePassword: "site-pass",
	}
}

func postLogin(t *testing.T, d deps.Deps, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	w := httptest.NewRecorder()
	Login(d)(w, r)
	return w
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	d := loginDeps()
	w := postLogin(t, d, `{"password":"site-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, decodeBody(w, &resp))
	require.NotEmpty(t, resp.Token)
	require.NoError(t, d.Sessions.Verify(resp.Token))
}

func TestLoginWrongPassword(t *testing.T) {
	w := postLogin(t, loginDeps(), `{"password":"guess"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginUnconfigured(t *testing.T) {
	d := loginDeps()
	d.SitePassword = ""
	w := postLogin(t, d, `{"password":"site-pass"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestLoginRefusesInsecureSigningSecret(t *testing.T) {
	d := loginDeps()
	d.JWTSecretInsecure = true
	w := postLogin(t, d, `{"password":"site-pass"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// Dev mode tolerates the shipped default.
	d.DevMode = true
	w = postLogin(t, d, `{"password":"site-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestLoginBadBody(t *testing.T) {
	w := postLogin(t, loginDeps(), `{`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminProbe(t *testing.T) {
	d := loginDeps()
	d.AdminPassword = "hunter2"

	tests := []struct {
		name     string
		secret   string
		provided string
		want     int
	}{
		{"match", "hunter2", "hunter2", http.StatusOK},
		{"mismatch", "hunter2", "nope", http.StatusForbidden},
		{"missing header", "hunter2", "", http.StatusForbidden},
		{"unconfigured", "", "hunter2", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.AdminPassword = tt.secret
			r := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.provided != "" {
				r.Header.Set(auth.AdminHeader, tt.provided)
			}
			w := httptest.NewRecorder()
			AdminProbe(d)(w, r)
			require.Equal(t, tt.want, w.Code)
		})
	}
}
