package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/napierala85-collab/kalendarz-soboty/internal/auth"
	"github.com/napierala85-collab/kalendarz-soboty/internal/board"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/routes"
	"github.com/napierala85-collab/kalendarz-soboty/internal/logger"
	"github.com/napierala85-collab/kalendarz-soboty/internal/schedule"
	redisstore "github.com/napierala85-collab/kalendarz-soboty/internal/store/redis"
)

const (
	sitePassword  = "site-pass"
	adminPassword = "admin-pass"
)

type env struct {
	srv   *httptest.Server
	deps  deps.Deps
	token string
}

// newEnv stands up the whole route tree over miniredis with the board
// clock pinned to the Monday morning before the 2025-03-15 Saturday.
func newEnv(t *testing.T) *env {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	return newEnvAt(t, time.Date(2025, 3, 10, 9, 0, 0, 0, loc))
}

func newEnvAt(t *testing.T, now time.Time) *env {
	t.Helper()

	m := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sched, err := schedule.New(schedule.Settings{
		Horizon:    "2030-12-31",
		CutoffHour: 11,
		Timezone:   "Europe/Warsaw",
	})
	require.NoError(t, err)

	d := deps.Deps{
		Logger:    logger.Nop(),
		StartTime: time.Now(),
		TimeNow:   func() time.Time { return now },
		Ledger:    board.NewLedger(redisstore.NewStore(client), sched, logger.Nop()),
		// Token expiry is checked against the real clock even though the
		// board clock is pinned to 2025, so the TTL has to reach past today.
		Sessions:      auth.NewSessions("integration-signing-secret", 20*365*24*time.Hour),
		SitePassword:  sitePassword,
		AdminPassword: adminPassword,
	}

	r := chi.NewRouter()
	routes.RegisterAll(r, d)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &env{srv: srv, deps: d}
}

func (e *env) request(t *testing.T, method, path, body string, admin bool) (*http.Response, []byte) {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, e.srv.URL+path, rd)
	require.NoError(t, err)
	if e.token != "" {
		req.Header.Set("Authorization", "Bearer "+e.token)
	}
	if admin {
		req.Header.Set(auth.AdminHeader, adminPassword)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	return resp, data
}

func (e *env) login(t *testing.T) {
	t.Helper()
	resp, data := e.request(t, http.MethodPost, "/login", fmt.Sprintf(`{"password":%q}`, sitePassword), false)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	e.token = body.Token
}

func TestBoardFlow(t *testing.T) {
	e := newEnv(t)

	// Wrong password is rejected, then a real login succeeds.
	resp, _ := e.request(t, http.MethodPost, "/login", `{"password":"guess"}`, false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	e.login(t)

	// An empty board reads back as empty maps, not an error.
	resp, data := e.request(t, http.MethodGet, "/signups", "", false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var doc board.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Empty(t, doc.Signups)

	// Register two participants; order and identity are preserved.
	resp, _ = e.request(t, http.MethodPost, "/signups", `{"date":"2025-03-15","name":"Alice","note":"grill"}`, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, data = e.request(t, http.MethodPost, "/signups", `{"date":"2025-03-15","name":"Bob"}`, false)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &doc))
	list := doc.Signups["2025-03-15"]
	require.Len(t, list, 2)
	require.Equal(t, "Alice", list[0].Name)
	require.NotEqual(t, list[0].TS, list[1].TS)

	// Admin publishes a plan; non-admin cannot.
	resp, _ = e.request(t, http.MethodPut, "/signups", `{"mode":"plan","date":"2025-03-15","plan":"meet at noon"}`, false)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp, data = e.request(t, http.MethodPut, "/signups", `{"mode":"plan","date":"2025-03-15","plan":"meet at noon"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, "meet at noon", doc.Plans["2025-03-15"])

	// Admin amends Bob's entry via PATCH with ts as a string.
	body := fmt.Sprintf(`{"date":"2025-03-15","ts":"%d","note":"brings drinks"}`, list[1].TS)
	resp, data = e.request(t, http.MethodPatch, "/signups", body, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, "brings drinks", doc.Signups["2025-03-15"][1].Note)
	require.Equal(t, "Bob", doc.Signups["2025-03-15"][1].Name)

	// Remove Alice; a second remove of the same ts is a stable 404.
	body = fmt.Sprintf(`{"date":"2025-03-15","ts":%d}`, list[0].TS)
	resp, data = e.request(t, http.MethodDelete, "/signups", body, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Signups["2025-03-15"], 1)
	require.Equal(t, "Bob", doc.Signups["2025-03-15"][0].Name)
	resp, _ = e.request(t, http.MethodDelete, "/signups", body, true)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionGuard(t *testing.T) {
	e := newEnv(t)

	// No token at all.
	resp, _ := e.request(t, http.MethodGet, "/signups", "", false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A token signed with a different secret.
	stranger := auth.NewSessions("some-other-secret", time.Hour)
	token, err := stranger.Issue(time.Now())
	require.NoError(t, err)
	e.token = token
	resp, _ = e.request(t, http.MethodGet, "/signups", "", false)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCutoffOverHTTP(t *testing.T) {
	// Saturday midnight, past the Friday 11:00 cutoff.
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	e := newEnvAt(t, time.Date(2025, 3, 15, 0, 0, 0, 0, loc))
	e.login(t)

	resp, _ := e.request(t, http.MethodPost, "/signups", `{"date":"2025-03-15","name":"Alice"}`, false)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = e.request(t, http.MethodPost, "/signups", `{"date":"2025-03-15","name":"Alice"}`, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnsupportedMethod(t *testing.T) {
	e := newEnv(t)
	e.login(t)

	req, err := http.NewRequest("PROPFIND", e.srv.URL+"/signups", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+e.token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
