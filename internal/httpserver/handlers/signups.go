package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/napierala85-collab/kalendarz-soboty/internal/auth"
	"github.com/napierala85-collab/kalendarz-soboty/internal/httpserver/deps"
	"github.com/napierala85-collab/kalendarz-soboty/internal/metrics"
)

type createRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
	Note string `json:"note"`
}

// updateRequest covers both admin mutations on PUT/PATCH. Name, note and
// plan stay raw so a wrong-typed field is skipped instead of clobbering
// the stored value; ts stays raw because older clients send it as a string.
type updateRequest struct {
	Mode string          `json:"mode"`
	Date string          `json:"date"`
	TS   json.RawMessage `json:"ts"`
	Name json.RawMessage `json:"name"`
	Note json.RawMessage `json:"note"`
	Plan json.RawMessage `json:"plan"`
}

type deleteRequest struct {
	Date string          `json:"date"`
	TS   json.RawMessage `json:"ts"`
}

// ListSignups returns the whole board document.
func ListSignups(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := d.Ledger.ReadAll(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// CreateSignup registers a participant for a Saturday.
func CreateSignup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		admin := auth.IsAdmin(r, d.AdminPassword)
		doc, err := d.Ledger.Register(r.Context(), d.TimeNow(), req.Date, req.Name, req.Note, admin)
		if err != nil {
			metrics.MutationsDenied.WithLabelValues(reasonLabel(err)).Inc()
			writeError(w, d.Logger, err)
			return
		}

		metrics.SignupsAccepted.Inc()
		writeJSON(w, http.StatusOK, doc)
	}
}

// UpdateSignup handles the two admin mutations multiplexed on PUT/PATCH:
// mode "plan" publishes a plan note, anything else amends an entry.
func UpdateSignup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		admin := auth.IsAdmin(r, d.AdminPassword)
		ctx := r.Context()

		var err error
		var doc interface{}
		if req.Mode == "plan" {
			doc, err = d.Ledger.SetPlan(ctx, req.Date, rawToString(req.Plan), admin)
		} else {
			doc, err = d.Ledger.Amend(ctx, req.Date, rawToTS(req.TS), rawStringPtr(req.Name), rawStringPtr(req.Note), admin)
		}
		if err != nil {
			metrics.MutationsDenied.WithLabelValues(reasonLabel(err)).Inc()
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// DeleteSignup removes one entry.
func DeleteSignup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req deleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		admin := auth.IsAdmin(r, d.AdminPassword)
		doc, err := d.Ledger.Remove(r.Context(), req.Date, rawToTS(req.TS), admin)
		if err != nil {
			metrics.MutationsDenied.WithLabelValues(reasonLabel(err)).Inc()
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
	}
}

// rawToTS accepts a timestamp as a JSON number or a numeric string.
// Anything else (including absent) is 0, which the ledger treats as missing.
func rawToTS(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	var n int64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// rawStringPtr returns the value only when the field was present and a
// string; absent or wrong-typed fields must leave the entry untouched.
func rawStringPtr(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}

// rawToString coerces a plan value: absent, null or non-string becomes "".
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}
