package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/napierala85-collab/kalendarz-soboty/internal/board"
	"github.com/napierala85-collab/kalendarz-soboty/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a board failure to its HTTP status with the reason as a
// plain-text body. Anything untyped is an internal error: logged in full,
// surfaced opaquely.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var bErr *board.Error
	if errors.As(err, &bErr) {
		http.Error(w, bErr.Reason, bErr.Code.HTTPStatus())
		return
	}
	log.Error("request failed", logger.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// reasonLabel buckets a failure for the denial counter.
func reasonLabel(err error) string {
	var bErr *board.Error
	if errors.As(err, &bErr) {
		switch bErr.Code {
		case board.CodeBadRequest:
			return "bad_request"
		case board.CodeUnauthorized:
			return "unauthorized"
		case board.CodeForbidden:
			return "forbidden"
		case board.CodeNotFound:
			return "not_found"
		case board.CodeMethodNotAllowed:
			return "method_not_allowed"
		case board.CodeMisconfigured:
			return "misconfigured"
		}
	}
	return "internal"
}
