// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/types"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses may return any JSON shape (a student, a list, a
// message). Error responses always look like:
//
//	{ "status": "error", "error": "field name is required" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"` // "ok" or "error"
	Error  string `json:"error"`  // human-readable error detail
}

// Message is the body of a successful DELETE.
type Message struct {
	Message string `json:"message"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// StatusFor maps an error to its HTTP status code. Anything that is not a
// *types.Error is an internal error.
func StatusFor(err error) int {
	var appErr *types.Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}

	switch appErr.Kind {
	case types.KindValidation:
		return http.StatusBadRequest
	case types.KindNotFound:
		return http.StatusNotFound
	case types.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// FromError writes err with the status StatusFor picks.
//
// A 405 also gets the Allow header listing the supported verbs, e.g.
//
//	Allow: GET, POST
//
// Storage and internal errors are written as a generic message: the
// wrapped cause (file paths, SQL) stays in the server log.
// ─────────────────────────────────────────────────────────────────────────────
func FromError(w http.ResponseWriter, err error) error {
	status := StatusFor(err)

	var appErr *types.Error
	if errors.As(err, &appErr) && appErr.Kind == types.KindMethodNotAllowed {
		w.Header().Set("Allow", appErr.AllowHeader())
	}

	if status == http.StatusInternalServerError {
		return WriteJSON(w, status, Response{
			Status: StatusError,
			Error:  http.StatusText(http.StatusInternalServerError),
		})
	}

	return WriteJSON(w, status, GeneralError(err))
}
