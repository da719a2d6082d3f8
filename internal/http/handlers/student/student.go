// Package student contains the HTTP handlers for the Student resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a service.
// To inject dependencies we use a factory function that:
//  1. Accepts dependencies (the Service)
//  2. Returns a function with the exact signature the router needs
//
//	router.HandleFunc("/api/students", student.Collection(svc))
//	router.HandleFunc("/api/students/{id}", student.Item(svc))
//
// The routes are registered WITHOUT a method in the pattern. Each handler
// dispatches on r.Method itself so that an unsupported verb gets a 405
// whose Allow header lists exactly the verbs of that route.
package student

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// Service is what the handlers need from the roster.
type Service interface {
	List(ctx context.Context) ([]types.Student, error)
	Get(ctx context.Context, id int) (types.Student, error)
	Create(ctx context.Context, in types.StudentInput) (types.Student, error)
	Update(ctx context.Context, id int, patch types.StudentPatch) (types.Student, error)
	Delete(ctx context.Context, id int) error
}

// Verbs accepted by each route, in Allow header order.
var (
	CollectionMethods = []string{http.MethodGet, http.MethodPost}
	ItemMethods       = []string{http.MethodPut, http.MethodDelete}
)

// DeletedMessage is the confirmation body of a successful DELETE.
const DeletedMessage = "Deleted successfully"

// ─────────────────────────────────────────────────────────────────────────────
// Collection handles /students.
//
//	GET  → 200, JSON array of every student
//	POST → 201, the created student
//
// Request body for POST (JSON):
//
//	{ "name": "Alice", "email": "alice@example.com" }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or a missing field
//	405 Not Allowed  — any other verb (Allow: GET, POST)
//	500 Internal     — storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Collection(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			list(svc, w, r)
		case http.MethodPost:
			create(svc, w, r)
		default:
			response.FromError(w, types.MethodNotAllowedError(r.Method, CollectionMethods...))
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Item handles /students/{id}.
//
//	PUT    → 200, the updated student (fields not sent keep their value)
//	DELETE → 200, { "message": "Deleted successfully" }
//
// A non-numeric {id} can never match a record, so it is answered exactly
// like an unknown id: 404.
//
// Error responses:
//
//	400 Bad Request  — empty body or malformed JSON (PUT, existing id)
//	404 Not Found    — no student with that id, whatever the body
//	405 Not Allowed  — any other verb (Allow: PUT, DELETE)
//	500 Internal     — storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func Item(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPut:
			update(svc, w, r)
		case http.MethodDelete:
			remove(svc, w, r)
		default:
			response.FromError(w, types.MethodNotAllowedError(r.Method, ItemMethods...))
		}
	}
}

func list(svc Service, w http.ResponseWriter, r *http.Request) {
	slog.Debug("getting all students")

	students, err := svc.List(r.Context())
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, students)
}

func create(svc Service, w http.ResponseWriter, r *http.Request) {
	slog.Info("creating a student")

	var in types.StudentInput
	if err := decodeBody(r, &in); err != nil {
		response.FromError(w, err)
		return
	}

	student, err := svc.Create(r.Context(), in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, student)
}

func update(svc Service, w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	slog.Info("updating a student", slog.String("id", raw))

	id, ok := parseID(raw)
	if !ok {
		response.FromError(w, types.NotFoundError(raw))
		return
	}

	var patch types.StudentPatch
	if err := decodeBody(r, &patch); err != nil {
		// An unknown id is a 404 whatever the body looks like.
		if _, getErr := svc.Get(r.Context(), id); getErr != nil {
			response.FromError(w, getErr)
			return
		}
		response.FromError(w, err)
		return
	}

	student, err := svc.Update(r.Context(), id, patch)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, student)
}

func remove(svc Service, w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	slog.Info("deleting a student", slog.String("id", raw))

	id, ok := parseID(raw)
	if !ok {
		response.FromError(w, types.NotFoundError(raw))
		return
	}

	if err := svc.Delete(r.Context(), id); err != nil {
		response.FromError(w, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, response.Message{Message: DeletedMessage})
}

func parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeBody decodes the JSON request body into v. io.EOF means the body
// was completely empty.
func decodeBody(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return types.ValidationError("request body is empty")
	}
	if err != nil {
		return types.ValidationError("invalid JSON: " + err.Error())
	}
	return nil
}
