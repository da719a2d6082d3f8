// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, storage, the roster and the client can all import types
// without depending on each other.
package types

// Student represents a student record in our system.
//
// The id is assigned by the server (max existing id + 1, or 1 when the
// collection is empty) and is never sent by the client on create.
type Student struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// StudentInput is the body of POST /students.
//
// validate:"required" rejects a missing or empty string. The server only
// checks presence; email format is checked by the UI before submitting.
type StudentInput struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required"`
}

// StudentPatch is the body of PUT /students/{id}.
//
// Pointer fields let us tell "not sent" (nil) apart from "sent as empty".
// A nil field keeps the stored value; a non-nil one replaces it.
type StudentPatch struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Apply returns a copy of s with every field present in p merged over it.
func (p StudentPatch) Apply(s Student) Student {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	return s
}
