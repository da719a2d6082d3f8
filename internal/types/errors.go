package types

import (
	"fmt"
	"strings"
)

// Kind classifies an Error. Each kind maps to exactly one HTTP status in
// the response package.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindMethodNotAllowed
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindMethodNotAllowed:
		return "method_not_allowed"
	case KindStorage:
		return "storage"
	default:
		return "internal"
	}
}

// Error is the application error type. Cause, when set, is the underlying
// error (an os.PathError, a json.SyntaxError, a sqlite error...).
type Error struct {
	Kind    Kind
	Message string
	Cause   error

	// Allow lists the supported verbs for KindMethodNotAllowed.
	Allow []string
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same kind, so callers can
// write errors.Is(err, types.ErrNotFound).
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is comparisons. Only the Kind is compared.
var (
	ErrValidation       = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrNotFound         = &Error{Kind: KindNotFound, Message: "Student not found"}
	ErrMethodNotAllowed = &Error{Kind: KindMethodNotAllowed, Message: "method not allowed"}
	ErrStorage          = &Error{Kind: KindStorage, Message: "storage failure"}
)

func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFoundError(id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("Student not found: %s", id)}
}

// MethodNotAllowedError builds the 405 error for method on a route that
// only accepts allow.
func MethodNotAllowedError(method string, allow ...string) *Error {
	return &Error{
		Kind:    KindMethodNotAllowed,
		Message: fmt.Sprintf("Method %s Not Allowed", method),
		Allow:   allow,
	}
}

// AllowHeader renders Allow as the value of the HTTP Allow header.
func (e *Error) AllowHeader() string {
	return strings.Join(e.Allow, ", ")
}

// StorageError wraps an I/O or decode failure of the backing store.
// op names the failing step, e.g. "jsonfile.Load: read".
func StorageError(op string, cause error) *Error {
	return &Error{Kind: KindStorage, Message: op, Cause: cause}
}
