// Package storage defines the Storage interface — the persistence
// accessor every backend must satisfy.
//
// WHY LOAD/SAVE AND NOT ONE METHOD PER QUERY?
// ───────────────────────────────────────────
// The backing store is a single JSON document holding the whole
// collection. There is nothing to query: every operation reads the full
// set, changes it in memory and writes the full set back. The interface
// says exactly that, and the roster package owns the "change it" part.
//
// Backends:
//
//   - jsonfile: a pretty-printed JSON array on disk (the default)
//   - memory: a slice in memory, used by tests and demos
//   - sqlite: the same contract over a SQLite table
package storage

import (
	"context"

	"github.com/aanand-mishra/student-records/internal/types"
)

// Driver names accepted in config (storage.driver).
const (
	DriverJSONFile = "jsonfile"
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
)

// Storage is the persistence contract.
type Storage interface {
	// Load returns every student in stored order. It never returns a nil
	// slice. A missing or malformed backing document is a *types.Error
	// of kind KindStorage.
	Load(ctx context.Context) ([]types.Student, error)

	// Save replaces the entire stored collection with students.
	Save(ctx context.Context, students []types.Student) error

	// Close releases any resources held by the backend.
	Close() error
}

// Seed is the collection a fresh store starts with when seeding is on.
func Seed() []types.Student {
	return []types.Student{
		{ID: 1, Name: "Alice", Email: "alice@example.com"},
		{ID: 2, Name: "Bob", Email: "bob@example.com"},
	}
}
