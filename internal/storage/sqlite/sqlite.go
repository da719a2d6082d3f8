// Package sqlite keeps the student collection in one SQLite table.
//
// WHOLE-COLLECTION SEMANTICS ON A TABLE
// ─────────────────────────────────────
// The roster thinks in snapshots: Load hands it every record, Save takes
// every record back. This backend maps that onto SQL literally. Load is
// one ordered SELECT; Save empties the table and re-inserts the snapshot
// inside a single transaction. A failed insert (duplicate id, cancelled
// context) rolls the table back to the previous snapshot.
//
// Ids are written as given. SQLite never assigns them: the roster's
// max+1 rule is the only source of ids, whatever the backend.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"

	// registers the "sqlite3" driver
	_ "github.com/mattn/go-sqlite3"
)

// SQLite implements storage.Storage over the students table.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at path, creates the students table if it
// does not already exist and, when seed is true and the table was just
// created, inserts the seed records.
//
// Use ":memory:" as path for a throwaway database (tests).
func New(path string, seed bool) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// An in-memory database lives and dies with its connection; keep the
	// pool at one connection so every query sees the same data.
	db.SetMaxOpenConns(1)

	var existing int
	err = db.QueryRow(
		"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = 'students'",
	).Scan(&existing)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: inspect schema: %w", err)
	}

	// Plain INTEGER PRIMARY KEY, no AUTOINCREMENT: Save supplies every id.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id    INTEGER PRIMARY KEY,
			name  TEXT    NOT NULL,
			email TEXT    NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create table: %w", err)
	}

	s := &SQLite{Db: db}

	if seed && existing == 0 {
		if err := s.Save(context.Background(), storage.Seed()); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite.New: seed: %w", err)
		}
	}

	return s, nil
}

// Load returns the snapshot, ordered by id so the order matches the
// append order the roster produces with max+1 ids.
func (s *SQLite) Load(ctx context.Context) ([]types.Student, error) {
	rows, err := s.Db.QueryContext(ctx,
		"SELECT id, name, email FROM students ORDER BY id",
	)
	if err != nil {
		return nil, types.StorageError("sqlite.Load: query", err)
	}
	defer rows.Close()

	// Non-nil so an empty table encodes as [] rather than null.
	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student
		if err := rows.Scan(&student.ID, &student.Name, &student.Email); err != nil {
			return nil, types.StorageError("sqlite.Load: scan row", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, types.StorageError("sqlite.Load: rows iteration", err)
	}

	return students, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Save replaces the table content with students.
//
//	BEGIN
//	DELETE FROM students
//	INSERT ... (one prepared statement, executed per record)
//	COMMIT            (ROLLBACK on the first error)
//
// The named err result lets the deferred rollback see every failure path.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) Save(ctx context.Context, students []types.Student) (err error) {
	tx, err := s.Db.BeginTx(ctx, nil)
	if err != nil {
		return types.StorageError("sqlite.Save: begin", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM students"); err != nil {
		return types.StorageError("sqlite.Save: clear", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO students (id, name, email) VALUES (?, ?, ?)",
	)
	if err != nil {
		return types.StorageError("sqlite.Save: prepare", err)
	}
	defer stmt.Close()

	for _, st := range students {
		if _, err = stmt.ExecContext(ctx, st.ID, st.Name, st.Email); err != nil {
			return types.StorageError("sqlite.Save: insert", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return types.StorageError("sqlite.Save: commit", err)
	}
	return nil
}

// Close closes the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}
