// Package jsonfile stores the student collection as one pretty-printed
// JSON array on disk.
//
// Every Save rewrites the whole file. The new content is written to a
// sibling "<path>.tmp" file first and then renamed over the target, so a
// crash mid-write leaves either the old or the new document, never half
// of one.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

const fileMode = 0o644

// JSONFile is the file-backed implementation of storage.Storage.
type JSONFile struct {
	path string
}

// New returns a store backed by the file at path. If the file does not
// exist it is created, holding the seed records when seed is true and an
// empty array otherwise. An existing file is left untouched.
func New(path string, seed bool) (*JSONFile, error) {
	if path == "" {
		return nil, errors.New("jsonfile.New: empty path")
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("jsonfile.New: create dir: %w", err)
		}
	}

	s := &JSONFile{path: path}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		return s, nil
	case errors.Is(err, os.ErrNotExist):
		initial := []types.Student{}
		if seed {
			initial = storage.Seed()
		}
		if err := s.Save(context.Background(), initial); err != nil {
			return nil, fmt.Errorf("jsonfile.New: init: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("jsonfile.New: stat: %w", err)
	}
}

// Path returns the location of the backing document.
func (s *JSONFile) Path() string { return s.path }

// Load reads and decodes the whole document.
func (s *JSONFile) Load(ctx context.Context) ([]types.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, types.StorageError("jsonfile.Load: read", err)
	}

	var students []types.Student
	if err := json.Unmarshal(b, &students); err != nil {
		return nil, types.StorageError("jsonfile.Load: decode", err)
	}
	if students == nil {
		// "null" on disk decodes to a nil slice; callers expect [].
		students = []types.Student{}
	}

	return students, nil
}

// Save encodes students with a two-space indent and replaces the file.
func (s *JSONFile) Save(ctx context.Context, students []types.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if students == nil {
		students = []types.Student{}
	}

	b, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return types.StorageError("jsonfile.Save: encode", err)
	}
	b = append(b, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, fileMode); err != nil {
		return types.StorageError("jsonfile.Save: write", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return types.StorageError("jsonfile.Save: rename", err)
	}

	return nil
}

// Close is a no-op: the file is opened and closed on every call.
func (s *JSONFile) Close() error { return nil }
