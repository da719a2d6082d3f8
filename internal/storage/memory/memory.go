// Package memory keeps the student collection in a process-local slice.
// Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Memory implements storage.Storage over a slice. Load and Save copy, so
// callers can never alias the stored slice.
type Memory struct {
	mu       sync.RWMutex
	students []types.Student
}

// New returns an empty store, or one holding the seed records.
func New(seed bool) *Memory {
	m := &Memory{students: []types.Student{}}
	if seed {
		m.students = storage.Seed()
	}
	return m
}

func (m *Memory) Load(ctx context.Context) ([]types.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Student, len(m.students))
	copy(out, m.students)
	return out, nil
}

func (m *Memory) Save(ctx context.Context, students []types.Student) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.students = make([]types.Student, len(students))
	copy(m.students, students)
	return nil
}

func (m *Memory) Close() error { return nil }
