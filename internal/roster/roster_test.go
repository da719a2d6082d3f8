package roster

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
)

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strp(s string) *string { return &s }

// countingStore wraps memory.Memory and counts Save calls.
type countingStore struct {
	*memory.Memory
	saves int
}

func (c *countingStore) Save(ctx context.Context, s []types.Student) error {
	c.saves++
	return c.Memory.Save(ctx, s)
}

// failingStore fails Load and/or Save with a storage error.
type failingStore struct {
	*memory.Memory
	failLoad, failSave bool
}

func (f *failingStore) Load(ctx context.Context) ([]types.Student, error) {
	if f.failLoad {
		return nil, types.StorageError("test.Load", errors.New("disk on fire"))
	}
	return f.Memory.Load(ctx)
}

func (f *failingStore) Save(ctx context.Context, s []types.Student) error {
	if f.failSave {
		return types.StorageError("test.Save", errors.New("disk full"))
	}
	return f.Memory.Save(ctx, s)
}

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID(nil))
	assert.Equal(t, 1, NextID([]types.Student{}))
	assert.Equal(t, 8, NextID([]types.Student{{ID: 3}, {ID: 7}, {ID: 2}}))
}

func TestCreateAssignsNextID(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store starts at 1", func(t *testing.T) {
		r := New(memory.New(false), discard())
		s, err := r.Create(ctx, types.StudentInput{Name: "Carol", Email: "carol@example.com"})
		require.NoError(t, err)
		assert.Equal(t, types.Student{ID: 1, Name: "Carol", Email: "carol@example.com"}, s)
	})

	t.Run("max id plus one", func(t *testing.T) {
		store := memory.New(false)
		require.NoError(t, store.Save(ctx, []types.Student{{ID: 5, Name: "E", Email: "e@x.io"}, {ID: 2, Name: "B", Email: "b@x.io"}}))
		r := New(store, discard())

		s, err := r.Create(ctx, types.StudentInput{Name: "F", Email: "f@x.io"})
		require.NoError(t, err)
		assert.Equal(t, 6, s.ID)

		all, err := r.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 3)
		assert.Equal(t, s, all[2], "new records are appended")
	})
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		in   types.StudentInput
		msg  string
	}{
		{"missing name", types.StudentInput{Email: "x@y.z"}, "field name is required"},
		{"missing email", types.StudentInput{Name: "X"}, "field email is required"},
		{"missing both", types.StudentInput{}, "field name is required, field email is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &countingStore{Memory: memory.New(true)}
			r := New(store, discard())

			_, err := r.Create(context.Background(), tt.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrValidation)
			assert.Equal(t, tt.msg, err.Error())
			assert.Zero(t, store.saves)

			all, err := r.List(context.Background())
			require.NoError(t, err)
			assert.Len(t, all, 2)
		})
	}
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	r := New(memory.New(true), discard())

	s, err := r.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 2, Name: "Bob", Email: "bob@example.com"}, s)

	_, err = r.Get(ctx, 3)
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.EqualError(t, err, "Student not found: 3")
}

func TestUpdateMerges(t *testing.T) {
	ctx := context.Background()
	r := New(memory.New(true), discard())

	s, err := r.Update(ctx, 1, types.StudentPatch{Name: strp("Alicia")})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 1, Name: "Alicia", Email: "alice@example.com"}, s)

	s, err = r.Update(ctx, 1, types.StudentPatch{Email: strp("alicia@example.com")})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 1, Name: "Alicia", Email: "alicia@example.com"}, s)

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, all[0])
	assert.Equal(t, "Bob", all[1].Name)
}

func TestUpdateNotFound(t *testing.T) {
	store := &countingStore{Memory: memory.New(true)}
	r := New(store, discard())

	_, err := r.Update(context.Background(), 99, types.StudentPatch{Name: strp("Nobody")})
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Zero(t, store.saves)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	r := New(memory.New(true), discard())

	require.NoError(t, r.Delete(ctx, 1))

	all, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []types.Student{{ID: 2, Name: "Bob", Email: "bob@example.com"}}, all)

	assert.ErrorIs(t, r.Delete(ctx, 1), types.ErrNotFound)
}

func TestDeletingHighestIDFreesIt(t *testing.T) {
	ctx := context.Background()
	r := New(memory.New(true), discard())

	require.NoError(t, r.Delete(ctx, 2))
	s, err := r.Create(ctx, types.StudentInput{Name: "Dan", Email: "dan@example.com"})
	require.NoError(t, err)
	assert.Equal(t, 2, s.ID)
}

func TestStorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	in := types.StudentInput{Name: "X", Email: "x@y.z"}

	t.Run("load", func(t *testing.T) {
		r := New(&failingStore{Memory: memory.New(true), failLoad: true}, discard())

		_, err := r.List(ctx)
		assert.ErrorIs(t, err, types.ErrStorage)
		_, err = r.Get(ctx, 1)
		assert.ErrorIs(t, err, types.ErrStorage)
		_, err = r.Create(ctx, in)
		assert.ErrorIs(t, err, types.ErrStorage)
		_, err = r.Update(ctx, 1, types.StudentPatch{})
		assert.ErrorIs(t, err, types.ErrStorage)
		assert.ErrorIs(t, r.Delete(ctx, 1), types.ErrStorage)
	})

	t.Run("save", func(t *testing.T) {
		r := New(&failingStore{Memory: memory.New(true), failSave: true}, discard())

		_, err := r.Create(ctx, in)
		assert.ErrorIs(t, err, types.ErrStorage)
		_, err = r.Update(ctx, 1, types.StudentPatch{Name: strp("Y")})
		assert.ErrorIs(t, err, types.ErrStorage)
		assert.ErrorIs(t, r.Delete(ctx, 1), types.ErrStorage)
	})
}

func TestConcurrentCreatesDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	r := New(memory.New(false), discard())

	const n = 25
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			_, err := r.Create(ctx, types.StudentInput{Name: "S", Email: "s@example.com"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := r.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)

	seen := map[int]bool{}
	for _, s := range all {
		assert.False(t, seen[s.ID], "duplicate id %d", s.ID)
		seen[s.ID] = true
	}
	assert.True(t, seen[1])
	assert.True(t, seen[n])
}
