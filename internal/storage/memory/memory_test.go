package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/types"
)

func TestSeededStore(t *testing.T) {
	m := New(true)

	students, err := m.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, "Alice", students[0].Name)
	assert.Equal(t, "Bob", students[1].Name)
}

func TestLoadReturnsCopy(t *testing.T) {
	m := New(true)
	ctx := context.Background()

	students, err := m.Load(ctx)
	require.NoError(t, err)
	students[0].Name = "Mallory"

	again, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again[0].Name)
}

func TestSaveCopiesInput(t *testing.T) {
	m := New(false)
	ctx := context.Background()

	in := []types.Student{{ID: 1, Name: "Carol", Email: "carol@example.com"}}
	require.NoError(t, m.Save(ctx, in))
	in[0].Name = "changed"

	out, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Carol", out[0].Name)
}

func TestCancelledContext(t *testing.T) {
	m := New(false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, m.Save(ctx, nil), context.Canceled)
}
