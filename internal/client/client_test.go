package client_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/student-records/internal/client"
	"github.com/aanand-mishra/student-records/internal/roster"
	"github.com/aanand-mishra/student-records/internal/server"
	"github.com/aanand-mishra/student-records/internal/storage/memory"
	"github.com/aanand-mishra/student-records/internal/types"
)

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(roster.New(memory.New(true), log), server.Options{
		APIPrefix: "/api",
		Logger:    log,
	})
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func strp(s string) *string { return &s }

func TestClientCRUD(t *testing.T) {
	ts := newAPI(t)
	c := client.New(ts.URL+"/api/", client.WithHTTPClient(ts.Client()))
	ctx := context.Background()

	students, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)

	created, err := c.Create(ctx, client.Form{Name: "Carol", Email: "carol@example.com"})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 3, Name: "Carol", Email: "carol@example.com"}, created)

	updated, err := c.Update(ctx, 3, client.Form{Name: "Caroline", Email: "caroline@example.com"})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 3, Name: "Caroline", Email: "caroline@example.com"}, updated)

	patched, err := c.Patch(ctx, 3, types.StudentPatch{Name: strp("Carrie")})
	require.NoError(t, err)
	assert.Equal(t, types.Student{ID: 3, Name: "Carrie", Email: "caroline@example.com"}, patched)

	msg, err := c.Delete(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Deleted successfully", msg)

	students, err = c.List(ctx)
	require.NoError(t, err)
	assert.Len(t, students, 2)
}

func TestClientAPIErrors(t *testing.T) {
	ts := newAPI(t)
	c := client.New(ts.URL + "/api")
	ctx := context.Background()

	_, err := c.Create(ctx, client.Form{Email: "nobody@example.com"})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "field name is required", apiErr.Message)

	_, err = c.Delete(ctx, 42)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Student not found: 42", apiErr.Message)
}

func TestClientUnreachable(t *testing.T) {
	ts := newAPI(t)
	c := client.New(ts.URL + "/api")
	ts.Close()

	_, err := c.List(context.Background())
	require.Error(t, err)

	var apiErr *client.APIError
	assert.False(t, errors.As(err, &apiErr))
}
