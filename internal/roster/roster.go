// Package roster implements the student operations on top of a
// storage.Storage: every call loads the full collection, changes it in
// memory and saves it back.
//
// Mutating calls share one mutex. Without it two requests could each load
// the same snapshot and the second Save would silently drop the first
// request's change (a lost update). The lock only arbitrates inside one
// process; two processes pointed at the same file are not coordinated.
package roster

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Roster is the student service used by the HTTP handlers.
type Roster struct {
	store    storage.Storage
	log      *slog.Logger
	validate *validator.Validate

	mu sync.Mutex
}

// New returns a Roster over store. A nil log falls back to slog.Default().
func New(store storage.Storage, log *slog.Logger) *Roster {
	if store == nil {
		panic("roster.New: store is nil")
	}
	if log == nil {
		log = slog.Default()
	}
	return &Roster{
		store:    store,
		log:      log.With(slog.String("component", "roster")),
		validate: validator.New(),
	}
}

// List returns the whole collection.
func (r *Roster) List(ctx context.Context) ([]types.Student, error) {
	students, err := r.store.Load(ctx)
	if err != nil {
		r.log.Error("load failed", slog.String("error", err.Error()))
		return nil, err
	}
	return students, nil
}

// Get returns the student with the given id.
func (r *Roster) Get(ctx context.Context, id int) (types.Student, error) {
	students, err := r.List(ctx)
	if err != nil {
		return types.Student{}, err
	}
	i := indexOf(students, id)
	if i < 0 {
		return types.Student{}, types.NotFoundError(strconv.Itoa(id))
	}
	return students[i], nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Create validates in, assigns the next id and appends the new record.
//
// Every mutation follows the same steps under r.mu:
//
//	1. Load      the full collection
//	2. change    it in memory (append, merge or remove)
//	3. Save      the full collection back
//
// Validation runs before the lock: a rejected input never touches the
// store.
// ─────────────────────────────────────────────────────────────────────────────
func (r *Roster) Create(ctx context.Context, in types.StudentInput) (types.Student, error) {
	if err := r.validate.Struct(in); err != nil {
		return types.Student{}, validationError(err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.store.Load(ctx)
	if err != nil {
		r.log.Error("load failed", slog.String("error", err.Error()))
		return types.Student{}, err
	}

	student := types.Student{
		ID:    NextID(students),
		Name:  in.Name,
		Email: in.Email,
	}
	students = append(students, student)

	if err := r.store.Save(ctx, students); err != nil {
		r.log.Error("save failed", slog.String("error", err.Error()))
		return types.Student{}, err
	}

	r.log.Info("student created", slog.Int("id", student.ID))
	return student, nil
}

// Update merges patch over the student with the given id.
func (r *Roster) Update(ctx context.Context, id int, patch types.StudentPatch) (types.Student, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.store.Load(ctx)
	if err != nil {
		r.log.Error("load failed", slog.String("error", err.Error()))
		return types.Student{}, err
	}

	i := indexOf(students, id)
	if i < 0 {
		return types.Student{}, types.NotFoundError(strconv.Itoa(id))
	}

	students[i] = patch.Apply(students[i])

	if err := r.store.Save(ctx, students); err != nil {
		r.log.Error("save failed", slog.String("error", err.Error()))
		return types.Student{}, err
	}

	r.log.Info("student updated", slog.Int("id", id))
	return students[i], nil
}

// Delete removes the student with the given id.
func (r *Roster) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	students, err := r.store.Load(ctx)
	if err != nil {
		r.log.Error("load failed", slog.String("error", err.Error()))
		return err
	}

	i := indexOf(students, id)
	if i < 0 {
		return types.NotFoundError(strconv.Itoa(id))
	}

	students = append(students[:i], students[i+1:]...)

	if err := r.store.Save(ctx, students); err != nil {
		r.log.Error("save failed", slog.String("error", err.Error()))
		return err
	}

	r.log.Info("student deleted", slog.Int("id", id))
	return nil
}

// NextID returns max(id)+1 over students, or 1 when there are none.
func NextID(students []types.Student) int {
	highest := 0
	for _, s := range students {
		if s.ID > highest {
			highest = s.ID
		}
	}
	return highest + 1
}

// linear scan; collections are small
func indexOf(students []types.Student, id int) int {
	for i, s := range students {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// validationError turns validator output into one KindValidation error,
// e.g. "field name is required, field email is required".
func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return types.ValidationError(err.Error())
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		field := strings.ToLower(e.Field())
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", field))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", field))
		}
	}
	return types.ValidationError(strings.Join(msgs, ", "))
}
