package client

import (
	"context"
	"fmt"

	"github.com/aanand-mishra/student-records/internal/types"
)

// NoticeKind is the colour of a transient notification.
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is one transient notification shown to the user.
type Notice struct {
	Kind NoticeKind
	Text string
}

// Session mirrors the state of the management page: the fetched list,
// the record being edited (if any) and the notifications raised so far.
//
// Mutations never patch the local list. On success the session refetches
// everything; on failure the list stays exactly as it was.
//
// A Session is not safe for concurrent use.
type Session struct {
	c        *Client
	students []types.Student
	editing  *types.Student
	form     Form
	notices  []Notice
}

func NewSession(c *Client) *Session {
	return &Session{c: c, students: []types.Student{}}
}

// Students returns the list from the last successful fetch.
func (s *Session) Students() []types.Student {
	out := make([]types.Student, len(s.students))
	copy(out, s.students)
	return out
}

// Refresh refetches the collection.
func (s *Session) Refresh(ctx context.Context) error {
	students, err := s.c.List(ctx)
	if err != nil {
		s.notify(NoticeError, "Failed to fetch students")
		return err
	}
	s.students = students
	return nil
}

// Add opens a blank form.
func (s *Session) Add() {
	s.editing = nil
	s.form = Form{}
}

// Edit opens the form pre-filled with st.
func (s *Session) Edit(st types.Student) {
	s.editing = &st
	s.form = FormFrom(st)
}

// Cancel closes the form without submitting.
func (s *Session) Cancel() {
	s.Add()
}

// Form returns the current form values.
func (s *Session) Form() Form { return s.form }

// Editing returns the record being edited, if any.
func (s *Session) Editing() (types.Student, bool) {
	if s.editing == nil {
		return types.Student{}, false
	}
	return *s.editing, true
}

// Submit validates f and creates or updates depending on whether a record
// is being edited. Validation failures return FieldErrors without a
// request being sent.
func (s *Session) Submit(ctx context.Context, f Form) error {
	if err := f.Validate(); err != nil {
		s.form = f
		return err
	}

	var err error
	if s.editing != nil {
		_, err = s.c.Update(ctx, s.editing.ID, f)
		if err != nil {
			s.notify(NoticeError, "Failed to update student")
			return err
		}
		s.notify(NoticeSuccess, "Student updated successfully!")
	} else {
		_, err = s.c.Create(ctx, f)
		if err != nil {
			s.notify(NoticeError, "Failed to add student")
			return err
		}
		s.notify(NoticeSuccess, "Student added successfully!")
	}

	s.Add()
	return s.Refresh(ctx)
}

// Remove deletes st and refetches.
func (s *Session) Remove(ctx context.Context, st types.Student) error {
	if _, err := s.c.Delete(ctx, st.ID); err != nil {
		s.notify(NoticeError, "Failed to delete student")
		return err
	}
	s.notify(NoticeSuccess, fmt.Sprintf("Student %q deleted successfully!", st.Name))
	return s.Refresh(ctx)
}

// Notices returns every notification raised, oldest first.
func (s *Session) Notices() []Notice {
	return append([]Notice(nil), s.notices...)
}

// LastNotice returns the most recent notification.
func (s *Session) LastNotice() (Notice, bool) {
	if len(s.notices) == 0 {
		return Notice{}, false
	}
	return s.notices[len(s.notices)-1], true
}

func (s *Session) notify(kind NoticeKind, text string) {
	s.notices = append(s.notices, Notice{Kind: kind, Text: text})
}
