package client

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/student-records/internal/types"
)

var validate = validator.New()

// Form is the add/edit form. Unlike the server, the form also checks the
// email format.
type Form struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// FormFrom pre-fills a form with s.
func FormFrom(s types.Student) Form {
	return Form{Name: s.Name, Email: s.Email}
}

// FieldErrors maps a field ("name", "email") to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, k := range []string{"name", "email"} {
		if m, ok := fe[k]; ok {
			msgs = append(msgs, m)
		}
	}
	return strings.Join(msgs, ", ")
}

// Validate trims the fields and checks them. It returns nil or a
// FieldErrors.
func (f *Form) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)

	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fe := FieldErrors{}
	for _, e := range verrs {
		switch e.Field() {
		case "Name":
			fe["name"] = "Please enter name"
		case "Email":
			if e.ActualTag() == "required" {
				fe["email"] = "Please enter email"
			} else {
				fe["email"] = "Please enter a valid email"
			}
		}
	}
	return fe
}
