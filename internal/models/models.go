// package models defines the data model for the user record manager
package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/desertthunder/userdeck/internal/session"
)

// Record is a stored user entry. ID is assigned at creation and never changes.
type Record struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Draft returns the record's editable fields.
func (r Record) Draft() Draft {
	return Draft{Name: r.Name, Email: r.Email}
}

// Draft mirrors the fields being entered in the form.
type Draft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Get returns the value of field f.
func (d Draft) Get(f Field) string {
	switch f {
	case FieldName:
		return d.Name
	case FieldEmail:
		return d.Email
	default:
		return ""
	}
}

// With returns a copy of d with field f set to value. Unknown fields leave d unchanged.
func (d Draft) With(f Field, value string) Draft {
	switch f {
	case FieldName:
		d.Name = value
	case FieldEmail:
		d.Email = value
	}
	return d
}

// IsEmpty reports whether both fields are empty.
func (d Draft) IsEmpty() bool {
	return d == Draft{}
}

// Field names a form field.
type Field string

const (
	FieldName  Field = "name"
	FieldEmail Field = "email"
)

// Fields lists the form fields in display order.
var Fields = []Field{FieldName, FieldEmail}

// ParseField maps a field name to a [Field].
func ParseField(s string) (Field, error) {
	f := Field(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Fields, f) {
		return "", fmt.Errorf("unknown field %q", s)
	}
	return f, nil
}

// ErrorSet maps a field to its validation message. A missing key means the field is valid.
type ErrorSet map[Field]string

// Valid reports whether no field has an error.
func (e ErrorSet) Valid() bool {
	return len(e) == 0
}

// Has reports whether field f has an error.
func (e ErrorSet) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// Clone returns an independent copy. A nil set clones to an empty set.
func (e ErrorSet) Clone() ErrorSet {
	out := make(ErrorSet, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Without returns a copy of e with field f removed.
func (e ErrorSet) Without(f Field) ErrorSet {
	out := e.Clone()
	delete(out, f)
	return out
}

// Snapshot is the state emitted after each intent for a renderer to draw.
type Snapshot struct {
	Records          []Record        `json:"records"`
	Visible          []Record        `json:"visible_records"`
	Form             Draft           `json:"form"`
	Errors           ErrorSet        `json:"errors"`
	Session          session.Session `json:"edit_session"`
	Pending          bool            `json:"pending"`
	Notification     *Notification   `json:"notification"`
	Query            string          `json:"query"`
	ConfirmingDelete string          `json:"confirming_delete,omitempty"`
}

// IsEditingRow reports whether the visible row at pos is the record under edit.
func (s Snapshot) IsEditingRow(pos int) bool {
	if pos < 0 || pos >= len(s.Visible) {
		return false
	}
	return s.Session.Targets(s.Visible[pos].ID)
}

// IsConfirmingRow reports whether the visible row at pos awaits delete confirmation.
func (s Snapshot) IsConfirmingRow(pos int) bool {
	if pos < 0 || pos >= len(s.Visible) || s.ConfirmingDelete == "" {
		return false
	}
	return s.Visible[pos].ID == s.ConfirmingDelete
}

// CloneRecords returns an independent copy of records.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return []Record{}
	}
	dup := make([]Record, len(records))
	copy(dup, records)
	return dup
}
