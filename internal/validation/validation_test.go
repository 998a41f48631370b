package validation

import (
	"testing"

	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/session"
)

func TestValidate(t *testing.T) {
	existing := []models.Record{
		{ID: "r1", Name: "Al", Email: "a@b.com"},
		{ID: "r2", Name: "Bo", Email: "Bo@Example.org"},
	}

	tc := []struct {
		name    string
		draft   models.Draft
		records []models.Record
		sess    session.Session
		want    models.ErrorSet
	}{
		{
			name:  "valid create",
			draft: models.Draft{Name: "Al", Email: "a@b.com"},
			want:  models.ErrorSet{},
		},
		{
			name:  "both fields empty",
			draft: models.Draft{},
			want:  models.ErrorSet{models.FieldName: MsgNameRequired, models.FieldEmail: MsgEmailRequired},
		},
		{
			name:  "whitespace only counts as empty",
			draft: models.Draft{Name: "   ", Email: "\t"},
			want:  models.ErrorSet{models.FieldName: MsgNameRequired, models.FieldEmail: MsgEmailRequired},
		},
		{
			name:  "name too short",
			draft: models.Draft{Name: "A", Email: "a@b.com"},
			want:  models.ErrorSet{models.FieldName: MsgNameTooShort},
		},
		{
			name:  "name too short after trimming",
			draft: models.Draft{Name: " A ", Email: "a@b.com"},
			want:  models.ErrorSet{models.FieldName: MsgNameTooShort},
		},
		{
			name:  "multibyte name counts characters",
			draft: models.Draft{Name: "Ån", Email: "a@b.com"},
			want:  models.ErrorSet{},
		},
		{
			name:  "invalid email format",
			draft: models.Draft{Name: "Al", Email: "not-an-email"},
			want:  models.ErrorSet{models.FieldEmail: MsgEmailInvalid},
		},
		{
			name:  "errors are reported for both fields",
			draft: models.Draft{Name: "A", Email: "a@b"},
			want:  models.ErrorSet{models.FieldName: MsgNameTooShort, models.FieldEmail: MsgEmailInvalid},
		},
		{
			name:    "duplicate email on create",
			draft:   models.Draft{Name: "Cy", Email: "a@b.com"},
			records: existing,
			want:    models.ErrorSet{models.FieldEmail: MsgEmailExists},
		},
		{
			name:    "duplicate email ignores case",
			draft:   models.Draft{Name: "Cy", Email: "bo@example.ORG"},
			records: existing,
			want:    models.ErrorSet{models.FieldEmail: MsgEmailExists},
		},
		{
			name:    "sharp s differs from ss",
			draft:   models.Draft{Name: "Straße", Email: "straße@x.com"},
			records: []models.Record{{ID: "r3", Name: "Strasse", Email: "strasse@x.com"}},
			want:    models.ErrorSet{},
		},
		{
			name:    "ligature differs from its letters",
			draft:   models.Draft{Name: "Fiona", Email: "ﬁona@x.com"},
			records: []models.Record{{ID: "r3", Name: "Fiona", Email: "fiona@x.com"}},
			want:    models.ErrorSet{},
		},
		{
			name:    "editing keeps its own email",
			draft:   models.Draft{Name: "Alice", Email: "a@b.com"},
			records: existing,
			sess:    session.Session{}.Begin("r1"),
			want:    models.ErrorSet{},
		},
		{
			name:    "editing cannot take another record's email",
			draft:   models.Draft{Name: "Alice", Email: "bo@example.org"},
			records: existing,
			sess:    session.Session{}.Begin("r1"),
			want:    models.ErrorSet{models.FieldEmail: MsgEmailExists},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.draft, tt.records, tt.sess)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for field, msg := range tt.want {
				if got[field] != msg {
					t.Errorf("field %s: expected %q, got %q", field, msg, got[field])
				}
			}
			if got.Valid() != tt.want.Valid() {
				t.Errorf("expected Valid() = %v", tt.want.Valid())
			}
		})
	}
}

func TestValidEmail(t *testing.T) {
	tc := []struct {
		email string
		want  bool
	}{
		{"a@b.com", true},
		{"first.last@sub.domain.io", true},
		{"a@b", false},
		{"@b.com", false},
		{"a@.com", false},
		{"a b@c.com", false},
		{"a@@b.com", false},
		{" a@b.com", false},
		{"a@b.", false},
	}

	for _, tt := range tc {
		t.Run(tt.email, func(t *testing.T) {
			if got := ValidEmail(tt.email); got != tt.want {
				t.Errorf("ValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}
