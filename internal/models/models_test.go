package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/desertthunder/userdeck/internal/session"
)

func TestDraft(t *testing.T) {
	t.Run("With and Get", func(t *testing.T) {
		d := Draft{}.With(FieldName, "Al").With(FieldEmail, "a@b.com")
		if d.Get(FieldName) != "Al" || d.Get(FieldEmail) != "a@b.com" {
			t.Errorf("unexpected draft %+v", d)
		}
		if d.IsEmpty() {
			t.Error("expected non-empty draft")
		}
	})

	t.Run("unknown field leaves draft unchanged", func(t *testing.T) {
		d := Draft{Name: "Al"}
		if got := d.With(Field("age"), "3"); got != d {
			t.Errorf("expected %+v, got %+v", d, got)
		}
		if d.Get(Field("age")) != "" {
			t.Error("expected empty value for unknown field")
		}
	})

	t.Run("Record.Draft", func(t *testing.T) {
		r := Record{ID: "1", Name: "Al", Email: "a@b.com"}
		if r.Draft() != (Draft{Name: "Al", Email: "a@b.com"}) {
			t.Errorf("unexpected draft %+v", r.Draft())
		}
	})
}

func TestParseField(t *testing.T) {
	tc := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{in: "name", want: FieldName},
		{in: " Email ", want: FieldEmail},
		{in: "phone", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseField(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseField(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestErrorSet(t *testing.T) {
	errs := ErrorSet{FieldName: "Name is required", FieldEmail: "Email is required"}

	without := errs.Without(FieldName)
	if without.Has(FieldName) {
		t.Error("expected name error to be removed")
	}
	if !errs.Has(FieldName) {
		t.Error("Without should not modify the receiver")
	}
	if without.Valid() {
		t.Error("expected email error to remain")
	}
	if !without.Without(FieldEmail).Valid() {
		t.Error("expected empty set to be valid")
	}

	var nilSet ErrorSet
	if !nilSet.Valid() || nilSet.Clone() == nil {
		t.Error("nil set should be valid and clone to a non-nil map")
	}
}

func TestSnapshotRows(t *testing.T) {
	snap := Snapshot{
		Visible:          []Record{{ID: "a"}, {ID: "b"}},
		Session:          session.Session{}.Begin("b"),
		ConfirmingDelete: "a",
	}

	if snap.IsEditingRow(0) || !snap.IsEditingRow(1) || snap.IsEditingRow(5) {
		t.Error("IsEditingRow should only match the edit target")
	}
	if !snap.IsConfirmingRow(0) || snap.IsConfirmingRow(1) || snap.IsConfirmingRow(-1) {
		t.Error("IsConfirmingRow should only match the pending confirmation")
	}
}

func TestSnapshotJSON(t *testing.T) {
	snap := Snapshot{
		Records:      []Record{{ID: "1", Name: "Al", Email: "a@b.com"}},
		Notification: &Notification{Message: "Entry added successfully!", Kind: KindSuccess},
	}

	b, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	out := string(b)
	for _, want := range []string{`"kind":"success"`, `"edit_session":{"state":"idle"}`, `"visible_records":null`} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %s in %s", want, out)
		}
	}
}
