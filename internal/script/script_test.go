package script

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/roster"
	"github.com/desertthunder/userdeck/internal/services"
	"github.com/desertthunder/userdeck/internal/shared"
	"github.com/desertthunder/userdeck/internal/store"
	tu "github.com/desertthunder/userdeck/internal/testing"
)

const addAndSearch = `
name: add and search
steps:
  - intent: change_field
    field: name
    value: Al
  - intent: change_field
    field: email
    value: a@b.com
  - intent: submit
  - intent: settle
  - intent: search
    query: zz
`

func newRunner(t *testing.T) (*Runner, *services.Simulated) {
	t.Helper()
	sim := services.NewSimulated(nil)
	o := roster.New(roster.Options{Store: store.New(tu.SequentialIDs("user")), Service: sim})
	return NewRunner(o, sim, nil), sim
}

func TestParse(t *testing.T) {
	t.Run("valid script", func(t *testing.T) {
		s, err := Parse(strings.NewReader(addAndSearch))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.Name != "add and search" {
			t.Errorf("expected name, got %q", s.Name)
		}
		if len(s.Steps) != 5 {
			t.Fatalf("expected 5 steps, got %d", len(s.Steps))
		}
		if s.Steps[4].Query != "zz" {
			t.Errorf("expected query zz, got %q", s.Steps[4].Query)
		}
	})

	t.Run("intent names are normalised", func(t *testing.T) {
		s, err := Parse(strings.NewReader("steps:\n  - intent: ' Submit '\n"))
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if s.Steps[0].Intent != IntentSubmit {
			t.Errorf("expected submit, got %q", s.Steps[0].Intent)
		}
	})

	tc := []struct {
		name     string
		input    string
		expected error
	}{
		{"empty", "", shared.ErrInvalidScript},
		{"no steps", "name: x\nsteps: []\n", shared.ErrInvalidScript},
		{"unknown intent", "steps:\n  - intent: fly\n", shared.ErrUnknownIntent},
		{"unknown key", "steps:\n  - intent: submit\n    colour: red\n", shared.ErrInvalidScript},
		{"bad field", "steps:\n  - intent: change_field\n    field: phone\n", shared.ErrInvalidScript},
		{"missing position", "steps:\n  - intent: begin_edit\n", shared.ErrInvalidScript},
		{"bad duration", "steps:\n  - intent: wait\n    duration: soon\n", shared.ErrInvalidScript},
		{"negative duration", "steps:\n  - intent: wait\n    duration: -1s\n", shared.ErrInvalidScript},
	}
	for _, c := range tc {
		t.Run(c.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(c.input))
			if !errors.Is(err, c.expected) {
				t.Errorf("expected %v, got %v", c.expected, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "ok.yaml")
	tu.MustWriteFile(t, path, addAndSearch)
	if _, err := Load(path); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	empty := filepath.Join(dir, "empty.yaml")
	tu.MustWriteFile(t, empty, "  \n")
	if _, err := Load(empty); !errors.Is(err, shared.ErrInvalidScript) {
		t.Errorf("expected ErrInvalidScript, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRunner(t *testing.T) {
	t.Run("runs every step", func(t *testing.T) {
		s, err := Parse(strings.NewReader(addAndSearch))
		if err != nil {
			t.Fatal(err)
		}
		r, _ := newRunner(t)

		var results []Result
		last, err := r.Run(s, func(res Result) error {
			results = append(results, res)
			return nil
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(results) != 5 {
			t.Fatalf("expected 5 results, got %d", len(results))
		}
		if !results[2].Snapshot.Pending {
			t.Error("expected pending after submit")
		}
		if len(last.Snapshot.Records) != 1 || len(last.Snapshot.Visible) != 0 {
			t.Errorf("expected 1 record and 0 visible, got %d and %d",
				len(last.Snapshot.Records), len(last.Snapshot.Visible))
		}
		if last.Elapsed != r.Elapsed() || r.Elapsed().Milliseconds() != 500 {
			t.Errorf("expected 500ms elapsed, got %v", r.Elapsed())
		}
		n := last.Snapshot.Notification
		if n == nil || n.Message != roster.MsgAdded {
			t.Errorf("expected success notification, got %+v", n)
		}
	})

	t.Run("wait expires notifications", func(t *testing.T) {
		r, _ := newRunner(t)
		pos := 0
		steps := []Step{
			{Intent: IntentChangeField, Field: "name", Value: "Al"},
			{Intent: IntentChangeField, Field: "email", Value: "al@b.com"},
			{Intent: IntentSubmit},
			{Intent: IntentWait, Duration: "4s"},
			{Intent: IntentBeginEdit, Position: &pos},
		}
		last, err := r.Run(&Script{Steps: steps}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !last.Snapshot.Session.Targets("user-1") {
			t.Errorf("expected editing user-1, got %s", last.Snapshot.Session)
		}
		if n := last.Snapshot.Notification; n == nil || n.Message != roster.MsgEditing {
			t.Errorf("expected editing notification, got %+v", n)
		}
	})

	t.Run("fail next", func(t *testing.T) {
		r, _ := newRunner(t)
		steps := []Step{
			{Intent: IntentFailNext},
			{Intent: IntentChangeField, Field: "name", Value: "Al"},
			{Intent: IntentChangeField, Field: "email", Value: "al@b.com"},
			{Intent: IntentSubmit},
			{Intent: IntentSettle},
		}
		last, err := r.Run(&Script{Steps: steps}, nil)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(last.Snapshot.Records) != 0 {
			t.Errorf("expected no records, got %d", len(last.Snapshot.Records))
		}
		n := last.Snapshot.Notification
		if n == nil || n.Kind != models.KindError || n.Message != roster.MsgOperationError {
			t.Errorf("expected error notification, got %+v", n)
		}
	})

	t.Run("fail next without failer", func(t *testing.T) {
		r := NewRunner(roster.New(roster.Options{}), nil, nil)
		_, err := r.Run(&Script{Steps: []Step{{Intent: IntentFailNext}}}, nil)
		if !errors.Is(err, shared.ErrInvalidScript) {
			t.Errorf("expected ErrInvalidScript, got %v", err)
		}
	})

	t.Run("callback error stops the run", func(t *testing.T) {
		r, _ := newRunner(t)
		stop := errors.New("stop")
		calls := 0
		_, err := r.Run(&Script{Steps: []Step{{Intent: IntentSubmit}, {Intent: IntentDismiss}}}, func(Result) error {
			calls++
			return stop
		})
		if !errors.Is(err, stop) || calls != 1 {
			t.Errorf("expected stop after 1 call, got %v after %d", err, calls)
		}
	})

	t.Run("unknown intent", func(t *testing.T) {
		r, _ := newRunner(t)
		if err := r.Step(Step{Intent: "fly"}); !errors.Is(err, shared.ErrUnknownIntent) {
			t.Errorf("expected ErrUnknownIntent, got %v", err)
		}
	})
}

func TestStepString(t *testing.T) {
	pos := 2
	tc := []struct {
		step     Step
		expected string
	}{
		{Step{Intent: IntentSubmit}, "submit"},
		{Step{Intent: IntentChangeField, Field: "name", Value: "Al"}, `change_field name="Al"`},
		{Step{Intent: IntentConfirmDelete, Position: &pos}, "confirm_delete 2"},
		{Step{Intent: IntentSearch, Query: "b"}, `search "b"`},
		{Step{Intent: IntentWait, Duration: "1s"}, "wait 1s"},
	}
	for _, c := range tc {
		if got := c.step.String(); got != c.expected {
			t.Errorf("expected %q, got %q", c.expected, got)
		}
	}
}

func TestDemoScript(t *testing.T) {
	s, err := Load(filepath.Join("..", "..", "examples", "demo.yaml"))
	if err != nil {
		t.Fatalf("expected demo to load, got %v", err)
	}

	r, _ := newRunner(t)
	last, err := r.Run(s, nil)
	if err != nil {
		t.Fatalf("expected demo to run, got %v", err)
	}

	snap := last.Snapshot
	if len(snap.Records) != 1 {
		t.Fatalf("expected 1 record, got %+v", snap.Records)
	}
	expected := models.Record{ID: "user-1", Name: "Ada King", Email: "ada@example.com"}
	if snap.Records[0] != expected {
		t.Errorf("expected %+v, got %+v", expected, snap.Records[0])
	}
	if snap.Notification != nil {
		t.Errorf("expected failure notification to have expired, got %+v", snap.Notification)
	}
	if snap.Pending || snap.Session.IsEditing() {
		t.Errorf("expected idle state, got pending=%v session=%s", snap.Pending, snap.Session)
	}
}
