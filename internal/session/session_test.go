package session

import (
	"encoding/json"
	"testing"
)

func TestSession(t *testing.T) {
	t.Run("zero value is idle", func(t *testing.T) {
		var s Session
		if s.State() != Idle || s.IsEditing() || s.RecordID() != "" {
			t.Fatalf("expected idle session, got %v", s)
		}
	})

	t.Run("Begin enters editing", func(t *testing.T) {
		s := Session{}.Begin("r1")
		if !s.IsEditing() {
			t.Fatal("expected editing after Begin")
		}
		if s.RecordID() != "r1" {
			t.Errorf("expected record r1, got %s", s.RecordID())
		}
		if !s.Targets("r1") || s.Targets("r2") {
			t.Error("Targets should match only the edit target")
		}
	})

	t.Run("Begin while editing replaces the target", func(t *testing.T) {
		s := Session{}.Begin("r1").Begin("r2")
		if s.RecordID() != "r2" {
			t.Errorf("expected record r2, got %s", s.RecordID())
		}
	})

	t.Run("Cancel and Complete return to idle", func(t *testing.T) {
		for name, s := range map[string]Session{
			"cancel":        Session{}.Begin("r1").Cancel(),
			"complete":      Session{}.Begin("r1").Complete(),
			"complete idle": Session{}.Complete(),
		} {
			if s.IsEditing() || s.RecordID() != "" {
				t.Errorf("%s: expected idle, got %v", name, s)
			}
		}
	})

	t.Run("idle never targets", func(t *testing.T) {
		if (Session{}).Targets("") {
			t.Error("idle session should not target the empty id")
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		b, err := json.Marshal(Session{}.Begin("r1"))
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(b) != `{"state":"editing","record_id":"r1"}` {
			t.Errorf("unexpected json: %s", b)
		}

		b, err = json.Marshal(Session{})
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		if string(b) != `{"state":"idle"}` {
			t.Errorf("unexpected json: %s", b)
		}
	})
}
