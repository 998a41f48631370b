// Package session tracks whether the form describes a new record or an in-place edit of an existing one.
package session

import (
	"encoding/json"
	"fmt"
)

// State enumerates the two edit modes.
type State int

const (
	Idle State = iota
	Editing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Editing:
		return "editing"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Session is either Idle (new-record mode) or Editing a single record ID.
//
// The zero value is Idle.
type Session struct {
	state    State
	recordID string
}

// Begin enters Editing for id. Beginning while already editing replaces the target.
func (s Session) Begin(id string) Session {
	return Session{state: Editing, recordID: id}
}

// Cancel returns to Idle.
func (s Session) Cancel() Session {
	return Session{}
}

// Complete returns to Idle after a successful submit, whichever mode it was in.
func (s Session) Complete() Session {
	return Session{}
}

// State reports the current mode.
func (s Session) State() State { return s.state }

// IsEditing reports whether a record is being edited.
func (s Session) IsEditing() bool { return s.state == Editing }

// RecordID returns the edit target, or "" when Idle.
func (s Session) RecordID() string { return s.recordID }

// Targets reports whether id is the record under edit.
func (s Session) Targets(id string) bool {
	return s.state == Editing && id != "" && s.recordID == id
}

func (s Session) String() string {
	if s.state == Editing {
		return fmt.Sprintf("editing(%s)", s.recordID)
	}
	return s.state.String()
}

type sessionJSON struct {
	State    string `json:"state"`
	RecordID string `json:"record_id,omitempty"`
}

// MarshalJSON renders the session as {"state": ..., "record_id": ...}.
func (s Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(sessionJSON{State: s.state.String(), RecordID: s.recordID})
}
