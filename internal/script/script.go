// Package script replays YAML intent scripts against an orchestrator without a terminal.
//
// A script is a list of steps. Each step names one intent and its arguments:
//
//	name: add and search
//	steps:
//	  - intent: change_field
//	    field: name
//	    value: Al
//	  - intent: change_field
//	    field: email
//	    value: a@b.com
//	  - intent: submit
//	  - intent: settle
//	  - intent: search
//	    query: b.com
//
// Time is virtual. "wait" advances the clock by a duration and "settle" advances it until no
// operation is in flight. Neither sleeps.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/shared"
	"gopkg.in/yaml.v3"
)

// Intent names accepted in a step.
const (
	IntentChangeField   = "change_field"
	IntentSubmit        = "submit"
	IntentBeginEdit     = "begin_edit"
	IntentRequestDelete = "request_delete"
	IntentConfirmDelete = "confirm_delete"
	IntentCancelDelete  = "cancel_delete"
	IntentCancelEdit    = "cancel_edit"
	IntentSearch        = "search"
	IntentDismiss       = "dismiss"
	IntentWait          = "wait"
	IntentSettle        = "settle"
	IntentFailNext      = "fail_next"
)

var intents = map[string]struct{}{
	IntentChangeField: {}, IntentSubmit: {}, IntentBeginEdit: {}, IntentRequestDelete: {},
	IntentConfirmDelete: {}, IntentCancelDelete: {}, IntentCancelEdit: {}, IntentSearch: {},
	IntentDismiss: {}, IntentWait: {}, IntentSettle: {}, IntentFailNext: {},
}

// Script is a named list of steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step is one intent with its arguments. Only the arguments the intent uses are read.
type Step struct {
	Intent   string `yaml:"intent"`
	Field    string `yaml:"field,omitempty"`
	Value    string `yaml:"value,omitempty"`
	Position *int   `yaml:"position,omitempty"`
	Query    string `yaml:"query,omitempty"`
	Duration string `yaml:"duration,omitempty"`
	Message  string `yaml:"message,omitempty"`
}

func (s Step) String() string {
	switch s.Intent {
	case IntentChangeField:
		return fmt.Sprintf("%s %s=%q", s.Intent, s.Field, s.Value)
	case IntentBeginEdit, IntentRequestDelete, IntentConfirmDelete:
		if s.Position != nil {
			return fmt.Sprintf("%s %d", s.Intent, *s.Position)
		}
	case IntentSearch:
		return fmt.Sprintf("%s %q", s.Intent, s.Query)
	case IntentWait:
		return fmt.Sprintf("%s %s", s.Intent, s.Duration)
	}
	return s.Intent
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", shared.ErrInvalidScript, path)
	}
	return Parse(bytes.NewReader(data))
}

// Parse decodes a script and checks every step. Unknown keys are rejected.
func Parse(r io.Reader) (*Script, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no steps", shared.ErrInvalidScript)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidScript, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that each step names a known intent and carries the arguments it needs.
func (s *Script) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: no steps", shared.ErrInvalidScript)
	}
	for i := range s.Steps {
		if err := s.Steps[i].validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (s *Step) validate() error {
	s.Intent = strings.ToLower(strings.TrimSpace(s.Intent))
	if _, ok := intents[s.Intent]; !ok {
		return fmt.Errorf("%w: %q", shared.ErrUnknownIntent, s.Intent)
	}

	switch s.Intent {
	case IntentChangeField:
		if _, err := models.ParseField(s.Field); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidScript, err)
		}
	case IntentBeginEdit, IntentRequestDelete, IntentConfirmDelete:
		if s.Position == nil {
			return fmt.Errorf("%w: %s requires a position", shared.ErrInvalidScript, s.Intent)
		}
	case IntentWait:
		if _, err := s.wait(); err != nil {
			return err
		}
	}
	return nil
}

func (s Step) wait() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s.Duration))
	if err != nil {
		return 0, fmt.Errorf("%w: wait: %v", shared.ErrInvalidScript, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: wait must not be negative", shared.ErrInvalidScript)
	}
	return d, nil
}
