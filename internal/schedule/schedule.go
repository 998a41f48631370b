// Package schedule models deferred continuations as cancellable timer requests.
//
// The core never sleeps. It asks its host to deliver a [Timer] after a delay and keeps the timer's
// [Token] in a [Slot]. Arming the slot again or cancelling it invalidates the previous token, so a
// late delivery of a superseded timer is recognised and dropped.
//
// Hosts decide how time passes: the TUI turns timers into tea.Tick commands, while the headless
// runner and tests use [Clock], a virtual clock advanced explicitly.
package schedule

import (
	"fmt"
	"time"
)

// Token identifies one arming of a [Slot]. Zero is never issued.
type Token uint64

// Kind tells the core which slot a [Timer] belongs to.
type Kind int

const (
	// Dismiss clears the current notification.
	Dismiss Kind = iota
	// Operation completes the in-flight simulated operation.
	Operation
)

func (k Kind) String() string {
	switch k {
	case Dismiss:
		return "dismiss"
	case Operation:
		return "operation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Timer asks the host to hand the timer back to the core after Delay.
type Timer struct {
	Token Token
	Kind  Kind
	Delay time.Duration
}

// Slot holds at most one live token.
type Slot struct {
	seq  Token
	live Token
}

// Arm invalidates any live token and returns a new one.
func (s *Slot) Arm() Token {
	s.seq++
	s.live = s.seq
	return s.live
}

// Cancel invalidates the live token, if any.
func (s *Slot) Cancel() {
	s.live = 0
}

// Armed reports whether a token is live.
func (s *Slot) Armed() bool {
	return s.live != 0
}

// Fire consumes t. It reports true exactly once, and only for the live token.
func (s *Slot) Fire(t Token) bool {
	if t == 0 || t != s.live {
		return false
	}
	s.live = 0
	return true
}
