package script

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/roster"
	"github.com/desertthunder/userdeck/internal/schedule"
	"github.com/desertthunder/userdeck/internal/shared"
)

// Failer is a backend whose next commit can be made to fail.
type Failer interface {
	FailNext(err error)
}

// Result is the state after one step.
type Result struct {
	Index    int
	Step     Step
	Elapsed  time.Duration
	Snapshot models.Snapshot
}

// Runner drives an orchestrator on a virtual clock.
type Runner struct {
	orch   *roster.Orchestrator
	failer Failer
	logger *log.Logger
	clock  schedule.Clock
}

// NewRunner creates a Runner. failer may be nil, in which case fail_next steps are errors.
func NewRunner(orch *roster.Orchestrator, failer Failer, logger *log.Logger) *Runner {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Runner{orch: orch, failer: failer, logger: logger}
}

// Elapsed returns the virtual time consumed so far.
func (r *Runner) Elapsed() time.Duration { return r.clock.Now() }

// Run applies every step in order. each, when non-nil, is called after every step and may stop the
// run by returning an error. The result of the last step is returned.
func (r *Runner) Run(s *Script, each func(Result) error) (Result, error) {
	var last Result
	for i, step := range s.Steps {
		if err := r.Step(step); err != nil {
			return last, fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}

		last = Result{Index: i, Step: step, Elapsed: r.clock.Now(), Snapshot: r.orch.Snapshot()}
		if each != nil {
			if err := each(last); err != nil {
				return last, err
			}
		}
	}
	return last, nil
}

// Step applies a single step.
func (r *Runner) Step(step Step) error {
	r.logger.Debug("applying step", "intent", step.Intent, "at", r.clock.Now())

	o := r.orch
	switch step.Intent {
	case IntentChangeField:
		f, err := models.ParseField(step.Field)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrInvalidScript, err)
		}
		r.schedule(o.ChangeField(f, step.Value))
	case IntentSubmit:
		r.schedule(o.Submit())
	case IntentBeginEdit:
		pos, err := position(step)
		if err != nil {
			return err
		}
		r.schedule(o.BeginEdit(pos))
	case IntentRequestDelete:
		pos, err := position(step)
		if err != nil {
			return err
		}
		r.schedule(o.RequestDelete(pos))
	case IntentConfirmDelete:
		pos, err := position(step)
		if err != nil {
			return err
		}
		r.schedule(o.ConfirmDelete(pos))
	case IntentCancelDelete:
		r.schedule(o.CancelDelete())
	case IntentCancelEdit:
		r.schedule(o.CancelEdit())
	case IntentSearch:
		r.schedule(o.ChangeSearch(step.Query))
	case IntentDismiss:
		r.schedule(o.DismissNotification())
	case IntentWait:
		d, err := step.wait()
		if err != nil {
			return err
		}
		r.clock.Advance(d, o.Fire)
	case IntentSettle:
		r.Settle()
	case IntentFailNext:
		if r.failer == nil {
			return fmt.Errorf("%w: backend cannot be made to fail", shared.ErrInvalidScript)
		}
		msg := step.Message
		if msg == "" {
			msg = "scripted failure"
		}
		r.failer.FailNext(errors.New(msg))
	default:
		return fmt.Errorf("%w: %q", shared.ErrUnknownIntent, step.Intent)
	}
	return nil
}

// Settle advances the clock until no operation is in flight. Notifications are left to expire on
// their own schedule.
func (r *Runner) Settle() {
	for {
		d, ok := r.clock.Next(schedule.Operation)
		if !ok {
			return
		}
		r.clock.Advance(d, r.orch.Fire)
	}
}

func (r *Runner) schedule(timers []schedule.Timer) {
	r.clock.Schedule(timers...)
}

func position(step Step) (int, error) {
	if step.Position == nil {
		return 0, fmt.Errorf("%w: %s requires a position", shared.ErrInvalidScript, step.Intent)
	}
	return *step.Position, nil
}
