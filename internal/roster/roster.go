package roster

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/notify"
	"github.com/desertthunder/userdeck/internal/schedule"
	"github.com/desertthunder/userdeck/internal/search"
	"github.com/desertthunder/userdeck/internal/services"
	"github.com/desertthunder/userdeck/internal/session"
	"github.com/desertthunder/userdeck/internal/shared"
	"github.com/desertthunder/userdeck/internal/store"
	"github.com/desertthunder/userdeck/internal/validation"
)

// Notification texts.
const (
	MsgFixErrors      = "Please fix the errors below"
	MsgAdded          = "Entry added successfully!"
	MsgUpdated        = "Entry updated successfully!"
	MsgDeleted        = "Entry deleted successfully!"
	MsgEditing        = "Editing mode activated"
	MsgEditCancelled  = "Edit cancelled"
	MsgOperationError = "Something went wrong. Please try again."
)

// Timing holds the simulated latencies and the notification lifetime.
type Timing struct {
	SubmitDelay     time.Duration
	DeleteDelay     time.Duration
	NotificationTTL time.Duration
}

// DefaultTiming returns 500ms submits, 300ms deletes and 3s notifications.
func DefaultTiming() Timing {
	return Timing{
		SubmitDelay:     500 * time.Millisecond,
		DeleteDelay:     300 * time.Millisecond,
		NotificationTTL: notify.DefaultTTL,
	}
}

// TimingFromConfig reads the [timing] section of c.
func TimingFromConfig(c *shared.Config) Timing {
	if c == nil {
		return DefaultTiming()
	}
	return Timing{
		SubmitDelay:     c.Timing.SubmitDelay.Duration,
		DeleteDelay:     c.Timing.DeleteDelay.Duration,
		NotificationTTL: c.Timing.NotificationTTL.Duration,
	}
}

// Options configures an [Orchestrator]. Zero fields fall back to defaults.
type Options struct {
	Context context.Context
	Store   *store.Store
	Service services.Service
	Logger  *log.Logger
	Timing  *Timing
}

// Orchestrator applies intents to the record manager state.
type Orchestrator struct {
	ctx     context.Context
	store   *store.Store
	service services.Service
	logger  *log.Logger
	timing  Timing

	records    []models.Record
	form       models.Draft
	errors     models.ErrorSet
	sess       session.Session
	query      string
	confirming string

	pending *services.Operation
	opSlot  schedule.Slot
	notes   *notify.Center
}

// New creates an Orchestrator with an empty collection.
func New(opts Options) *Orchestrator {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = shared.DiscardLogger()
	}
	if opts.Store == nil {
		opts.Store = store.New(nil)
	}
	if opts.Service == nil {
		opts.Service = services.NewSimulated(opts.Logger)
	}
	timing := DefaultTiming()
	if opts.Timing != nil {
		timing = *opts.Timing
	}

	return &Orchestrator{
		ctx:     opts.Context,
		store:   opts.Store,
		service: opts.Service,
		logger:  opts.Logger,
		timing:  timing,
		records: []models.Record{},
		errors:  models.ErrorSet{},
		notes:   notify.New(timing.NotificationTTL),
	}
}

// Timing returns the delays in use.
func (o *Orchestrator) Timing() Timing { return o.timing }

// Pending reports whether an operation is in flight.
func (o *Orchestrator) Pending() bool { return o.pending != nil }

// Snapshot returns the current state. Nothing in it aliases the orchestrator's own state.
func (o *Orchestrator) Snapshot() models.Snapshot {
	return models.Snapshot{
		Records:          models.CloneRecords(o.records),
		Visible:          search.Filter(o.records, o.query),
		Form:             o.form,
		Errors:           o.errors.Clone(),
		Session:          o.sess,
		Pending:          o.pending != nil,
		Notification:     o.notes.Current(),
		Query:            o.query,
		ConfirmingDelete: o.confirming,
	}
}

// ChangeField sets a form field and clears that field's error.
func (o *Orchestrator) ChangeField(field models.Field, value string) []schedule.Timer {
	if o.gated("change_field") {
		return nil
	}
	o.form = o.form.With(field, value)
	if o.errors.Has(field) {
		o.errors = o.errors.Without(field)
	}
	return nil
}

// Submit validates the form and, when valid, starts a create or an update.
func (o *Orchestrator) Submit() []schedule.Timer {
	if o.gated("submit") {
		return nil
	}

	o.errors = validation.Validate(o.form, o.records, o.sess)
	if !o.errors.Valid() {
		o.logger.Debug("submit rejected", "errors", len(o.errors))
		return o.show(MsgFixErrors, models.KindError)
	}

	op := services.Operation{Kind: services.OpCreate, Draft: o.form}
	if o.sess.IsEditing() {
		op.Kind = services.OpUpdate
		op.RecordID = o.sess.RecordID()
	}
	return o.start(op, o.timing.SubmitDelay)
}

// BeginEdit loads the visible record at pos into the form.
func (o *Orchestrator) BeginEdit(pos int) []schedule.Timer {
	if o.gated("begin_edit") {
		return nil
	}
	rec, ok := o.resolve(pos)
	if !ok {
		return nil
	}
	if o.sess.Targets(rec.ID) {
		o.logger.Debug("record already under edit", "id", rec.ID, "pos", pos)
		return nil
	}

	o.sess = o.sess.Begin(rec.ID)
	o.form = rec.Draft()
	o.errors = models.ErrorSet{}
	o.confirming = ""
	o.logger.Debug("edit started", "id", rec.ID, "pos", pos)
	return o.show(MsgEditing, models.KindInfo)
}

// RequestDelete asks for confirmation before deleting the visible record at pos.
func (o *Orchestrator) RequestDelete(pos int) []schedule.Timer {
	if o.gated("request_delete") {
		return nil
	}
	rec, ok := o.deletable(pos)
	if !ok {
		return nil
	}
	o.confirming = rec.ID
	o.logger.Debug("delete requested", "id", rec.ID, "pos", pos)
	return nil
}

// ConfirmDelete starts deleting the visible record at pos if it is the one awaiting confirmation.
//
// The outstanding confirmation is consumed whether or not pos matches it.
func (o *Orchestrator) ConfirmDelete(pos int) []schedule.Timer {
	if o.gated("confirm_delete") {
		return nil
	}
	want := o.confirming
	o.confirming = ""

	rec, ok := o.deletable(pos)
	if !ok {
		return nil
	}
	if want == "" || rec.ID != want {
		o.logger.Debug("delete not confirmed for row", "id", rec.ID, "pos", pos)
		return nil
	}
	return o.start(services.Operation{Kind: services.OpDelete, RecordID: rec.ID}, o.timing.DeleteDelay)
}

// CancelDelete drops the outstanding delete confirmation.
func (o *Orchestrator) CancelDelete() []schedule.Timer {
	o.confirming = ""
	return nil
}

// CancelEdit resets the form, errors and session. An info notification is shown when an edit was
// actually in progress.
func (o *Orchestrator) CancelEdit() []schedule.Timer {
	if o.gated("cancel_edit") {
		return nil
	}
	wasEditing := o.sess.IsEditing()

	o.sess = o.sess.Cancel()
	o.form = models.Draft{}
	o.errors = models.ErrorSet{}
	// Cancelling is only offered during an edit, so an idle cancel just clears the form.
	if !wasEditing {
		return nil
	}
	o.logger.Debug("edit cancelled")
	return o.show(MsgEditCancelled, models.KindInfo)
}

// ChangeSearch replaces the search query. The visible list is derived on every snapshot.
func (o *Orchestrator) ChangeSearch(query string) []schedule.Timer {
	o.query = query
	return nil
}

// DismissNotification clears the notification and cancels its expiry.
func (o *Orchestrator) DismissNotification() []schedule.Timer {
	o.notes.Dismiss()
	return nil
}

// Fire delivers an elapsed timer and returns any follow-up timers. Stale timers are ignored.
func (o *Orchestrator) Fire(t schedule.Timer) []schedule.Timer {
	switch t.Kind {
	case schedule.Dismiss:
		o.notes.Expire(t.Token)
		return nil
	case schedule.Operation:
		if !o.opSlot.Fire(t.Token) {
			return nil
		}
		return o.complete()
	default:
		o.logger.Warn("unknown timer", "kind", t.Kind)
		return nil
	}
}

func (o *Orchestrator) start(op services.Operation, delay time.Duration) []schedule.Timer {
	o.pending = &op
	o.logger.Debug("operation started", "op", op.Kind, "id", op.RecordID)
	return []schedule.Timer{{Token: o.opSlot.Arm(), Kind: schedule.Operation, Delay: delay}}
}

func (o *Orchestrator) complete() []schedule.Timer {
	op := *o.pending
	o.pending = nil

	if err := o.service.Commit(o.ctx, op); err != nil {
		o.logger.Error("operation failed", "op", op.Kind, "id", op.RecordID, "err", err)
		return o.show(MsgOperationError, models.KindError)
	}

	var msg string
	switch op.Kind {
	case services.OpCreate:
		var rec models.Record
		o.records, rec = o.store.Create(o.records, op.Draft)
		op.RecordID = rec.ID
		o.resetForm()
		msg = MsgAdded
	case services.OpUpdate:
		var ok bool
		if o.records, ok = o.store.Update(o.records, op.RecordID, op.Draft); !ok {
			o.logger.Warn("update target missing", "id", op.RecordID, "err", shared.ErrRecordNotFound)
		}
		o.resetForm()
		msg = MsgUpdated
	case services.OpDelete:
		var ok bool
		if o.records, ok = o.store.Remove(o.records, op.RecordID); !ok {
			o.logger.Warn("delete target missing", "id", op.RecordID, "err", shared.ErrRecordNotFound)
		}
		if o.confirming == op.RecordID {
			o.confirming = ""
		}
		msg = MsgDeleted
	}

	o.logger.Info("operation completed", "op", op.Kind, "id", op.RecordID)
	return o.show(msg, models.KindSuccess)
}

func (o *Orchestrator) resetForm() {
	o.form = models.Draft{}
	o.errors = models.ErrorSet{}
	o.sess = o.sess.Complete()
}

func (o *Orchestrator) show(message string, kind models.Kind) []schedule.Timer {
	return []schedule.Timer{o.notes.Show(message, kind)}
}

func (o *Orchestrator) gated(intent string) bool {
	if o.pending == nil {
		return false
	}
	o.logger.Debug("intent rejected while pending", "intent", intent)
	return true
}

func (o *Orchestrator) resolve(pos int) (models.Record, bool) {
	visible := search.Filter(o.records, o.query)
	if pos < 0 || pos >= len(visible) {
		o.logger.Warn("row out of range", "pos", pos, "visible", len(visible))
		return models.Record{}, false
	}
	return visible[pos], true
}

func (o *Orchestrator) deletable(pos int) (models.Record, bool) {
	rec, ok := o.resolve(pos)
	if !ok {
		return rec, false
	}
	if o.sess.Targets(rec.ID) {
		o.logger.Debug("record under edit cannot be deleted", "id", rec.ID, "pos", pos)
		return rec, false
	}
	return rec, true
}
