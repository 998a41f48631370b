package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/userdeck/internal/models"
	"github.com/desertthunder/userdeck/internal/shared"
)

// OpKind names the mutation an [Operation] performs.
type OpKind int

const (
	OpCreate OpKind = iota
	OpUpdate
	OpDelete
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("op(%d)", int(k))
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (k OpKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Operation is a mutation captured when it was requested.
//
// RecordID is empty for creates. Draft is empty for deletes.
type Operation struct {
	Kind     OpKind       `json:"kind"`
	RecordID string       `json:"record_id,omitempty"`
	Draft    models.Draft `json:"draft"`
}

// Service commits record operations to a backend.
type Service interface {
	// Commit persists op. A non-nil error rejects it.
	Commit(ctx context.Context, op Operation) error

	// Name returns the name of the backend
	Name() string
}

// Simulated is an in-process [Service] that accepts everything unless told otherwise.
type Simulated struct {
	mu      sync.Mutex
	logger  *log.Logger
	failure error
}

// NewSimulated creates a Simulated backend. A nil logger discards output.
func NewSimulated(logger *log.Logger) *Simulated {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	return &Simulated{logger: logger}
}

// FailNext makes the next Commit return err wrapped in [shared.ErrOperationFailed].
func (s *Simulated) FailNext(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		err = fmt.Errorf("simulated failure")
	}
	s.failure = err
}

func (s *Simulated) Commit(ctx context.Context, op Operation) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrOperationFailed, err)
	}

	s.mu.Lock()
	failure := s.failure
	s.failure = nil
	s.mu.Unlock()

	if failure != nil {
		s.logger.Debug("rejecting operation", "op", op.Kind, "id", op.RecordID)
		return fmt.Errorf("%w: %v", shared.ErrOperationFailed, failure)
	}

	s.logger.Debug("committed operation", "op", op.Kind, "id", op.RecordID)
	return nil
}

func (s *Simulated) Name() string { return "Simulated" }
