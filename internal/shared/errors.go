package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Script errors
	ErrInvalidScript = fmt.Errorf("invalid script")
	ErrUnknownIntent = fmt.Errorf("unknown intent")

	// Operation errors
	ErrOperationFailed = fmt.Errorf("operation failed")
	ErrRecordNotFound  = fmt.Errorf("record not found")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
