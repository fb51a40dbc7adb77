package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrUnknownCommand indicates the command name is not recognized.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrUsage indicates missing or invalid command arguments.
	ErrUsage = errors.New("invalid usage")

	// ErrNoRules indicates a command needs a rule set but none was configured.
	ErrNoRules = errors.New("no rule set configured")

	// ErrCheckFailed indicates a rule set failed its self-check or lint.
	ErrCheckFailed = errors.New("rule set check failed")
)

// OperationError represents an error that occurred during a specific operation.
type OperationError struct {
	Op     string // Operation name (e.g., "read", "write", "apply")
	Target string // Target of the operation (e.g., file path, rule set name)
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}

	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// usageError wraps ErrUsage with a message.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUsage, fmt.Sprintf(format, args...))
}
