package types

import (
	"errors"
	"fmt"
)

// Predefined errors
var (
	// ErrChannelClosed indicates the channel has been closed and no longer
	// accepts items
	ErrChannelClosed = errors.New("channel is closed")

	// ErrPoolStopped indicates the pool has been stopped and no longer
	// accepts tasks
	ErrPoolStopped = errors.New("pool is stopped")
)

// PanicError wraps a panic recovered while executing a submitted task.
// The worker that recovered it keeps running; the panic surfaces to the
// submitter through the task's future.
type PanicError struct {
	// Value is the value the task panicked with
	Value any

	// Stack is the stack trace captured at recovery
	Stack []byte
}

// NewPanicError creates a PanicError from a recovered value and stack trace
func NewPanicError(value any, stack []byte) *PanicError {
	return &PanicError{Value: value, Stack: stack}
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}

// Unwrap returns the panic value when it was itself an error
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
