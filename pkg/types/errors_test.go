package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPanicError(t *testing.T) {
	err := NewPanicError("oops", []byte("stack"))
	assert.Equal(t, "task panicked: oops", err.Error())
	assert.Nil(t, err.Unwrap())

	cause := errors.New("root cause")
	err = NewPanicError(cause, nil)
	assert.ErrorIs(t, err, cause)
}

func TestPanicError_As(t *testing.T) {
	var wrapped error = NewPanicError(42, nil)

	var panicErr *PanicError
	assert.ErrorAs(t, wrapped, &panicErr)
	assert.Equal(t, 42, panicErr.Value)
}
