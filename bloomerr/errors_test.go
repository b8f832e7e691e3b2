package bloomerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidArgumentWrapsSentinel(t *testing.T) {
	err := InvalidArgument("bad value: %d", 7)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Contains(t, err.Error(), "bad value: 7")
	assert.False(t, errors.Is(err, ErrImmutable))
}

func TestImmutableWrapsSentinel(t *testing.T) {
	err := Immutable("%s is read-only", "set")
	assert.ErrorIs(t, err, ErrImmutable)
	assert.Contains(t, err.Error(), "set is read-only")
}

func TestInvalidStateWrapsSentinel(t *testing.T) {
	err := InvalidState("construction failed")
	assert.ErrorIs(t, err, ErrInvalidState)
}
