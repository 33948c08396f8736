package xerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetailedErrorsMatchSentinels(t *testing.T) {
	err := Wrap(Invalid("Name is required"), "create company")

	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "create company: Name is required", err.Error())

	nf := NotFound("Deal not found")
	assert.True(t, errors.Is(nf, ErrNotFound))
	assert.Equal(t, "Deal not found", nf.Error())
}

func TestConflictKeepsCause(t *testing.T) {
	cause := errors.New("FOREIGN KEY constraint failed")
	err := Conflict(cause)

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause.Error(), err.Error())
	assert.Nil(t, Conflict(nil))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "delete deal"))
}
