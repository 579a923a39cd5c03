//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"meeting-room-booking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	cause := errors.New("pg: connection reset")
	marked := errs.Mark(errs.Wrap(cause, "insert reservation"), errs.ErrDatabaseOperationFailed)

	assert.True(t, errs.Is(marked, errs.ErrDatabaseOperationFailed))
	assert.True(t, errs.Is(marked, cause))
	assert.False(t, errs.Is(marked, errs.ErrReservationConflict))
	assert.Contains(t, marked.Error(), "insert reservation")
}

func TestMark_NilErrReturnsMark(t *testing.T) {
	assert.Equal(t, errs.ErrForbidden, errs.Mark(nil, errs.ErrForbidden))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
}

func TestExtractStackLines(t *testing.T) {
	lines := errs.ExtractStackLines(errs.New("boom"), 3)
	assert.Len(t, lines, 3)
	assert.Nil(t, errs.ExtractStackLines(nil, 3))
}

func TestWrapf_KeepsMarks(t *testing.T) {
	err := errs.Wrapf(errs.Mark(errs.Newf("room %d busy", 7), errs.ErrReservationConflict), "create in %s", "zurich")

	assert.True(t, errs.Is(err, errs.ErrReservationConflict))
	assert.Equal(t, "create in zurich: room 7 busy", err.Error())
	assert.NoError(t, errs.Wrapf(nil, "ignored %d", 1))
}

func TestWithDetail_NotInMessage(t *testing.T) {
	err := errs.WithDetail(errs.New("lock timeout"), "room=abc attempt=3")

	assert.Equal(t, "lock timeout", err.Error())
	assert.Equal(t, []string{"room=abc attempt=3"}, errs.Details(err))
	assert.NoError(t, errs.WithDetail(nil, "ignored"))
}
