package punch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushr/workforce-backend-go/internal/domain/punch"
)

func punchesOf(types ...punch.PunchType) []punch.Punch {
	base := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
	out := make([]punch.Punch, 0, len(types))
	for i, t := range types {
		out = append(out, punch.Punch{
			ID:        "p" + string(rune('0'+i)),
			Type:      t,
			Timestamp: base.Add(time.Duration(i) * time.Hour),
		})
	}
	return out
}

func TestValidateNext_FirstCheckInAccepted(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateNext(nil, punch.TypeCheckIn))
}

func TestValidateNext_SecondCheckInRejected(t *testing.T) {
	t.Parallel()
	day := punchesOf(punch.TypeCheckIn)

	err := ValidateNext(day, punch.TypeCheckIn)

	assert.ErrorIs(t, err, punch.ErrAlreadyCheckedIn)
}

func TestValidateNext_SecondCheckInRejectedEvenAfterBreak(t *testing.T) {
	t.Parallel()
	day := punchesOf(punch.TypeCheckIn, punch.TypeBreakStart, punch.TypeBreakEnd)

	err := ValidateNext(day, punch.TypeCheckIn)

	assert.ErrorIs(t, err, punch.ErrAlreadyCheckedIn)
}

func TestValidateNext_CheckOutRequiresCheckIn(t *testing.T) {
	t.Parallel()
	err := ValidateNext(nil, punch.TypeCheckOut)

	assert.ErrorIs(t, err, punch.ErrNotCheckedIn)
}

func TestValidateNext_SecondCheckOutRejected(t *testing.T) {
	t.Parallel()
	day := punchesOf(punch.TypeCheckIn, punch.TypeCheckOut)

	err := ValidateNext(day, punch.TypeCheckOut)

	assert.ErrorIs(t, err, punch.ErrAlreadyCheckedOut)
}

func TestValidateNext_NoPunchesAfterCheckOut(t *testing.T) {
	t.Parallel()
	day := punchesOf(punch.TypeCheckIn, punch.TypeCheckOut)

	for _, incoming := range []punch.PunchType{punch.TypeCheckIn, punch.TypeBreakStart, punch.TypeBreakEnd} {
		err := ValidateNext(day, incoming)
		assert.ErrorIs(t, err, punch.ErrDayClosed, "punch type %s", incoming)
	}
}

func TestValidateNext_BreakStartNeedsCheckInOrClosedBreak(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ValidateNext(nil, punch.TypeBreakStart), punch.ErrBreakNotAllowed)

	afterCheckIn := punchesOf(punch.TypeCheckIn)
	assert.NoError(t, ValidateNext(afterCheckIn, punch.TypeBreakStart))

	onBreak := punchesOf(punch.TypeCheckIn, punch.TypeBreakStart)
	assert.ErrorIs(t, ValidateNext(onBreak, punch.TypeBreakStart), punch.ErrBreakNotAllowed)

	afterBreak := punchesOf(punch.TypeCheckIn, punch.TypeBreakStart, punch.TypeBreakEnd)
	assert.NoError(t, ValidateNext(afterBreak, punch.TypeBreakStart))
}

func TestValidateNext_BreakEndNeedsOpenBreak(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, ValidateNext(nil, punch.TypeBreakEnd), punch.ErrNoOpenBreak)

	closed := punchesOf(punch.TypeCheckIn, punch.TypeBreakStart, punch.TypeBreakEnd)
	assert.ErrorIs(t, ValidateNext(closed, punch.TypeBreakEnd), punch.ErrNoOpenBreak)

	open := punchesOf(punch.TypeCheckIn, punch.TypeBreakStart)
	assert.NoError(t, ValidateNext(open, punch.TypeBreakEnd))
}

func TestValidateNext_InvalidType(t *testing.T) {
	t.Parallel()
	err := ValidateNext(nil, punch.PunchType("lunch"))

	assert.ErrorIs(t, err, punch.ErrInvalidPunchType)
}

func TestValidateNext_FullValidSequence(t *testing.T) {
	t.Parallel()

	sequence := []punch.PunchType{
		punch.TypeCheckIn,
		punch.TypeBreakStart,
		punch.TypeBreakEnd,
		punch.TypeBreakStart,
		punch.TypeBreakEnd,
		punch.TypeCheckOut,
	}

	var day []punch.Punch
	for _, next := range sequence {
		require.NoError(t, ValidateNext(day, next), "punch type %s", next)
		day = punchesOf(append(typesOf(day), next)...)
	}
}

func typesOf(punches []punch.Punch) []punch.PunchType {
	out := make([]punch.PunchType, 0, len(punches))
	for _, p := range punches {
		out = append(out, p.Type)
	}
	return out
}

func TestDayState(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		types        []punch.PunchType
		isCheckedIn  bool
		isOnBreak    bool
		isCheckedOut bool
	}{
		{"no punches", nil, false, false, false},
		{"checked in", []punch.PunchType{punch.TypeCheckIn}, true, false, false},
		{"on break", []punch.PunchType{punch.TypeCheckIn, punch.TypeBreakStart}, false, true, false},
		{"back from break", []punch.PunchType{punch.TypeCheckIn, punch.TypeBreakStart, punch.TypeBreakEnd}, true, false, false},
		{"checked out", []punch.PunchType{punch.TypeCheckIn, punch.TypeCheckOut}, false, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			in, onBreak, out := DayState(punchesOf(c.types...))
			assert.Equal(t, c.isCheckedIn, in)
			assert.Equal(t, c.isOnBreak, onBreak)
			assert.Equal(t, c.isCheckedOut, out)
		})
	}
}

func TestOpenBreakStart(t *testing.T) {
	t.Parallel()

	assert.Nil(t, OpenBreakStart(punchesOf(punch.TypeCheckIn)))
	assert.Nil(t, OpenBreakStart(punchesOf(punch.TypeCheckIn, punch.TypeBreakStart, punch.TypeBreakEnd)))

	open := OpenBreakStart(punchesOf(punch.TypeCheckIn, punch.TypeBreakStart))
	if assert.NotNil(t, open) {
		assert.Equal(t, punch.TypeBreakStart, open.Type)
	}
}

func TestInLunchWindow(t *testing.T) {
	t.Parallel()

	at := func(h, m, s int) time.Time {
		return time.Date(2026, 8, 31, h, m, s, 0, time.UTC)
	}

	cases := []struct {
		name  string
		start time.Time
		want  bool
	}{
		{"just before opening", at(13, 59, 59), false},
		{"opening minute", at(14, 0, 0), true},
		{"mid window", at(14, 30, 0), true},
		{"closing instant included", at(15, 0, 0), true},
		{"one second past closing", at(15, 0, 1), false},
		{"morning break", at(11, 15, 0), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, InLunchWindow(c.start, 14, 15))
		})
	}
}
