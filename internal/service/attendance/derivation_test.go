package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nexushr/workforce-backend-go/internal/config"
	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
)

func derivationConfig() config.AttendanceConfig {
	return config.AttendanceConfig{
		LateThresholdHour:   10,
		LateThresholdMinute: 30,
		FullDayMinutes:      420,
		HalfDayMinutes:      240,
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 31, hour, minute, 0, 0, time.UTC)
}

func TestDerive_FullDayOnTimeIsPresent(t *testing.T) {
	t.Parallel()

	status, workMinutes, isLate := Derive(at(9, 0), at(18, 0), 60, derivationConfig())

	assert.Equal(t, attendance.StatusPresent, status)
	assert.Equal(t, 480, workMinutes)
	assert.False(t, isLate)
}

func TestDerive_FullDayButLateIsHalfDay(t *testing.T) {
	t.Parallel()

	status, workMinutes, isLate := Derive(at(10, 31), at(19, 0), 30, derivationConfig())

	assert.Equal(t, attendance.StatusHalfDay, status)
	assert.Equal(t, 479, workMinutes)
	assert.True(t, isLate)
}

func TestDerive_ExactlyOnThresholdIsNotLate(t *testing.T) {
	t.Parallel()

	_, _, isLate := Derive(at(10, 30), at(18, 0), 0, derivationConfig())

	assert.False(t, isLate)
}

func TestDerive_ShortDayIsHalfDay(t *testing.T) {
	t.Parallel()

	// 5 hours worked
	status, workMinutes, _ := Derive(at(9, 0), at(14, 0), 0, derivationConfig())

	assert.Equal(t, attendance.StatusHalfDay, status)
	assert.Equal(t, 300, workMinutes)
}

func TestDerive_UnderFourHoursIsAbsent(t *testing.T) {
	t.Parallel()

	status, workMinutes, _ := Derive(at(9, 0), at(12, 0), 0, derivationConfig())

	assert.Equal(t, attendance.StatusAbsent, status)
	assert.Equal(t, 180, workMinutes)
}

func TestDerive_BreaksReduceWorkMinutes(t *testing.T) {
	t.Parallel()

	// 9h on the clock, 3h of breaks leaves 6h: half day
	status, workMinutes, _ := Derive(at(9, 0), at(18, 0), 180, derivationConfig())

	assert.Equal(t, attendance.StatusHalfDay, status)
	assert.Equal(t, 360, workMinutes)
}

func TestDerive_OvernightShiftAddsDay(t *testing.T) {
	t.Parallel()

	// Checked in at 22:00, out at 06:00 next day recorded as an earlier
	// clock time: 8 hours, late check-in
	status, workMinutes, isLate := Derive(at(22, 0), at(6, 0), 0, derivationConfig())

	assert.Equal(t, attendance.StatusHalfDay, status)
	assert.Equal(t, 480, workMinutes)
	assert.True(t, isLate)
}

func TestDerive_WorkMinutesNeverNegative(t *testing.T) {
	t.Parallel()

	status, workMinutes, _ := Derive(at(9, 0), at(10, 0), 120, derivationConfig())

	assert.Equal(t, attendance.StatusAbsent, status)
	assert.Equal(t, 0, workMinutes)
}

func TestIsWorkingDay(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	holidays := map[string]bool{"2026-08-31": true}

	assert.False(t, IsWorkingDay(sunday, nil))
	assert.False(t, IsWorkingDay(monday, holidays))
	assert.True(t, IsWorkingDay(monday, map[string]bool{}))
	assert.True(t, IsWorkingDay(monday, nil))
}

func TestInTraining(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, attendance.InTraining(nil, false, 0, 7), "no training start date")
	assert.False(t, attendance.InTraining(&start, true, 3, 7), "already completed")
	assert.True(t, attendance.InTraining(&start, false, 6, 7), "six days accrued")
	assert.False(t, attendance.InTraining(&start, false, 7, 7), "seven days accrued")
}
