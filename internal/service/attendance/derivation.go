package attendance

import (
	"time"

	"github.com/nexushr/workforce-backend-go/internal/config"
	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
)

// Derive turns a closed check-in/check-out pair plus the day's break
// minutes into a verdict. Overnight shifts add 24h when the check-out
// clock time lands before the check-in. Hour thresholds:
// >= 7h on time is present, >= 7h late is half_day, 4-7h is half_day,
// under 4h is absent.
func Derive(checkIn, checkOut time.Time, breakMinutes int, cfg config.AttendanceConfig) (attendance.Status, int, bool) {
	workMinutes := int(checkOut.Sub(checkIn).Minutes())
	if workMinutes < 0 {
		workMinutes += 24 * 60
	}
	workMinutes -= breakMinutes
	if workMinutes < 0 {
		workMinutes = 0
	}

	isLate := isAfterThreshold(checkIn, cfg.LateThresholdHour, cfg.LateThresholdMinute)

	var status attendance.Status
	switch {
	case workMinutes >= cfg.FullDayMinutes && !isLate:
		status = attendance.StatusPresent
	case workMinutes >= cfg.FullDayMinutes:
		status = attendance.StatusHalfDay
	case workMinutes >= cfg.HalfDayMinutes:
		status = attendance.StatusHalfDay
	default:
		status = attendance.StatusAbsent
	}

	return status, workMinutes, isLate
}

// isAfterThreshold compares only the clock time of t.
func isAfterThreshold(t time.Time, hour, minute int) bool {
	if t.Hour() != hour {
		return t.Hour() > hour
	}
	return t.Minute() > minute
}

// IsWorkingDay reports whether attendance is expected on the date:
// not a Sunday and not a holiday.
func IsWorkingDay(date time.Time, holidays map[string]bool) bool {
	if date.Weekday() == time.Sunday {
		return false
	}
	return !holidays[date.Format("2006-01-02")]
}
