package attendance

import "time"

type Status string

const (
	StatusPresent   Status = "present"
	StatusHalfDay   Status = "half_day"
	StatusAbsent    Status = "absent"
	StatusOnLeave   Status = "on_leave"
	StatusHoliday   Status = "holiday"
	StatusLWP       Status = "lwp"
	StatusNoCall    Status = "no_call_no_present"
	StatusTraining  Status = "training"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusHalfDay, StatusAbsent, StatusOnLeave,
		StatusHoliday, StatusLWP, StatusNoCall, StatusTraining:
		return true
	}
	return false
}

// Attendance is the single daily verdict per employee. At most one row
// exists per (employee, date).
type Attendance struct {
	ID                 string
	AttendanceCode     string
	EmployeeID         string
	Date               time.Time
	Status             Status
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	WorkMinutes        *int
	BreakMinutes       int
	IsLate             bool
	AutoDerived        bool
	LeaveApplicationID *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// DTO
	EmployeeName *string
}

// StatusChangeLog records a manual override of an attendance verdict.
type StatusChangeLog struct {
	ID            string
	AttendanceID  string
	OldStatus     Status
	NewStatus     Status
	Reason        string
	ChangedByName string
	ChangedByRole string
	CreatedAt     time.Time
}

// Tallies aggregates verdicts over a date window.
type Tallies struct {
	Present  int
	Absent   int
	HalfDays int
	Leaves   int
	Holidays int
	LWP      int
	Training int
}
