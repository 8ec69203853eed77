package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByID retrieves attendance by ID
	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndDate retrieves the verdict for an employee on a date,
	// nil when none exists. The (employee, date) pair is unique.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// Update updates an existing attendance record
	Update(ctx context.Context, att Attendance) error

	// List retrieves attendance records with filters
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)

	// CountTrainingDays counts rows with training status for an employee
	CountTrainingDays(ctx context.Context, employeeID string) (int, error)

	// TalliesForEmployee aggregates statuses over [from, to] inclusive
	TalliesForEmployee(ctx context.Context, employeeID string, from, to time.Time) (Tallies, error)

	// TalliesForAll aggregates statuses over [from, to] across all employees
	TalliesForAll(ctx context.Context, from, to time.Time) (Tallies, error)
}

type StatusChangeLogRepository interface {
	// Create appends an audit entry for a manual status change
	Create(ctx context.Context, log StatusChangeLog) (StatusChangeLog, error)

	// ListByAttendance retrieves audit entries for one record, newest first
	ListByAttendance(ctx context.Context, attendanceID string) ([]StatusChangeLog, error)
}

type AttendanceService interface {
	// List retrieves attendance records with filters
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)

	// ChangeStatus applies a manual override and writes the audit entry
	ChangeStatus(ctx context.Context, req ChangeStatusRequest) (ChangeStatusResponse, error)

	// ChangeLogs retrieves the audit trail for a record
	ChangeLogs(ctx context.Context, attendanceID string) ([]StatusChangeLogResponse, error)

	// SweepAbsences back-fills absent verdicts for unaccounted working days
	SweepAbsences(ctx context.Context) (int, error)

	// WriteTrainingDay writes today's verdict as training at check-in
	WriteTrainingDay(ctx context.Context, employeeID string, date time.Time, checkIn time.Time) error

	// DeriveDay derives and stores the verdict for a closed punch day
	DeriveDay(ctx context.Context, employeeID string, date time.Time) (Status, error)

	// RecheckTraining re-evaluates training completion after an attendance
	// write and returns true when it completed just now
	RecheckTraining(ctx context.Context, employeeID string) (bool, error)
}
