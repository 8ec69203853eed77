package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			id, attendance_code, employee_id, attendance_date, status,
			check_in_time, check_out_time, work_minutes, break_minutes,
			is_late, auto_derived, leave_application_id
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.ID,
		att.AttendanceCode,
		att.EmployeeID,
		att.Date,
		att.Status,
		att.CheckInTime,
		att.CheckOutTime,
		att.WorkMinutes,
		att.BreakMinutes,
		att.IsLate,
		att.AutoDerived,
		att.LeaveApplicationID,
	).Scan(&att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.attendance_code, a.employee_id, a.attendance_date, a.status,
			   a.check_in_time, a.check_out_time, a.work_minutes, a.break_minutes,
			   a.is_late, a.auto_derived, a.leave_application_id,
			   a.created_at, a.updated_at,
			   e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.id = $1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, id).Scan(
		&att.ID, &att.AttendanceCode, &att.EmployeeID, &att.Date, &att.Status,
		&att.CheckInTime, &att.CheckOutTime, &att.WorkMinutes, &att.BreakMinutes,
		&att.IsLate, &att.AutoDerived, &att.LeaveApplicationID,
		&att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, attendance_code, employee_id, attendance_date, status,
			   check_in_time, check_out_time, work_minutes, break_minutes,
			   is_late, auto_derived, leave_application_id,
			   created_at, updated_at
		FROM attendances
		WHERE employee_id = $1
		  AND attendance_date = $2
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")).Scan(
		&att.ID, &att.AttendanceCode, &att.EmployeeID, &att.Date, &att.Status,
		&att.CheckInTime, &att.CheckOutTime, &att.WorkMinutes, &att.BreakMinutes,
		&att.IsLate, &att.AutoDerived, &att.LeaveApplicationID,
		&att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // no verdict for this day yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET status = $2,
			check_in_time = $3,
			check_out_time = $4,
			work_minutes = $5,
			break_minutes = $6,
			is_late = $7,
			auto_derived = $8,
			leave_application_id = $9,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.Status,
		att.CheckInTime,
		att.CheckOutTime,
		att.WorkMinutes,
		att.BreakMinutes,
		att.IsLate,
		att.AutoDerived,
		att.LeaveApplicationID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT a.id, a.attendance_code, a.employee_id, a.attendance_date, a.status,
			   a.check_in_time, a.check_out_time, a.work_minutes, a.break_minutes,
			   a.is_late, a.auto_derived, a.leave_application_id,
			   a.created_at, a.updated_at,
			   e.full_name AS employee_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
	`

	var conditions []string
	var args []interface{}
	argIndex := 1

	if filter.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIndex))
		args = append(args, *filter.EmployeeID)
		argIndex++
	}
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.attendance_date >= $%d", argIndex))
		args = append(args, *filter.StartDate)
		argIndex++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("a.attendance_date <= $%d", argIndex))
		args = append(args, *filter.EndDate)
		argIndex++
	}
	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argIndex))
		args = append(args, *filter.Status)
		argIndex++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY a.attendance_date DESC, e.full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.AttendanceCode, &att.EmployeeID, &att.Date, &att.Status,
			&att.CheckInTime, &att.CheckOutTime, &att.WorkMinutes, &att.BreakMinutes,
			&att.IsLate, &att.AutoDerived, &att.LeaveApplicationID,
			&att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendances: %w", err)
	}

	return records, nil
}

// CountTrainingDays implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountTrainingDays(ctx context.Context, employeeID string) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT COUNT(*) FROM attendances WHERE employee_id = $1 AND status = 'training'`

	var count int
	if err := q.QueryRow(ctx, query, employeeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count training days: %w", err)
	}

	return count, nil
}

const talliesQuery = `
	SELECT
		COUNT(*) FILTER (WHERE status = 'present'),
		COUNT(*) FILTER (WHERE status = 'absent' OR status = 'no_call_no_present'),
		COUNT(*) FILTER (WHERE status = 'half_day'),
		COUNT(*) FILTER (WHERE status = 'on_leave'),
		COUNT(*) FILTER (WHERE status = 'holiday'),
		COUNT(*) FILTER (WHERE status = 'lwp'),
		COUNT(*) FILTER (WHERE status = 'training')
	FROM attendances
	WHERE attendance_date BETWEEN $1 AND $2
`

// TalliesForEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) TalliesForEmployee(ctx context.Context, employeeID string, from, to time.Time) (attendance.Tallies, error) {
	q := GetQuerier(ctx, a.db)

	query := talliesQuery + ` AND employee_id = $3`

	var t attendance.Tallies
	err := q.QueryRow(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"), employeeID).Scan(
		&t.Present, &t.Absent, &t.HalfDays, &t.Leaves, &t.Holidays, &t.LWP, &t.Training,
	)
	if err != nil {
		return attendance.Tallies{}, fmt.Errorf("failed to tally attendance for employee: %w", err)
	}

	return t, nil
}

// TalliesForAll implements attendance.AttendanceRepository.
func (a *attendanceRepository) TalliesForAll(ctx context.Context, from, to time.Time) (attendance.Tallies, error) {
	q := GetQuerier(ctx, a.db)

	var t attendance.Tallies
	err := q.QueryRow(ctx, talliesQuery, from.Format("2006-01-02"), to.Format("2006-01-02")).Scan(
		&t.Present, &t.Absent, &t.HalfDays, &t.Leaves, &t.Holidays, &t.LWP, &t.Training,
	)
	if err != nil {
		return attendance.Tallies{}, fmt.Errorf("failed to tally attendance: %w", err)
	}

	return t, nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

type statusChangeLogRepository struct {
	db *database.DB
}

// Create implements attendance.StatusChangeLogRepository.
func (s *statusChangeLogRepository) Create(ctx context.Context, entry attendance.StatusChangeLog) (attendance.StatusChangeLog, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO attendance_status_change_logs (
			id, attendance_id, old_status, new_status, reason,
			changed_by_name, changed_by_role
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		entry.ID,
		entry.AttendanceID,
		entry.OldStatus,
		entry.NewStatus,
		entry.Reason,
		entry.ChangedByName,
		entry.ChangedByRole,
	).Scan(&entry.CreatedAt)

	if err != nil {
		return attendance.StatusChangeLog{}, fmt.Errorf("failed to create status change log: %w", err)
	}

	return entry, nil
}

// ListByAttendance implements attendance.StatusChangeLogRepository.
func (s *statusChangeLogRepository) ListByAttendance(ctx context.Context, attendanceID string) ([]attendance.StatusChangeLog, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		SELECT id, attendance_id, old_status, new_status, reason,
			   changed_by_name, changed_by_role, created_at
		FROM attendance_status_change_logs
		WHERE attendance_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list status change logs: %w", err)
	}
	defer rows.Close()

	var entries []attendance.StatusChangeLog
	for rows.Next() {
		var entry attendance.StatusChangeLog
		err := rows.Scan(
			&entry.ID, &entry.AttendanceID, &entry.OldStatus, &entry.NewStatus, &entry.Reason,
			&entry.ChangedByName, &entry.ChangedByRole, &entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan status change log: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status change logs: %w", err)
	}

	return entries, nil
}

func NewStatusChangeLogRepository(db *database.DB) attendance.StatusChangeLogRepository {
	return &statusChangeLogRepository{db: db}
}
