package attendance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexushr/workforce-backend-go/internal/config"
	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/domain/holiday"
	"github.com/nexushr/workforce-backend-go/internal/domain/punch"
	"github.com/nexushr/workforce-backend-go/internal/domain/sequence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
	"github.com/nexushr/workforce-backend-go/internal/repository/postgresql"
)

type AttendanceServiceImpl struct {
	db           *database.DB
	attRepo      attendance.AttendanceRepository
	logRepo      attendance.StatusChangeLogRepository
	punchRepo    punch.PunchRepository
	breakRepo    punch.BreakRepository
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.HolidayRepository
	seq          sequence.Generator
	cfg          config.AttendanceConfig
}

func NewAttendanceService(
	db *database.DB,
	attRepo attendance.AttendanceRepository,
	logRepo attendance.StatusChangeLogRepository,
	punchRepo punch.PunchRepository,
	breakRepo punch.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	seq sequence.Generator,
	cfg config.AttendanceConfig,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:           db,
		attRepo:      attRepo,
		logRepo:      logRepo,
		punchRepo:    punchRepo,
		breakRepo:    breakRepo,
		employeeRepo: employeeRepo,
		holidayRepo:  holidayRepo,
		seq:          seq,
		cfg:          cfg,
	}
}

func (s *AttendanceServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	records, err := s.attRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}
	return responses, nil
}

func (s *AttendanceServiceImpl) ChangeStatus(ctx context.Context, req attendance.ChangeStatusRequest) (attendance.ChangeStatusResponse, error) {
	act, err := actor.FromContext(ctx)
	if err != nil {
		return attendance.ChangeStatusResponse{}, err
	}

	newStatus := attendance.Status(strings.ToLower(req.Status))
	if !newStatus.Valid() {
		return attendance.ChangeStatusResponse{}, attendance.ErrInvalidStatus
	}
	if strings.TrimSpace(req.Reason) == "" {
		return attendance.ChangeStatusResponse{}, attendance.ErrReasonRequired
	}

	var resp attendance.ChangeStatusResponse
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		att, err := s.attRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if att.Status == newStatus {
			return attendance.ErrSameStatus
		}

		oldStatus := att.Status
		att.Status = newStatus
		att.AutoDerived = false
		if err := s.attRepo.Update(txCtx, att); err != nil {
			return err
		}

		entry, err := s.logRepo.Create(txCtx, attendance.StatusChangeLog{
			ID:            uuid.NewString(),
			AttendanceID:  att.ID,
			OldStatus:     oldStatus,
			NewStatus:     newStatus,
			Reason:        req.Reason,
			ChangedByName: act.Name,
			ChangedByRole: act.Role,
		})
		if err != nil {
			return err
		}

		resp = attendance.ChangeStatusResponse{
			Attendance: mapAttendanceToResponse(att),
			AuditEntry: mapLogToResponse(entry),
		}
		return nil
	})
	if err != nil {
		return attendance.ChangeStatusResponse{}, err
	}

	return resp, nil
}

func (s *AttendanceServiceImpl) ChangeLogs(ctx context.Context, attendanceID string) ([]attendance.StatusChangeLogResponse, error) {
	if _, err := s.attRepo.GetByID(ctx, attendanceID); err != nil {
		return nil, err
	}

	logs, err := s.logRepo.ListByAttendance(ctx, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("list status change logs: %w", err)
	}

	responses := make([]attendance.StatusChangeLogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, mapLogToResponse(entry))
	}
	return responses, nil
}

// SweepAbsences back-fills absent verdicts for past working days with no
// attendance row and no punch at all, up to the configured lookback.
// It guarantees every working day eventually carries exactly one verdict.
func (s *AttendanceServiceImpl) SweepAbsences(ctx context.Context) (int, error) {
	today := dateOnly(time.Now())
	from := today.AddDate(0, 0, -s.cfg.SweepLookbackDays)

	holidays, err := holiday.SetBetween(ctx, s.holidayRepo, from, today)
	if err != nil {
		return 0, fmt.Errorf("load holidays: %w", err)
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return 0, fmt.Errorf("list employees: %w", err)
	}

	marked := 0
	for _, emp := range employees {
		start := from
		joined := dateOnly(emp.JoiningDate)
		if joined.After(start) {
			start = joined
		}

		for d := start; d.Before(today); d = d.AddDate(0, 0, 1) {
			if !IsWorkingDay(d, holidays) {
				continue
			}

			existing, err := s.attRepo.GetByEmployeeAndDate(ctx, emp.ID, d)
			if err != nil {
				return marked, err
			}
			if existing != nil {
				continue
			}

			hasPunch, err := s.punchRepo.HasPunchOn(ctx, emp.ID, d)
			if err != nil {
				return marked, err
			}
			if hasPunch {
				continue
			}

			code, err := s.seq.Next(ctx, "ATT", d)
			if err != nil {
				return marked, err
			}
			_, err = s.attRepo.Create(ctx, attendance.Attendance{
				ID:             uuid.NewString(),
				AttendanceCode: code,
				EmployeeID:     emp.ID,
				Date:           d,
				Status:         attendance.StatusAbsent,
				AutoDerived:    true,
			})
			if err != nil {
				return marked, err
			}
			marked++
		}
	}

	return marked, nil
}

func (s *AttendanceServiceImpl) WriteTrainingDay(ctx context.Context, employeeID string, date time.Time, checkIn time.Time) error {
	existing, err := s.attRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Status == attendance.StatusTraining {
			return nil
		}
		existing.Status = attendance.StatusTraining
		existing.CheckInTime = &checkIn
		existing.AutoDerived = true
		return s.attRepo.Update(ctx, *existing)
	}

	code, err := s.seq.Next(ctx, "ATT", date)
	if err != nil {
		return err
	}
	_, err = s.attRepo.Create(ctx, attendance.Attendance{
		ID:             uuid.NewString(),
		AttendanceCode: code,
		EmployeeID:     employeeID,
		Date:           date,
		Status:         attendance.StatusTraining,
		CheckInTime:    &checkIn,
		AutoDerived:    true,
	})
	return err
}

func (s *AttendanceServiceImpl) DeriveDay(ctx context.Context, employeeID string, date time.Time) (attendance.Status, error) {
	punches, err := s.punchRepo.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return "", err
	}

	var checkIn, checkOut *time.Time
	for _, p := range punches {
		switch p.Type {
		case punch.TypeCheckIn:
			t := p.Timestamp
			checkIn = &t
		case punch.TypeCheckOut:
			t := p.Timestamp
			checkOut = &t
		}
	}
	if checkIn == nil || checkOut == nil {
		return "", punch.ErrNotCheckedIn
	}

	breaks, err := s.breakRepo.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return "", err
	}
	breakMinutes := 0
	for _, b := range breaks {
		if b.DurationMinutes != nil {
			breakMinutes += *b.DurationMinutes
		}
	}

	status, workMinutes, isLate := Derive(*checkIn, *checkOut, breakMinutes, s.cfg)

	existing, err := s.attRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return "", err
	}
	if existing != nil {
		existing.Status = status
		existing.CheckInTime = checkIn
		existing.CheckOutTime = checkOut
		existing.WorkMinutes = &workMinutes
		existing.BreakMinutes = breakMinutes
		existing.IsLate = isLate
		existing.AutoDerived = true
		if err := s.attRepo.Update(ctx, *existing); err != nil {
			return "", err
		}
		return status, nil
	}

	code, err := s.seq.Next(ctx, "ATT", date)
	if err != nil {
		return "", err
	}
	_, err = s.attRepo.Create(ctx, attendance.Attendance{
		ID:             uuid.NewString(),
		AttendanceCode: code,
		EmployeeID:     employeeID,
		Date:           date,
		Status:         status,
		CheckInTime:    checkIn,
		CheckOutTime:   checkOut,
		WorkMinutes:    &workMinutes,
		BreakMinutes:   breakMinutes,
		IsLate:         isLate,
		AutoDerived:    true,
	})
	if err != nil {
		return "", err
	}
	return status, nil
}

func (s *AttendanceServiceImpl) RecheckTraining(ctx context.Context, employeeID string) (bool, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if emp.TrainingStartDate == nil || emp.TrainingCompleted {
		return false, nil
	}

	trainingDays, err := s.attRepo.CountTrainingDays(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if trainingDays < s.cfg.TrainingDays {
		return false, nil
	}

	if err := s.employeeRepo.MarkTrainingCompleted(ctx, employeeID); err != nil {
		return false, err
	}
	return true, nil
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:             att.ID,
		AttendanceCode: att.AttendanceCode,
		EmployeeID:     att.EmployeeID,
		EmployeeName:   att.EmployeeName,
		Date:           att.Date.Format("2006-01-02"),
		Status:         string(att.Status),
		WorkMinutes:    att.WorkMinutes,
		BreakMinutes:   att.BreakMinutes,
		IsLate:         att.IsLate,
		AutoDerived:    att.AutoDerived,
	}
	if att.CheckInTime != nil {
		formatted := att.CheckInTime.Format(time.RFC3339)
		resp.CheckInTime = &formatted
	}
	if att.CheckOutTime != nil {
		formatted := att.CheckOutTime.Format(time.RFC3339)
		resp.CheckOutTime = &formatted
	}
	return resp
}

func mapLogToResponse(entry attendance.StatusChangeLog) attendance.StatusChangeLogResponse {
	return attendance.StatusChangeLogResponse{
		ID:            entry.ID,
		AttendanceID:  entry.AttendanceID,
		OldStatus:     string(entry.OldStatus),
		NewStatus:     string(entry.NewStatus),
		Reason:        entry.Reason,
		ChangedByName: entry.ChangedByName,
		ChangedByRole: entry.ChangedByRole,
		ChangedAt:     entry.CreatedAt.Format(time.RFC3339),
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
