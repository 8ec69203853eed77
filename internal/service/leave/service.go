package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/domain/holiday"
	"github.com/nexushr/workforce-backend-go/internal/domain/leave"
	"github.com/nexushr/workforce-backend-go/internal/domain/sequence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
	"github.com/nexushr/workforce-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db           *database.DB
	appRepo      leave.ApplicationRepository
	balanceRepo  leave.BalanceRepository
	attRepo      attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	holidayRepo  holiday.HolidayRepository
	seq          sequence.Generator
}

func NewLeaveService(
	db *database.DB,
	appRepo leave.ApplicationRepository,
	balanceRepo leave.BalanceRepository,
	attRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	holidayRepo holiday.HolidayRepository,
	seq sequence.Generator,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:           db,
		appRepo:      appRepo,
		balanceRepo:  balanceRepo,
		attRepo:      attRepo,
		employeeRepo: employeeRepo,
		holidayRepo:  holidayRepo,
		seq:          seq,
	}
}

func (s *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyRequest) (leave.ApplicationResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.ApplicationResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.ApplicationResponse{}, err
	}
	if !emp.IsActive {
		return leave.ApplicationResponse{}, employee.ErrEmployeeInactive
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	if end.Before(start) {
		return leave.ApplicationResponse{}, leave.ErrInvalidDateRange
	}

	holidays, err := holiday.SetBetween(ctx, s.holidayRepo, start, end)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("load holidays: %w", err)
	}

	workingDays := WorkingDays(start, end, holidays)
	totalDays := len(workingDays)
	if totalDays == 0 {
		return leave.ApplicationResponse{}, leave.ErrZeroWorkingDays
	}

	leaveType := leave.LeaveType(strings.ToLower(req.Type))
	if leaveType == leave.TypeCombined && req.CasualDays+req.SickDays != totalDays {
		return leave.ApplicationResponse{}, leave.ErrInvalidCombinedSplit
	}

	overlap, err := s.appRepo.HasOverlap(ctx, req.EmployeeID, start, end)
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("check overlap: %w", err)
	}
	if overlap {
		return leave.ApplicationResponse{}, leave.ErrOverlappingLeave
	}

	// Insufficient balance does not block the application; the shortfall
	// becomes unpaid days at approval time. Warn the applicant up front.
	warning := ""
	balance, err := s.balanceRepo.Get(ctx, req.EmployeeID)
	if err == nil {
		balance = ResetBuckets(balance, time.Now())
		alloc := Allocate(balance, leaveType, totalDays, req.CasualDays, req.SickDays)
		if alloc.UnpaidDays > 0 {
			warning = fmt.Sprintf("insufficient balance: %d of %d day(s) will be unpaid if approved", alloc.UnpaidDays, totalDays)
		}
	}

	code, err := s.seq.Next(ctx, "LV", time.Now())
	if err != nil {
		return leave.ApplicationResponse{}, err
	}

	app, err := s.appRepo.Create(ctx, leave.Application{
		ID:              uuid.NewString(),
		LeaveCode:       code,
		EmployeeID:      req.EmployeeID,
		StartDate:       start,
		EndDate:         end,
		TotalDays:       totalDays,
		Type:            leaveType,
		RequestedCasual: req.CasualDays,
		RequestedSick:   req.SickDays,
		Reason:          req.Reason,
		Status:          leave.StatusPending,
	})
	if err != nil {
		return leave.ApplicationResponse{}, fmt.Errorf("create leave application: %w", err)
	}

	resp := mapApplicationToResponse(app)
	resp.BalanceWarning = warning
	return resp, nil
}

func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.DecideResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.DecideResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return leave.DecideResponse{}, err
	}

	var resp leave.DecideResponse
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		app, err := s.appRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}
		if app.Status != leave.StatusPending {
			return leave.ErrAlreadyDecided
		}

		now := time.Now()
		app.DecidedByName = &act.Name
		app.DecidedByRole = &act.Role
		app.DecidedAt = &now
		if req.Remarks != "" {
			app.Remarks = &req.Remarks
		}

		if strings.ToLower(req.Action) == "reject" {
			app.Status = leave.StatusRejected
			if err := s.appRepo.Update(txCtx, app); err != nil {
				return err
			}
			balance, err := s.balanceRepo.Get(txCtx, app.EmployeeID)
			if err != nil {
				return err
			}
			resp = leave.DecideResponse{
				Application:  mapApplicationToResponse(app),
				BalanceAfter: mapBalanceToResponse(ResetBuckets(balance, now)),
			}
			return nil
		}

		balance, err := s.balanceRepo.GetForUpdate(txCtx, app.EmployeeID)
		if err != nil {
			return err
		}
		balance = ResetBuckets(balance, now)

		alloc := Allocate(balance, app.Type, app.TotalDays, app.RequestedCasual, app.RequestedSick)
		balance.CasualTaken += alloc.CasualDeducted
		balance.SickBalance -= float64(alloc.SickDeducted)
		if err := s.balanceRepo.Update(txCtx, balance); err != nil {
			return err
		}

		app.Status = leave.StatusApproved
		app.CasualDeducted = alloc.CasualDeducted
		app.SickDeducted = alloc.SickDeducted
		app.UnpaidDays = alloc.UnpaidDays
		if err := s.appRepo.Update(txCtx, app); err != nil {
			return err
		}

		if err := s.writeLeaveAttendance(txCtx, app, alloc); err != nil {
			return err
		}

		resp = leave.DecideResponse{
			Application:  mapApplicationToResponse(app),
			BalanceAfter: mapBalanceToResponse(balance),
		}
		return nil
	})
	if err != nil {
		return leave.DecideResponse{}, err
	}

	return resp, nil
}

// writeLeaveAttendance stamps every working day of the approved range:
// the first paid days as on_leave, the remainder as lwp.
func (s *LeaveServiceImpl) writeLeaveAttendance(ctx context.Context, app leave.Application, alloc Allocation) error {
	holidays, err := holiday.SetBetween(ctx, s.holidayRepo, app.StartDate, app.EndDate)
	if err != nil {
		return fmt.Errorf("load holidays: %w", err)
	}

	days := WorkingDays(app.StartDate, app.EndDate, holidays)
	paid, unpaid := SplitPaidUnpaid(days, alloc.CasualDeducted+alloc.SickDeducted)

	if err := s.stampDays(ctx, app, paid, attendance.StatusOnLeave); err != nil {
		return err
	}
	return s.stampDays(ctx, app, unpaid, attendance.StatusLWP)
}

func (s *LeaveServiceImpl) stampDays(ctx context.Context, app leave.Application, days []time.Time, status attendance.Status) error {
	for _, d := range days {
		existing, err := s.attRepo.GetByEmployeeAndDate(ctx, app.EmployeeID, d)
		if err != nil {
			return err
		}
		if existing != nil {
			existing.Status = status
			existing.AutoDerived = true
			existing.LeaveApplicationID = &app.ID
			if err := s.attRepo.Update(ctx, *existing); err != nil {
				return err
			}
			continue
		}

		code, err := s.seq.Next(ctx, "ATT", d)
		if err != nil {
			return err
		}
		_, err = s.attRepo.Create(ctx, attendance.Attendance{
			ID:                 uuid.NewString(),
			AttendanceCode:     code,
			EmployeeID:         app.EmployeeID,
			Date:               d,
			Status:             status,
			AutoDerived:        true,
			LeaveApplicationID: &app.ID,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *LeaveServiceImpl) Balance(ctx context.Context, employeeID string) (leave.BalanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err := s.balanceRepo.Get(ctx, employeeID)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	return mapBalanceToResponse(ResetBuckets(balance, time.Now())), nil
}

func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.ApplicationResponse, error) {
	apps, err := s.appRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list leave applications: %w", err)
	}
	return mapApplicationsToResponses(apps), nil
}

func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]leave.ApplicationResponse, error) {
	apps, err := s.appRepo.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending leave applications: %w", err)
	}
	return mapApplicationsToResponses(apps), nil
}

func mapApplicationsToResponses(apps []leave.Application) []leave.ApplicationResponse {
	responses := make([]leave.ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		responses = append(responses, mapApplicationToResponse(app))
	}
	return responses
}

func mapApplicationToResponse(app leave.Application) leave.ApplicationResponse {
	resp := leave.ApplicationResponse{
		ID:             app.ID,
		LeaveCode:      app.LeaveCode,
		EmployeeID:     app.EmployeeID,
		EmployeeName:   app.EmployeeName,
		StartDate:      app.StartDate.Format("2006-01-02"),
		EndDate:        app.EndDate.Format("2006-01-02"),
		TotalDays:      app.TotalDays,
		Type:           string(app.Type),
		CasualDeducted: app.CasualDeducted,
		SickDeducted:   app.SickDeducted,
		UnpaidDays:     app.UnpaidDays,
		Status:         string(app.Status),
		Reason:         app.Reason,
		Remarks:        app.Remarks,
		DecidedByName:  app.DecidedByName,
	}
	if app.DecidedAt != nil {
		formatted := app.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &formatted
	}
	return resp
}

func mapBalanceToResponse(b leave.Balance) leave.BalanceResponse {
	casual := leave.CasualPerMonth - b.CasualTaken
	if casual < 0 {
		casual = 0
	}
	return leave.BalanceResponse{
		EmployeeID:      b.EmployeeID,
		CasualAvailable: casual,
		SickAvailable:   b.SickBalance,
		Month:           b.TrackedMonth,
		Year:            b.TrackedYear,
	}
}
