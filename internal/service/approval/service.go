package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexushr/workforce-backend-go/internal/domain/approval"
	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/domain/sequence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/actor"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
	"github.com/nexushr/workforce-backend-go/internal/repository/postgresql"
)

type ApprovalServiceImpl struct {
	db           *database.DB
	approvalRepo approval.ApprovalRepository
	attRepo      attendance.AttendanceRepository
	employeeRepo employee.EmployeeRepository
	attService   attendance.AttendanceService
	seq          sequence.Generator
}

func NewApprovalService(
	db *database.DB,
	approvalRepo approval.ApprovalRepository,
	attRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	attService attendance.AttendanceService,
	seq sequence.Generator,
) approval.ApprovalService {
	return &ApprovalServiceImpl{
		db:           db,
		approvalRepo: approvalRepo,
		attRepo:      attRepo,
		employeeRepo: employeeRepo,
		attService:   attService,
		seq:          seq,
	}
}

func (s *ApprovalServiceImpl) Approve(ctx context.Context, req approval.ApproveMonthRequest) (approval.ApprovalResponse, error) {
	if err := req.Validate(); err != nil {
		return approval.ApprovalResponse{}, err
	}

	act, err := actor.FromContext(ctx)
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	monthStart, _ := validator.IsValidMonth(req.Month)
	now := time.Now()
	if monthStart.After(now) {
		return approval.ApprovalResponse{}, approval.ErrFutureMonth
	}

	// Absent back-fill runs first so the frozen tallies include days
	// nobody punched on.
	if _, err := s.attService.SweepAbsences(ctx); err != nil {
		return approval.ApprovalResponse{}, fmt.Errorf("sweep absences: %w", err)
	}

	// Approval covers the 1st through today or the month's end, whichever
	// comes first.
	monthEnd := monthStart.AddDate(0, 1, -1)
	upTo := monthEnd
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if today.Before(upTo) {
		upTo = today
	}

	tallies, err := s.attRepo.TalliesForAll(ctx, monthStart, upTo)
	if err != nil {
		return approval.ApprovalResponse{}, fmt.Errorf("aggregate tallies: %w", err)
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return approval.ApprovalResponse{}, fmt.Errorf("list employees: %w", err)
	}

	var result approval.MonthlyApproval
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, err := s.approvalRepo.GetByMonthYear(txCtx, int(monthStart.Month()), monthStart.Year())
		if err != nil {
			return err
		}

		if existing != nil {
			existing.ApprovedUpToDate = upTo
			existing.TotalEmployees = len(employees)
			existing.TotalPresent = tallies.Present
			existing.TotalAbsent = tallies.Absent
			existing.TotalHalfDays = tallies.HalfDays
			existing.TotalLeaves = tallies.Leaves
			existing.ApprovedByName = act.Name
			existing.ApprovedByRole = act.Role
			existing.ApprovedAt = now
			if err := s.approvalRepo.Update(txCtx, *existing); err != nil {
				return err
			}
			result = *existing
			return nil
		}

		code, err := s.seq.Next(txCtx, "MAPPR", monthStart)
		if err != nil {
			return err
		}
		result, err = s.approvalRepo.Create(txCtx, approval.MonthlyApproval{
			ID:               uuid.NewString(),
			ApprovalCode:     code,
			Month:            int(monthStart.Month()),
			Year:             monthStart.Year(),
			ApprovedUpToDate: upTo,
			TotalEmployees:   len(employees),
			TotalPresent:     tallies.Present,
			TotalAbsent:      tallies.Absent,
			TotalHalfDays:    tallies.HalfDays,
			TotalLeaves:      tallies.Leaves,
			ApprovedByName:   act.Name,
			ApprovedByRole:   act.Role,
			ApprovedAt:       now,
		})
		return err
	})
	if err != nil {
		return approval.ApprovalResponse{}, err
	}

	return mapApprovalToResponse(result), nil
}

func (s *ApprovalServiceImpl) Get(ctx context.Context, month, year int) (approval.ApprovalResponse, error) {
	if month < 1 || month > 12 {
		return approval.ApprovalResponse{}, approval.ErrInvalidMonth
	}

	a, err := s.approvalRepo.GetByMonthYear(ctx, month, year)
	if err != nil {
		return approval.ApprovalResponse{}, err
	}
	if a == nil {
		return approval.ApprovalResponse{}, approval.ErrApprovalNotFound
	}
	return mapApprovalToResponse(*a), nil
}

func mapApprovalToResponse(a approval.MonthlyApproval) approval.ApprovalResponse {
	return approval.ApprovalResponse{
		ID:               a.ID,
		ApprovalCode:     a.ApprovalCode,
		Month:            a.Month,
		Year:             a.Year,
		ApprovedUpToDate: a.ApprovedUpToDate.Format("2006-01-02"),
		TotalEmployees:   a.TotalEmployees,
		TotalPresent:     a.TotalPresent,
		TotalAbsent:      a.TotalAbsent,
		TotalHalfDays:    a.TotalHalfDays,
		TotalLeaves:      a.TotalLeaves,
		SalaryGenerated:  a.SalaryGenerated,
		ApprovedByName:   a.ApprovedByName,
		ApprovedAt:       a.ApprovedAt.Format(time.RFC3339),
	}
}
