package punch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nexushr/workforce-backend-go/internal/config"
	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/employee"
	"github.com/nexushr/workforce-backend-go/internal/domain/punch"
	"github.com/nexushr/workforce-backend-go/internal/domain/sequence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
	"github.com/nexushr/workforce-backend-go/internal/repository/postgresql"
	"github.com/nexushr/workforce-backend-go/internal/service/geofence"
)

type PunchServiceImpl struct {
	db                *database.DB
	punchRepo         punch.PunchRepository
	breakRepo         punch.BreakRepository
	employeeRepo      employee.EmployeeRepository
	attendanceRepo    attendance.AttendanceRepository
	attendanceService attendance.AttendanceService
	validator         geofence.Validator
	seq               sequence.Generator
	cfg               config.AttendanceConfig
}

func NewPunchService(
	db *database.DB,
	punchRepo punch.PunchRepository,
	breakRepo punch.BreakRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	attendanceService attendance.AttendanceService,
	validator geofence.Validator,
	seq sequence.Generator,
	cfg config.AttendanceConfig,
) punch.PunchService {
	return &PunchServiceImpl{
		db:                db,
		punchRepo:         punchRepo,
		breakRepo:         breakRepo,
		employeeRepo:      employeeRepo,
		attendanceRepo:    attendanceRepo,
		attendanceService: attendanceService,
		validator:         validator,
		seq:               seq,
		cfg:               cfg,
	}
}

func (s *PunchServiceImpl) Submit(ctx context.Context, req punch.SubmitPunchRequest) (punch.SubmitPunchResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return punch.SubmitPunchResponse{}, err
	}
	if !emp.IsActive {
		return punch.SubmitPunchResponse{}, employee.ErrEmployeeInactive
	}
	if emp.IsBlocked {
		return punch.SubmitPunchResponse{}, employee.ErrEmployeeBlocked
	}

	now := time.Now()
	day := dateOnly(now)
	punchType := punch.PunchType(req.Type)

	// Sequence rules come before the fence: a punch that is illegal in
	// the state machine reports the sequence error even when submitted
	// from outside the fence.
	priorPunches, err := s.punchRepo.ListByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		return punch.SubmitPunchResponse{}, err
	}
	if err := ValidateNext(priorPunches, punchType); err != nil {
		return punch.SubmitPunchResponse{}, err
	}

	fence, err := s.validator.Validate(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return punch.SubmitPunchResponse{}, err
	}
	if !fence.WithinFence {
		// Fence misses are reported, not errored: the caller needs the
		// measured distance to show the employee how far off they are.
		return punch.SubmitPunchResponse{
			Accepted:       false,
			Reason:         punch.ErrOutsideAllowedRadius.Error(),
			DistanceMeters: fence.DistanceMeters,
		}, nil
	}

	var resp punch.SubmitPunchResponse
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		punches, err := s.punchRepo.ListByEmployeeAndDate(txCtx, emp.ID, day)
		if err != nil {
			return err
		}

		// Re-checked under the transaction to close the race with a
		// concurrent punch accepted since the first read.
		if err := ValidateNext(punches, punchType); err != nil {
			return err
		}

		code, err := s.seq.Next(txCtx, "PUN", day)
		if err != nil {
			return err
		}

		created, err := s.punchRepo.Create(txCtx, punch.Punch{
			ID:             uuid.NewString(),
			PunchCode:      code,
			EmployeeID:     emp.ID,
			Type:           punchType,
			Timestamp:      now,
			Latitude:       req.Latitude,
			Longitude:      req.Longitude,
			WithinFence:    true,
			DistanceMeters: fence.DistanceMeters,
		})
		if err != nil {
			return err
		}

		switch punchType {
		case punch.TypeCheckIn:
			if err := s.handleCheckIn(txCtx, emp, day, now, &resp); err != nil {
				return err
			}
		case punch.TypeBreakEnd:
			if err := s.closeBreak(txCtx, emp.ID, day, punches, created, now); err != nil {
				return err
			}
		case punch.TypeCheckOut:
			if err := s.handleCheckOut(txCtx, emp, day, &resp); err != nil {
				return err
			}
		}

		resp.Accepted = true
		resp.DistanceMeters = fence.DistanceMeters
		resp.Punch = &punch.PunchResponse{
			ID:             created.ID,
			PunchCode:      created.PunchCode,
			Type:           string(created.Type),
			Timestamp:      created.Timestamp.Format(time.RFC3339),
			DistanceMeters: created.DistanceMeters,
		}
		return nil
	})
	if err != nil {
		return punch.SubmitPunchResponse{}, err
	}

	return resp, nil
}

// handleCheckIn writes the training verdict immediately when the employee
// is still in the training period. Regular days wait for check-out.
func (s *PunchServiceImpl) handleCheckIn(ctx context.Context, emp employee.Employee, day, now time.Time, resp *punch.SubmitPunchResponse) error {
	trainingDays, err := s.attendanceRepo.CountTrainingDays(ctx, emp.ID)
	if err != nil {
		return err
	}
	if !attendance.InTraining(emp.TrainingStartDate, emp.TrainingCompleted, trainingDays, s.cfg.TrainingDays) {
		return nil
	}

	if err := s.attendanceService.WriteTrainingDay(ctx, emp.ID, day, now); err != nil {
		return err
	}
	if _, err := s.attendanceService.RecheckTraining(ctx, emp.ID); err != nil {
		return err
	}
	resp.AttendanceStatus = string(attendance.StatusTraining)
	return nil
}

// closeBreak pairs the break-end punch with the open break-start and
// stores the interval. The lunch flag is set when the break started
// inside the configured lunch window.
func (s *PunchServiceImpl) closeBreak(ctx context.Context, employeeID string, day time.Time, priorPunches []punch.Punch, endPunch punch.Punch, now time.Time) error {
	open := OpenBreakStart(priorPunches)
	if open == nil {
		return punch.ErrNoOpenBreak
	}

	duration := int(now.Sub(open.Timestamp).Minutes())
	isLunch := InLunchWindow(open.Timestamp, s.cfg.LunchWindowStart, s.cfg.LunchWindowEnd)

	code, err := s.seq.Next(ctx, "BRK", day)
	if err != nil {
		return err
	}

	_, err = s.breakRepo.Create(ctx, punch.BreakInterval{
		ID:              uuid.NewString(),
		BreakCode:       code,
		EmployeeID:      employeeID,
		Date:            day,
		StartPunchID:    open.ID,
		EndPunchID:      &endPunch.ID,
		StartTime:       open.Timestamp,
		EndTime:         &now,
		DurationMinutes: &duration,
		IsLunch:         isLunch,
	})
	return err
}

// handleCheckOut runs attendance derivation for regular days. Training
// days were already written at check-in; only the completion re-check
// runs, and completion right at this check-out is signalled back.
func (s *PunchServiceImpl) handleCheckOut(ctx context.Context, emp employee.Employee, day time.Time, resp *punch.SubmitPunchResponse) error {
	trainingDays, err := s.attendanceRepo.CountTrainingDays(ctx, emp.ID)
	if err != nil {
		return err
	}

	inTraining := attendance.InTraining(emp.TrainingStartDate, emp.TrainingCompleted, trainingDays, s.cfg.TrainingDays)
	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, day)
	if err != nil {
		return err
	}
	isTrainingDay := existing != nil && existing.Status == attendance.StatusTraining

	if inTraining || isTrainingDay {
		completed, err := s.attendanceService.RecheckTraining(ctx, emp.ID)
		if err != nil {
			return err
		}
		resp.TrainingCompleted = completed
		resp.AttendanceStatus = string(attendance.StatusTraining)
		return nil
	}

	status, err := s.attendanceService.DeriveDay(ctx, emp.ID, day)
	if err != nil {
		return err
	}
	resp.AttendanceStatus = string(status)
	return nil
}

func (s *PunchServiceImpl) TodayState(ctx context.Context, employeeID string) (punch.TodayStateResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return punch.TodayStateResponse{}, err
	}

	day := dateOnly(time.Now())
	punches, err := s.punchRepo.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return punch.TodayStateResponse{}, fmt.Errorf("list punches: %w", err)
	}
	breaks, err := s.breakRepo.ListByEmployeeAndDate(ctx, employeeID, day)
	if err != nil {
		return punch.TodayStateResponse{}, fmt.Errorf("list breaks: %w", err)
	}

	isCheckedIn, isOnBreak, isCheckedOut := DayState(punches)

	resp := punch.TodayStateResponse{
		IsCheckedIn:  isCheckedIn,
		IsOnBreak:    isOnBreak,
		IsCheckedOut: isCheckedOut,
		Punches:      make([]punch.PunchResponse, 0, len(punches)),
		Breaks:       make([]punch.BreakResponse, 0, len(breaks)),
	}
	for _, p := range punches {
		resp.Punches = append(resp.Punches, punch.PunchResponse{
			ID:             p.ID,
			PunchCode:      p.PunchCode,
			Type:           string(p.Type),
			Timestamp:      p.Timestamp.Format(time.RFC3339),
			DistanceMeters: p.DistanceMeters,
		})
	}
	for _, b := range breaks {
		br := punch.BreakResponse{
			ID:              b.ID,
			BreakCode:       b.BreakCode,
			StartTime:       b.StartTime.Format(time.RFC3339),
			DurationMinutes: b.DurationMinutes,
			IsLunch:         b.IsLunch,
		}
		if b.EndTime != nil {
			formatted := b.EndTime.Format(time.RFC3339)
			br.EndTime = &formatted
		}
		resp.Breaks = append(resp.Breaks, br)
	}

	return resp, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
