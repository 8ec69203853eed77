package punch

import (
	"context"
	"time"
)

type PunchRepository interface {
	// Create persists a punch event
	Create(ctx context.Context, p Punch) (Punch, error)

	// ListByEmployeeAndDate retrieves the day's punches ordered by timestamp
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Punch, error)

	// HasPunchOn reports whether any punch exists for the employee on the date.
	// Used by the absent sweep to skip days with partial activity.
	HasPunchOn(ctx context.Context, employeeID string, date time.Time) (bool, error)
}

type BreakRepository interface {
	// Create persists a closed break interval
	Create(ctx context.Context, b BreakInterval) (BreakInterval, error)

	// ListByEmployeeAndDate retrieves the day's break intervals ordered by start time
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]BreakInterval, error)
}

type PunchService interface {
	// Submit validates, sequences and persists a punch event
	Submit(ctx context.Context, req SubmitPunchRequest) (SubmitPunchResponse, error)

	// TodayState reports the employee's punch state machine position for today
	TodayState(ctx context.Context, employeeID string) (TodayStateResponse, error)
}
