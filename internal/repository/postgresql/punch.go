package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nexushr/workforce-backend-go/internal/domain/punch"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type punchRepository struct {
	db *database.DB
}

// Create implements punch.PunchRepository.
func (p *punchRepository) Create(ctx context.Context, newPunch punch.Punch) (punch.Punch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO punches (
			id, punch_code, employee_id, punch_type, punched_at,
			latitude, longitude, within_fence, distance_meters
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		newPunch.ID,
		newPunch.PunchCode,
		newPunch.EmployeeID,
		newPunch.Type,
		newPunch.Timestamp,
		newPunch.Latitude,
		newPunch.Longitude,
		newPunch.WithinFence,
		newPunch.DistanceMeters,
	).Scan(&newPunch.CreatedAt)

	if err != nil {
		return punch.Punch{}, fmt.Errorf("failed to create punch: %w", err)
	}

	return newPunch, nil
}

// ListByEmployeeAndDate implements punch.PunchRepository.
func (p *punchRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]punch.Punch, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, punch_code, employee_id, punch_type, punched_at,
			   latitude, longitude, within_fence, distance_meters, created_at
		FROM punches
		WHERE employee_id = $1
		  AND punched_at::date = $2
		ORDER BY punched_at
	`

	rows, err := q.Query(ctx, query, employeeID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.Punch
	for rows.Next() {
		var pu punch.Punch
		err := rows.Scan(
			&pu.ID, &pu.PunchCode, &pu.EmployeeID, &pu.Type, &pu.Timestamp,
			&pu.Latitude, &pu.Longitude, &pu.WithinFence, &pu.DistanceMeters, &pu.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, pu)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punches: %w", err)
	}

	return punches, nil
}

// HasPunchOn implements punch.PunchRepository.
func (p *punchRepository) HasPunchOn(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM punches
			WHERE employee_id = $1 AND punched_at::date = $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, date.Format("2006-01-02")).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check punch existence: %w", err)
	}

	return exists, nil
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepository{db: db}
}

type breakRepository struct {
	db *database.DB
}

// Create implements punch.BreakRepository.
func (b *breakRepository) Create(ctx context.Context, interval punch.BreakInterval) (punch.BreakInterval, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		INSERT INTO break_intervals (
			id, break_code, employee_id, break_date, start_punch_id, end_punch_id,
			start_time, end_time, duration_minutes, is_lunch
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		interval.ID,
		interval.BreakCode,
		interval.EmployeeID,
		interval.Date,
		interval.StartPunchID,
		interval.EndPunchID,
		interval.StartTime,
		interval.EndTime,
		interval.DurationMinutes,
		interval.IsLunch,
	).Scan(&interval.CreatedAt)

	if err != nil {
		return punch.BreakInterval{}, fmt.Errorf("failed to create break interval: %w", err)
	}

	return interval, nil
}

// ListByEmployeeAndDate implements punch.BreakRepository.
func (b *breakRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]punch.BreakInterval, error) {
	q := GetQuerier(ctx, b.db)

	query := `
		SELECT id, break_code, employee_id, break_date, start_punch_id, end_punch_id,
			   start_time, end_time, duration_minutes, is_lunch, created_at
		FROM break_intervals
		WHERE employee_id = $1
		  AND break_date = $2
		ORDER BY start_time
	`

	rows, err := q.Query(ctx, query, employeeID, date.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list break intervals: %w", err)
	}
	defer rows.Close()

	var intervals []punch.BreakInterval
	for rows.Next() {
		var interval punch.BreakInterval
		err := rows.Scan(
			&interval.ID, &interval.BreakCode, &interval.EmployeeID, &interval.Date,
			&interval.StartPunchID, &interval.EndPunchID,
			&interval.StartTime, &interval.EndTime, &interval.DurationMinutes, &interval.IsLunch,
			&interval.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan break interval: %w", err)
		}
		intervals = append(intervals, interval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate break intervals: %w", err)
	}

	return intervals, nil
}

func NewBreakRepository(db *database.DB) punch.BreakRepository {
	return &breakRepository{db: db}
}
