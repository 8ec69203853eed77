package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nexushr/workforce-backend-go/internal/domain/holiday"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// IsHoliday implements holiday.HolidayRepository.
func (h *holidayRepository) IsHoliday(ctx context.Context, date time.Time) (bool, error) {
	q := GetQuerier(ctx, h.db)

	query := `SELECT EXISTS (SELECT 1 FROM holidays WHERE holiday_date = $1)`

	var exists bool
	err := q.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	return exists, nil
}

// ListBetween implements holiday.HolidayRepository.
func (h *holidayRepository) ListBetween(ctx context.Context, from, to time.Time) ([]holiday.Holiday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT id, holiday_date, name
		FROM holidays
		WHERE holiday_date BETWEEN $1 AND $2
		ORDER BY holiday_date
	`

	rows, err := q.Query(ctx, query, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.Holiday
	for rows.Next() {
		var hol holiday.Holiday
		if err := rows.Scan(&hol.ID, &hol.Date, &hol.Name); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, hol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}
