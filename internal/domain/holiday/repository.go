package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// IsHoliday reports whether the given date is a holiday
	IsHoliday(ctx context.Context, date time.Time) (bool, error)

	// ListBetween retrieves holidays in [from, to] inclusive
	ListBetween(ctx context.Context, from, to time.Time) ([]Holiday, error)
}

// SetBetween builds a date-keyed lookup ("2006-01-02") from ListBetween,
// for range walks that must skip holidays.
func SetBetween(ctx context.Context, repo HolidayRepository, from, to time.Time) (map[string]bool, error) {
	holidays, err := repo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		set[h.Date.Format("2006-01-02")] = true
	}
	return set, nil
}
