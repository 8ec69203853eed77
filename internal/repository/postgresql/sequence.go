package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/nexushr/workforce-backend-go/internal/domain/sequence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type sequenceGenerator struct {
	db *database.DB
}

// Next implements sequence.Generator. The counter row is keyed by
// (prefix, date) and incremented atomically, so concurrent callers can
// never observe the same value.
func (s *sequenceGenerator) Next(ctx context.Context, prefix string, date time.Time) (string, error) {
	q := GetQuerier(ctx, s.db)

	query := `
		INSERT INTO display_code_counters (prefix, counter_date, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, counter_date)
		DO UPDATE SET last_value = display_code_counters.last_value + 1
		RETURNING last_value
	`

	var value int64
	err := q.QueryRow(ctx, query, prefix, date.Format("2006-01-02")).Scan(&value)
	if err != nil {
		return "", fmt.Errorf("failed to advance sequence %s: %w", prefix, err)
	}

	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), value), nil
}

func NewSequenceGenerator(db *database.DB) sequence.Generator {
	return &sequenceGenerator{db: db}
}
