package sequence

import (
	"context"
	"time"
)

// Generator issues date-prefixed display codes such as PUN20260831-0003.
// Counters are keyed by (prefix, date) and incremented atomically so that
// concurrent creations never collide.
type Generator interface {
	Next(ctx context.Context, prefix string, date time.Time) (string, error)
}
