package leave

import (
	"time"

	"github.com/nexushr/workforce-backend-go/internal/domain/leave"
)

// WorkingDays lists the calendar days in [start, end] that count toward
// leave: Sundays and holidays are excluded.
func WorkingDays(start, end time.Time, holidays map[string]bool) []time.Time {
	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Sunday {
			continue
		}
		if holidays[d.Format("2006-01-02")] {
			continue
		}
		days = append(days, d)
	}
	return days
}

// ResetBuckets applies the bucket reset rules against the current time.
// The casual counter resets whenever the tracked month or year moved on;
// the sick bucket refills only when the year rolled over.
func ResetBuckets(b leave.Balance, now time.Time) leave.Balance {
	month := int(now.Month())
	year := now.Year()

	if b.TrackedYear != year {
		b.SickBalance = leave.SickPerYear
		b.CasualTaken = 0
	} else if b.TrackedMonth != month {
		b.CasualTaken = 0
	}
	b.TrackedMonth = month
	b.TrackedYear = year
	return b
}

// Allocation is the outcome of drawing a leave request against the
// buckets: casual first, then sick, any shortfall unpaid.
type Allocation struct {
	CasualDeducted int
	SickDeducted   int
	UnpaidDays     int
}

// Allocate draws totalDays from the balance. For combined requests the
// caller-provided split is honored up to availability; single-type
// requests draw only their own bucket and overflow to unpaid.
func Allocate(b leave.Balance, leaveType leave.LeaveType, totalDays, requestedCasual, requestedSick int) Allocation {
	casualAvailable := leave.CasualPerMonth - b.CasualTaken
	if casualAvailable < 0 {
		casualAvailable = 0
	}
	sickAvailable := int(b.SickBalance)
	if sickAvailable < 0 {
		sickAvailable = 0
	}

	var alloc Allocation
	remaining := totalDays

	wantCasual := 0
	wantSick := 0
	switch leaveType {
	case leave.TypeCasual:
		wantCasual = totalDays
	case leave.TypeSick:
		wantSick = totalDays
	case leave.TypeCombined:
		wantCasual = requestedCasual
		wantSick = requestedSick
	}

	alloc.CasualDeducted = min(wantCasual, casualAvailable)
	remaining -= alloc.CasualDeducted

	alloc.SickDeducted = min(min(wantSick, sickAvailable), remaining)
	remaining -= alloc.SickDeducted

	alloc.UnpaidDays = remaining
	return alloc
}

// SplitPaidUnpaid walks the working days in chronological order and
// returns the first paidDays of them as paid, the rest as unpaid. The
// first-N-paid rule is deterministic and must not be replaced with a
// proportional split.
func SplitPaidUnpaid(days []time.Time, paidDays int) (paid, unpaid []time.Time) {
	if paidDays > len(days) {
		paidDays = len(days)
	}
	if paidDays < 0 {
		paidDays = 0
	}
	return days[:paidDays], days[paidDays:]
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
