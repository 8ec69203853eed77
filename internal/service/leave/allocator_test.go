package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexushr/workforce-backend-go/internal/domain/leave"
)

func freshBalance() leave.Balance {
	return leave.Balance{
		EmployeeID:   "emp-1",
		SickBalance:  leave.SickPerYear,
		CasualTaken:  0,
		TrackedMonth: 8,
		TrackedYear:  2026,
	}
}

func TestWorkingDays_SkipsSundaysAndHolidays(t *testing.T) {
	t.Parallel()

	// Mon Aug 24 through Sun Aug 30, 2026, with a holiday on the 26th
	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	holidays := map[string]bool{"2026-08-26": true}

	days := WorkingDays(start, end, holidays)

	require.Len(t, days, 5)
	assert.Equal(t, "2026-08-24", days[0].Format("2006-01-02"))
	assert.Equal(t, "2026-08-25", days[1].Format("2006-01-02"))
	assert.Equal(t, "2026-08-27", days[2].Format("2006-01-02"))
	assert.Equal(t, "2026-08-29", days[4].Format("2006-01-02"))
}

func TestWorkingDays_EmptyWhenRangeIsAllSundays(t *testing.T) {
	t.Parallel()

	sunday := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, WorkingDays(sunday, sunday, nil))
}

func TestResetBuckets_SameMonthKeepsValues(t *testing.T) {
	t.Parallel()

	b := freshBalance()
	b.CasualTaken = 1
	b.SickBalance = 3

	got := ResetBuckets(b, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 1, got.CasualTaken)
	assert.Equal(t, 3.0, got.SickBalance)
}

func TestResetBuckets_MonthChangeResetsCasualOnly(t *testing.T) {
	t.Parallel()

	b := freshBalance()
	b.CasualTaken = 1
	b.SickBalance = 3

	got := ResetBuckets(b, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, got.CasualTaken)
	assert.Equal(t, 3.0, got.SickBalance)
	assert.Equal(t, 9, got.TrackedMonth)
}

func TestResetBuckets_YearRolloverRefillsSick(t *testing.T) {
	t.Parallel()

	b := freshBalance()
	b.TrackedMonth = 12
	b.TrackedYear = 2026
	b.CasualTaken = 1
	b.SickBalance = 0.5

	got := ResetBuckets(b, time.Date(2027, 1, 4, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 0, got.CasualTaken)
	assert.Equal(t, leave.SickPerYear, got.SickBalance)
	assert.Equal(t, 1, got.TrackedMonth)
	assert.Equal(t, 2027, got.TrackedYear)
}

func TestAllocate_CasualWithinMonthlyCap(t *testing.T) {
	t.Parallel()

	alloc := Allocate(freshBalance(), leave.TypeCasual, 1, 0, 0)

	assert.Equal(t, Allocation{CasualDeducted: 1}, alloc)
}

func TestAllocate_CasualOverflowGoesUnpaid(t *testing.T) {
	t.Parallel()

	// Casual never borrows from the sick bucket
	alloc := Allocate(freshBalance(), leave.TypeCasual, 3, 0, 0)

	assert.Equal(t, Allocation{CasualDeducted: 1, UnpaidDays: 2}, alloc)
}

func TestAllocate_CasualExhaustedThisMonth(t *testing.T) {
	t.Parallel()

	b := freshBalance()
	b.CasualTaken = 1

	alloc := Allocate(b, leave.TypeCasual, 1, 0, 0)

	assert.Equal(t, Allocation{UnpaidDays: 1}, alloc)
}

func TestAllocate_SickDrawsSickBucketOnly(t *testing.T) {
	t.Parallel()

	alloc := Allocate(freshBalance(), leave.TypeSick, 4, 0, 0)

	assert.Equal(t, Allocation{SickDeducted: 4}, alloc)
}

func TestAllocate_SickOverflowGoesUnpaid(t *testing.T) {
	t.Parallel()

	b := freshBalance()
	b.SickBalance = 2

	alloc := Allocate(b, leave.TypeSick, 5, 0, 0)

	assert.Equal(t, Allocation{SickDeducted: 2, UnpaidDays: 3}, alloc)
}

func TestAllocate_CombinedHonorsSplit(t *testing.T) {
	t.Parallel()

	alloc := Allocate(freshBalance(), leave.TypeCombined, 3, 1, 2)

	assert.Equal(t, Allocation{CasualDeducted: 1, SickDeducted: 2}, alloc)
}

func TestAllocate_CombinedShortfallGoesUnpaid(t *testing.T) {
	t.Parallel()

	b := freshBalance()
	b.SickBalance = 2

	// Five working days, no casual requested, two sick available
	alloc := Allocate(b, leave.TypeCombined, 5, 0, 5)

	assert.Equal(t, Allocation{SickDeducted: 2, UnpaidDays: 3}, alloc)
}

func TestSplitPaidUnpaid_FirstDaysArePaid(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	days := WorkingDays(start, end, nil)
	require.Len(t, days, 6)

	paid, unpaid := SplitPaidUnpaid(days, 2)

	require.Len(t, paid, 2)
	require.Len(t, unpaid, 4)
	assert.Equal(t, "2026-08-24", paid[0].Format("2006-01-02"))
	assert.Equal(t, "2026-08-25", paid[1].Format("2006-01-02"))
	assert.Equal(t, "2026-08-26", unpaid[0].Format("2006-01-02"))
}

func TestSplitPaidUnpaid_ClampsToRange(t *testing.T) {
	t.Parallel()

	days := WorkingDays(
		time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		nil,
	)

	paid, unpaid := SplitPaidUnpaid(days, 10)
	assert.Len(t, paid, 2)
	assert.Empty(t, unpaid)

	paid, unpaid = SplitPaidUnpaid(days, -1)
	assert.Empty(t, paid)
	assert.Len(t, unpaid, 2)
}
