package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/payroll"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func baseInput(base string) payroll.SalaryInput {
	return payroll.SalaryInput{
		EmployeeID: "emp-1",
		BaseSalary: money(base),
		PFPercent:  money("12"),
		ESIPercent: money("0.75"),
	}
}

func TestDaysInMonth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 31, DaysInMonth(8, 2026))
	assert.Equal(t, 30, DaysInMonth(9, 2026))
	assert.Equal(t, 28, DaysInMonth(2, 2026))
	assert.Equal(t, 29, DaysInMonth(2, 2028))
}

func TestCompute_PresentAndHalfDays(t *testing.T) {
	t.Parallel()

	tallies := attendance.Tallies{Present: 28, HalfDays: 1}

	b := Compute(baseInput("30000"), tallies, 31, decimal.Zero, money("100"))

	assert.True(t, b.PerDaySalary.Equal(money("967.74")), "per day %s", b.PerDaySalary)
	assert.True(t, b.AttendancePay.Equal(money("27580.59")), "attendance pay %s", b.AttendancePay)
	assert.True(t, b.GrossSalary.Equal(money("27580.59")), "gross %s", b.GrossSalary)
	assert.True(t, b.PFAmount.Equal(money("3309.67")), "pf %s", b.PFAmount)
	assert.True(t, b.ESIAmount.Equal(money("206.85")), "esi %s", b.ESIAmount)
	assert.True(t, b.NetPayable.Equal(money("24064.07")), "net %s", b.NetPayable)
}

func TestCompute_LeavesAndHolidaysEarnFullRate(t *testing.T) {
	t.Parallel()

	tallies := attendance.Tallies{Present: 20, Leaves: 2, Holidays: 3}

	b := Compute(baseInput("31000"), tallies, 31, decimal.Zero, decimal.Zero)

	// per day is exactly 1000, all 25 paid days at full rate
	assert.True(t, b.AttendancePay.Equal(money("25000")), "attendance pay %s", b.AttendancePay)
}

func TestCompute_AbsentAndLWPEarnNothing(t *testing.T) {
	t.Parallel()

	withGaps := Compute(baseInput("31000"), attendance.Tallies{Present: 20, Absent: 5, LWP: 3}, 31, decimal.Zero, decimal.Zero)
	without := Compute(baseInput("31000"), attendance.Tallies{Present: 20}, 31, decimal.Zero, decimal.Zero)

	assert.True(t, withGaps.NetPayable.Equal(without.NetPayable))
}

func TestCompute_TrainingDaysPayFlatRate(t *testing.T) {
	t.Parallel()

	tallies := attendance.Tallies{Present: 10, Training: 5}

	b := Compute(baseInput("31000"), tallies, 31, decimal.Zero, money("100"))

	// 10 x 1000 + 5 x 100
	assert.True(t, b.AttendancePay.Equal(money("10500")), "attendance pay %s", b.AttendancePay)
}

func TestCompute_RoundingNeverOvershootsBase(t *testing.T) {
	t.Parallel()

	// 1000/31 rounds up to 32.26; a full month would sum to 1000.06
	tallies := attendance.Tallies{Present: 31}

	b := Compute(baseInput("1000"), tallies, 31, decimal.Zero, decimal.Zero)

	assert.True(t, b.AttendancePay.Equal(money("1000")), "attendance pay %s", b.AttendancePay)
}

func TestCompute_CapAllowsTrainingPayOnTop(t *testing.T) {
	t.Parallel()

	tallies := attendance.Tallies{Present: 31, Training: 2}

	b := Compute(baseInput("1000"), tallies, 31, decimal.Zero, money("100"))

	assert.True(t, b.AttendancePay.Equal(money("1200")), "attendance pay %s", b.AttendancePay)
}

func TestCompute_BonusAndTravelBypassTheCap(t *testing.T) {
	t.Parallel()

	in := baseInput("31000")
	in.Bonus = money("500")
	in.TravelAllowance = money("250")

	b := Compute(in, attendance.Tallies{Present: 31}, 31, decimal.Zero, decimal.Zero)

	assert.True(t, b.GrossSalary.Equal(money("31750")), "gross %s", b.GrossSalary)
}

func TestCompute_PreviousBalanceCarriesIn(t *testing.T) {
	t.Parallel()

	in := baseInput("31000")
	in.PFPercent = decimal.Zero
	in.ESIPercent = decimal.Zero

	b := Compute(in, attendance.Tallies{Present: 31}, 31, money("1200.50"), decimal.Zero)

	assert.True(t, b.NetPayable.Equal(money("32200.50")), "net %s", b.NetPayable)
}

func TestCompute_ZeroAttendanceStillOwesPreviousBalance(t *testing.T) {
	t.Parallel()

	b := Compute(baseInput("30000"), attendance.Tallies{}, 31, money("800"), decimal.Zero)

	assert.True(t, b.AttendancePay.Equal(decimal.Zero))
	assert.True(t, b.NetPayable.Equal(money("800")), "net %s", b.NetPayable)
}
