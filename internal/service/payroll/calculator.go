package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
	"github.com/nexushr/workforce-backend-go/internal/domain/payroll"
)

var two = decimal.NewFromInt(2)
var hundred = decimal.NewFromInt(100)

// DaysInMonth returns the actual calendar length of the month, which is
// the divisor for the per-day rate. Never a fixed 30.
func DaysInMonth(month, year int) int {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// Compute turns one employee's approved tallies into a salary breakdown.
//
// Attendance pay sums full per-day rates for present, leave and holiday
// days, half rates for half days, and the flat training rate for training
// days. It is capped at base salary plus training pay so rounding can
// never overshoot the contract amount. Absent and lwp days simply earn
// nothing; they are never deducted twice.
func Compute(in payroll.SalaryInput, tallies attendance.Tallies, daysInMonth int, prevBalance, trainingRate decimal.Decimal) payroll.Breakdown {
	perDay := in.BaseSalary.Div(decimal.NewFromInt(int64(daysInMonth))).Round(2)

	presentPay := perDay.Mul(decimal.NewFromInt(int64(tallies.Present)))
	halfDayPay := perDay.Div(two).Round(2).Mul(decimal.NewFromInt(int64(tallies.HalfDays)))
	leavePay := perDay.Mul(decimal.NewFromInt(int64(tallies.Leaves)))
	holidayPay := perDay.Mul(decimal.NewFromInt(int64(tallies.Holidays)))
	trainingPay := trainingRate.Mul(decimal.NewFromInt(int64(tallies.Training)))

	attendancePay := presentPay.Add(halfDayPay).Add(leavePay).Add(holidayPay).Add(trainingPay)
	if maxPay := in.BaseSalary.Add(trainingPay); attendancePay.GreaterThan(maxPay) {
		attendancePay = maxPay
	}

	gross := attendancePay.Add(in.Bonus).Add(in.TravelAllowance)
	pfAmount := gross.Mul(in.PFPercent).Div(hundred).Round(2)
	esiAmount := gross.Mul(in.ESIPercent).Div(hundred).Round(2)
	deductions := pfAmount.Add(esiAmount)

	return payroll.Breakdown{
		PerDaySalary:    perDay,
		AttendancePay:   attendancePay,
		GrossSalary:     gross,
		PFAmount:        pfAmount,
		ESIAmount:       esiAmount,
		TotalDeductions: deductions,
		NetPayable:      gross.Sub(deductions).Add(prevBalance),
		Tallies:         tallies,
	}
}
