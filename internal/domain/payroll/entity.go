package payroll

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nexushr/workforce-backend-go/internal/domain/attendance"
)

// MonthlySalary is the per-employee payroll record for one month.
// All monetary fields are decimals; floats never touch money.
type MonthlySalary struct {
	ID                string
	SalaryCode        string
	EmployeeID        string
	Month             int
	Year              int
	BaseSalary        decimal.Decimal
	PerDaySalary      decimal.Decimal
	TotalPresent      int
	TotalAbsent       int
	TotalHalfDays     int
	TotalLeaves       int
	TotalHolidays     int
	TotalLWP          int
	TotalTraining     int
	Bonus             decimal.Decimal
	TravelAllowance   decimal.Decimal
	PFPercent         decimal.Decimal
	PFAmount          decimal.Decimal
	ESIPercent        decimal.Decimal
	ESIAmount         decimal.Decimal
	GrossSalary       decimal.Decimal
	TotalDeductions   decimal.Decimal
	NetPayable        decimal.Decimal
	PaidAmount        decimal.Decimal
	PaymentDate       *time.Time
	PreviousBalance   decimal.Decimal
	RemainingBalance  decimal.Decimal
	IsSaved           bool
	PaymentFromFunds  bool
	FundTransactionID *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
	EmployeeCode *string
}

// SalaryInput is the typed, boundary-validated input for one employee's
// computation. Attendance tallies come from the approval window, never
// from the caller.
type SalaryInput struct {
	EmployeeID      string
	BaseSalary      decimal.Decimal
	Bonus           decimal.Decimal
	TravelAllowance decimal.Decimal
	PFPercent       decimal.Decimal
	ESIPercent      decimal.Decimal
	PaidAmount      decimal.Decimal
	PaymentDate     *time.Time
}

// Breakdown is the computed result for one employee.
type Breakdown struct {
	PerDaySalary    decimal.Decimal
	AttendancePay   decimal.Decimal
	GrossSalary     decimal.Decimal
	PFAmount        decimal.Decimal
	ESIAmount       decimal.Decimal
	TotalDeductions decimal.Decimal
	NetPayable      decimal.Decimal
	Tallies         attendance.Tallies
}
