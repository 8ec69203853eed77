package approval

import "time"

// MonthlyApproval freezes a month's attendance tallies and unlocks payroll
// generation. One row per (month, year); re-approval overwrites in place.
type MonthlyApproval struct {
	ID               string
	ApprovalCode     string
	Month            int
	Year             int
	ApprovedUpToDate time.Time
	TotalEmployees   int
	TotalPresent     int
	TotalAbsent      int
	TotalHalfDays    int
	TotalLeaves      int
	SalaryGenerated  bool
	ApprovedByName   string
	ApprovedByRole   string
	ApprovedAt       time.Time
	UpdatedAt        time.Time
}
