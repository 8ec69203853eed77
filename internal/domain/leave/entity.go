package leave

import "time"

type LeaveType string

const (
	TypeCasual   LeaveType = "casual"
	TypeSick     LeaveType = "sick"
	TypeCombined LeaveType = "combined"
)

func (t LeaveType) Valid() bool {
	switch t {
	case TypeCasual, TypeSick, TypeCombined:
		return true
	}
	return false
}

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "pending"
	StatusApproved LeaveStatus = "approved"
	StatusRejected LeaveStatus = "rejected"
)

// Balance tracks the two leave buckets per employee. The casual counter
// resets whenever the tracked month advances; the sick bucket resets to
// its yearly grant only on year rollover.
type Balance struct {
	EmployeeID   string
	SickBalance  float64
	CasualTaken  int
	TrackedMonth int
	TrackedYear  int
	UpdatedAt    time.Time
}

const (
	CasualPerMonth = 1
	SickPerYear    = 6.0
)

// Application is a leave request. Created pending, then terminal
// approved (balance deduction plus attendance writes) or rejected.
type Application struct {
	ID              string
	LeaveCode       string
	EmployeeID      string
	StartDate       time.Time
	EndDate         time.Time
	TotalDays       int
	Type            LeaveType
	RequestedCasual int
	RequestedSick   int
	CasualDeducted  int
	SickDeducted    int
	UnpaidDays      int
	Reason          string
	Status          LeaveStatus
	Remarks         *string
	DecidedByName   *string
	DecidedByRole   *string
	DecidedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO
	EmployeeName *string
}
