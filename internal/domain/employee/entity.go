package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the collaborator-owned identity record this core consumes.
// Only the fields the attendance and payroll engines need are mapped.
type Employee struct {
	ID                string
	EmployeeCode      string
	FullName          string
	BaseSalary        decimal.Decimal
	JoiningDate       time.Time
	TrainingStartDate *time.Time
	TrainingCompleted bool
	IsActive          bool
	IsBlocked         bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
