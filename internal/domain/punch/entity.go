package punch

import "time"

type PunchType string

const (
	TypeCheckIn    PunchType = "check_in"
	TypeCheckOut   PunchType = "check_out"
	TypeBreakStart PunchType = "break_start"
	TypeBreakEnd   PunchType = "break_end"
)

func (t PunchType) Valid() bool {
	switch t {
	case TypeCheckIn, TypeCheckOut, TypeBreakStart, TypeBreakEnd:
		return true
	}
	return false
}

// Punch is a single scan action. Immutable once written.
type Punch struct {
	ID             string
	PunchCode      string
	EmployeeID     string
	Type           PunchType
	Timestamp      time.Time
	Latitude       float64
	Longitude      float64
	WithinFence    bool
	DistanceMeters float64
	CreatedAt      time.Time
}

// BreakInterval pairs a break-start punch with the break-end punch that
// closed it. EndPunchID is null while the break is open.
type BreakInterval struct {
	ID              string
	BreakCode       string
	EmployeeID      string
	Date            time.Time
	StartPunchID    string
	EndPunchID      *string
	StartTime       time.Time
	EndTime         *time.Time
	DurationMinutes *int
	IsLunch         bool
	CreatedAt       time.Time
}
