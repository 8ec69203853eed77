package punch

import (
	"github.com/nexushr/workforce-backend-go/internal/pkg/validator"
)

type SubmitPunchRequest struct {
	EmployeeID string  `json:"-"`
	Type       string  `json:"type"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (r *SubmitPunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if !PunchType(r.Type).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: check_in, check_out, break_start, break_end",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SubmitPunchResponse struct {
	Accepted          bool           `json:"accepted"`
	Reason            string         `json:"reason,omitempty"`
	DistanceMeters    float64        `json:"distance_meters"`
	Punch             *PunchResponse `json:"punch,omitempty"`
	TrainingCompleted bool           `json:"training_completed,omitempty"`
	AttendanceStatus  string         `json:"attendance_status,omitempty"`
}

type PunchResponse struct {
	ID             string  `json:"id"`
	PunchCode      string  `json:"punch_code"`
	Type           string  `json:"type"`
	Timestamp      string  `json:"timestamp"`
	DistanceMeters float64 `json:"distance_meters"`
}

type BreakResponse struct {
	ID              string  `json:"id"`
	BreakCode       string  `json:"break_code"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	IsLunch         bool    `json:"is_lunch"`
}

type TodayStateResponse struct {
	IsCheckedIn  bool            `json:"is_checked_in"`
	IsOnBreak    bool            `json:"is_on_break"`
	IsCheckedOut bool            `json:"is_checked_out"`
	Punches      []PunchResponse `json:"punches"`
	Breaks       []BreakResponse `json:"breaks"`
}
