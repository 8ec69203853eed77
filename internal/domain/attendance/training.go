package attendance

import "time"

// InTraining reports whether an employee is still inside the training
// period: training has a recorded start, has not been marked complete,
// and fewer than requiredDays attendance rows carry training status.
// Sundays, holidays and absences never count; only training days do.
func InTraining(trainingStart *time.Time, completed bool, trainingDays, requiredDays int) bool {
	if trainingStart == nil || completed {
		return false
	}
	return trainingDays < requiredDays
}
