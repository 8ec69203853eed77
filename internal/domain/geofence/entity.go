package geofence

import "time"

// Config is an office geofence row. At most one row is active at a time;
// when none is, validation falls back to the application default point.
type Config struct {
	ID           string
	OfficeName   string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Result is a geofence admission decision.
type Result struct {
	WithinFence    bool
	DistanceMeters float64
	OfficeName     string
}
