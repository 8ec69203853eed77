package geofence

import "context"

type ConfigRepository interface {
	// GetActive retrieves the active geofence config, nil when none is active
	GetActive(ctx context.Context) (*Config, error)
}
