package geofence

import (
	"context"
	"fmt"

	"github.com/nexushr/workforce-backend-go/internal/config"
	"github.com/nexushr/workforce-backend-go/internal/domain/geofence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/utils"
)

// Validator decides whether a punch location is admissible. When no
// geofence row is active it falls back to the configured default office
// point instead of rejecting, so punches keep working on a fresh install.
type Validator interface {
	Validate(ctx context.Context, lat, lon float64) (geofence.Result, error)
}

type ValidatorImpl struct {
	configRepo geofence.ConfigRepository
	defaults   config.GeofenceConfig
}

func NewValidator(configRepo geofence.ConfigRepository, defaults config.GeofenceConfig) Validator {
	return &ValidatorImpl{
		configRepo: configRepo,
		defaults:   defaults,
	}
}

func (v *ValidatorImpl) Validate(ctx context.Context, lat, lon float64) (geofence.Result, error) {
	cfg, err := v.configRepo.GetActive(ctx)
	if err != nil {
		return geofence.Result{}, fmt.Errorf("load geofence config: %w", err)
	}
	if cfg == nil {
		cfg = &geofence.Config{
			OfficeName:   "Head Office",
			Latitude:     v.defaults.DefaultLatitude,
			Longitude:    v.defaults.DefaultLongitude,
			RadiusMeters: v.defaults.DefaultRadius,
		}
	}
	return Evaluate(*cfg, lat, lon), nil
}

// Evaluate is the pure admission check: haversine distance against the
// office radius, distance rounded to two decimals.
func Evaluate(cfg geofence.Config, lat, lon float64) geofence.Result {
	distance := utils.CalculateHaversineDistance(lat, lon, cfg.Latitude, cfg.Longitude)
	distance = utils.RoundMeters(distance)
	return geofence.Result{
		WithinFence:    distance <= cfg.RadiusMeters,
		DistanceMeters: distance,
		OfficeName:     cfg.OfficeName,
	}
}
