package geofence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nexushr/workforce-backend-go/internal/domain/geofence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/utils"
)

func officeConfig() geofence.Config {
	return geofence.Config{
		OfficeName:   "Head Office",
		Latitude:     23.351633,
		Longitude:    85.3162779,
		RadiusMeters: 70,
	}
}

func TestEvaluate_SamePointIsZeroDistance(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()

	result := Evaluate(cfg, cfg.Latitude, cfg.Longitude)

	assert.True(t, result.WithinFence)
	assert.InDelta(t, 0, result.DistanceMeters, 0.01)
}

func TestEvaluate_DistanceIsSymmetric(t *testing.T) {
	t.Parallel()

	lat1, lon1 := 23.351633, 85.3162779
	lat2, lon2 := 23.360000, 85.320000

	d1 := utils.CalculateHaversineDistance(lat1, lon1, lat2, lon2)
	d2 := utils.CalculateHaversineDistance(lat2, lon2, lat1, lon1)

	assert.InDelta(t, d1, d2, 1e-9)
}

func TestEvaluate_OutsideRadius(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()

	// Roughly 1.1km north of the office
	result := Evaluate(cfg, cfg.Latitude+0.01, cfg.Longitude)

	assert.False(t, result.WithinFence)
	assert.Greater(t, result.DistanceMeters, cfg.RadiusMeters)
}

func TestEvaluate_JustInsideRadius(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()

	// About 55m north, inside the 70m fence
	result := Evaluate(cfg, cfg.Latitude+0.0005, cfg.Longitude)

	assert.True(t, result.WithinFence)
	assert.Less(t, result.DistanceMeters, cfg.RadiusMeters)
	assert.Greater(t, result.DistanceMeters, 0.0)
}

func TestEvaluate_DistanceRoundedToTwoDecimals(t *testing.T) {
	t.Parallel()
	cfg := officeConfig()

	result := Evaluate(cfg, cfg.Latitude+0.0005, cfg.Longitude)

	rounded := utils.RoundMeters(result.DistanceMeters)
	assert.Equal(t, rounded, result.DistanceMeters)
}
