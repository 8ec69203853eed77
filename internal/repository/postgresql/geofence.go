package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/nexushr/workforce-backend-go/internal/domain/geofence"
	"github.com/nexushr/workforce-backend-go/internal/pkg/database"
)

type geofenceConfigRepository struct {
	db *database.DB
}

// GetActive implements geofence.ConfigRepository.
func (g *geofenceConfigRepository) GetActive(ctx context.Context) (*geofence.Config, error) {
	q := GetQuerier(ctx, g.db)

	query := `
		SELECT id, office_name, latitude, longitude, radius_meters, is_active,
			   created_at, updated_at
		FROM geofence_configs
		WHERE is_active = TRUE
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var cfg geofence.Config
	err := q.QueryRow(ctx, query).Scan(
		&cfg.ID, &cfg.OfficeName, &cfg.Latitude, &cfg.Longitude, &cfg.RadiusMeters, &cfg.IsActive,
		&cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // fall back to the default office
		}
		return nil, fmt.Errorf("failed to get active geofence config: %w", err)
	}

	return &cfg, nil
}

func NewGeofenceConfigRepository(db *database.DB) geofence.ConfigRepository {
	return &geofenceConfigRepository{db: db}
}
