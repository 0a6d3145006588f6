package repository

import (
	"context"
	"time"

	"fleet-registry/services/fleet/models"
)

// ListQuery describes one page of the vehicle listing. Search is a
// case-insensitive substring matched against vehicleName, driverName, source
// and destination (OR); Status, when set, is an exact match ANDed with the
// search clause.
type ListQuery struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Skip      int64
	Limit     int64
}

// VehicleRepository owns the persisted representation and identifier
// assignment. Implementations report apperrors.ErrNotFound for absent ids.
type VehicleRepository interface {
	Insert(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	// Update replaces all mutable fields; createdAt is preserved and
	// updatedAt refreshed by the store.
	Update(ctx context.Context, id string, v *models.Vehicle) (*models.Vehicle, error)
	DeleteByID(ctx context.Context, id string) error
	Query(ctx context.Context, q ListQuery) ([]models.Vehicle, int64, error)

	CountAll(ctx context.Context) (int64, error)
	CountActive(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	StatusBreakdown(ctx context.Context) (map[string]int64, error)
}
