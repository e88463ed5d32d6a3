package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/homeserve/booking-backend/internal/models"
)

// ServiceRepository handles read-only catalog lookups
type ServiceRepository struct {
	db DB
}

// NewServiceRepository creates a new ServiceRepository
func NewServiceRepository(db DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

const serviceColumns = `id, category, name, amount, image_url`

// GetByCategory retrieves a service definition from one category.
// Returns models.ErrNotFound when the category does not contain the id.
func (r *ServiceRepository) GetByCategory(category models.ServiceCategory, serviceID string) (*models.ServiceDefinition, error) {
	svc := &models.ServiceDefinition{}
	query := `SELECT ` + serviceColumns + ` FROM services WHERE category = $1 AND id = $2`

	err := r.db.Get(svc, query, category, serviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("service %s not in category %s: %w", serviceID, category, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch service: %w: %v", models.ErrStoreUnavailable, err)
	}

	return svc, nil
}

// Resolve searches every category for the service id, stopping at the first
// hit. Categories are probed in the fixed priority order; the id alone does
// not indicate its category. Returns models.ErrNotFound when no category
// contains the id, in which case callers must abort the booking flow rather
// than fall back to a fabricated price.
func (r *ServiceRepository) Resolve(serviceID string) (*models.ServiceDefinition, error) {
	for _, category := range models.CategoryProbeOrder {
		svc, err := r.GetByCategory(category, serviceID)
		if err == nil {
			return svc, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("service %s: %w", serviceID, models.ErrNotFound)
}

// ListByCategory retrieves all services in a category, ordered by name
func (r *ServiceRepository) ListByCategory(category models.ServiceCategory) ([]models.ServiceDefinition, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE category = $1 ORDER BY name`

	var services []models.ServiceDefinition
	if err := r.db.Select(&services, query, category); err != nil {
		return nil, fmt.Errorf("failed to list services: %w: %v", models.ErrStoreUnavailable, err)
	}

	return services, nil
}
