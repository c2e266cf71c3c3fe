package repositories

import (
	"context"

	"ecommerce-analytics/internal/models"
)

// KPIRepository defines read access to the product KPI reporting view.
type KPIRepository interface {
	// FetchAll returns every row ordered by month (newest first), then revenue (highest first).
	FetchAll(ctx context.Context) ([]models.ProductKPI, error)
}
