package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"ecommerce-analytics/internal/models"
)

// Revenue and cart counters are coalesced so a product without sales or cart
// activity in a month still scans into the row type.
var kpiColumns = []string{
	"producto_id",
	"nombre_producto",
	"nombre_categoria",
	"mes_orden",
	"COALESCE(ingresos_totales, 0) AS ingresos_totales",
	"crecimiento_porcentual_ventas",
	"COALESCE(veces_agregado_al_carrito, 0) AS veces_agregado_al_carrito",
	"COALESCE(cantidad_total_agregada_carrito, 0) AS cantidad_total_agregada_carrito",
	"rank_ingresos_totales",
	"rank_crecimiento_ventas",
	"rank_veces_agregado_carrito",
}

// GORMKPIRepository is a GORM implementation of KPIRepository.
type GORMKPIRepository struct {
	db *gorm.DB
}

// NewGORMKPIRepository creates a new instance of GORMKPIRepository.
func NewGORMKPIRepository(db *gorm.DB) *GORMKPIRepository {
	return &GORMKPIRepository{
		db: db,
	}
}

// FetchAll reads the whole reporting view.
func (r *GORMKPIRepository) FetchAll(ctx context.Context) ([]models.ProductKPI, error) {
	var rows []models.ProductKPI
	err := r.db.WithContext(ctx).
		Table(models.KPIViewName).
		Select(kpiColumns).
		Order("mes_orden DESC").
		Order("ingresos_totales DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", models.KPIViewName, err)
	}
	return rows, nil
}
