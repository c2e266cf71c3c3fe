package models

import "time"

// KPIViewName is the reporting relation maintained outside this repository.
const KPIViewName = "rpt_analisis_productos_kpis"

// ProductKPI is one product/month row of the reporting view.
type ProductKPI struct {
	ProductID    int       `json:"product_id" gorm:"column:producto_id"`
	ProductName  string    `json:"product_name" gorm:"column:nombre_producto"`
	CategoryName string    `json:"category_name" gorm:"column:nombre_categoria"`
	OrderMonth   time.Time `json:"order_month" gorm:"column:mes_orden"`
	TotalRevenue float64   `json:"total_revenue" gorm:"column:ingresos_totales"`
	// SalesGrowthPct is nil for a product's first month.
	SalesGrowthPct *float64 `json:"sales_growth_pct" gorm:"column:crecimiento_porcentual_ventas"`
	CartAddEvents  int64    `json:"cart_add_events" gorm:"column:veces_agregado_al_carrito"`
	CartAddUnits   int64    `json:"cart_add_units" gorm:"column:cantidad_total_agregada_carrito"`
	RevenueRank    *int64   `json:"revenue_rank" gorm:"column:rank_ingresos_totales"`
	GrowthRank     *int64   `json:"growth_rank" gorm:"column:rank_crecimiento_ventas"`
	CartAddsRank   *int64   `json:"cart_adds_rank" gorm:"column:rank_veces_agregado_carrito"`
}

func (ProductKPI) TableName() string { return KPIViewName }
