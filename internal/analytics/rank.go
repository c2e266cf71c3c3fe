package analytics

import (
	"math"
	"sort"

	"ecommerce-analytics/internal/models"
)

// Table sizes shown by the dashboard.
const (
	TopRevenueLimit  = 20
	TopGrowthLimit   = 10
	TopCartLimit     = 20
	TopCombinedLimit = 10
)

// topBy returns at most n rows sorted by less. The sort is stable, so rows that
// compare equal keep their input order and repeated calls give the same result.
func topBy(rows []models.ProductKPI, n int, less func(a, b models.ProductKPI) bool) []models.ProductKPI {
	sorted := make([]models.ProductKPI, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// TopByRevenue returns the n rows with the highest total revenue.
func TopByRevenue(rows []models.ProductKPI, n int) []models.ProductKPI {
	return topBy(rows, n, func(a, b models.ProductKPI) bool {
		return a.TotalRevenue > b.TotalRevenue
	})
}

// TopByCartUnits returns the n rows with the most units added to carts.
func TopByCartUnits(rows []models.ProductKPI, n int) []models.ProductKPI {
	return topBy(rows, n, func(a, b models.ProductKPI) bool {
		return a.CartAddUnits > b.CartAddUnits
	})
}

// HasValidGrowth reports whether the row carries a finite growth percentage.
func HasValidGrowth(row models.ProductKPI) bool {
	if row.SalesGrowthPct == nil {
		return false
	}
	g := *row.SalesGrowthPct
	return !math.IsNaN(g) && !math.IsInf(g, 0)
}

// WithValidGrowth drops rows without a finite growth percentage.
func WithValidGrowth(rows []models.ProductKPI) []models.ProductKPI {
	valid := make([]models.ProductKPI, 0, len(rows))
	for _, row := range rows {
		if HasValidGrowth(row) {
			valid = append(valid, row)
		}
	}
	return valid
}

// TopByGrowth returns the n rows with the highest finite growth percentage.
func TopByGrowth(rows []models.ProductKPI, n int) []models.ProductKPI {
	return topBy(WithValidGrowth(rows), n, func(a, b models.ProductKPI) bool {
		return *a.SalesGrowthPct > *b.SalesGrowthPct
	})
}

// compareRank orders ranks ascending with missing ranks last.
func compareRank(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func byRanks(primary, secondary func(models.ProductKPI) *int64) func(a, b models.ProductKPI) bool {
	return func(a, b models.ProductKPI) bool {
		if c := compareRank(primary(a), primary(b)); c != 0 {
			return c < 0
		}
		return compareRank(secondary(a), secondary(b)) < 0
	}
}

func growthRank(r models.ProductKPI) *int64   { return r.GrowthRank }
func revenueRank(r models.ProductKPI) *int64  { return r.RevenueRank }
func cartAddsRank(r models.ProductKPI) *int64 { return r.CartAddsRank }

// StarProducts ranks growing products by growth rank, then revenue rank.
func StarProducts(rows []models.ProductKPI, n int) []models.ProductKPI {
	return topBy(WithValidGrowth(rows), n, byRanks(growthRank, revenueRank))
}

// PotentialProducts ranks growing products by growth rank, then cart-adds rank.
func PotentialProducts(rows []models.ProductKPI, n int) []models.ProductKPI {
	return topBy(WithValidGrowth(rows), n, byRanks(growthRank, cartAddsRank))
}
