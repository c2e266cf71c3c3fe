package analytics_test

import (
	"math"
	"testing"
	"time"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func ptr[T any](v T) *T { return &v }

func kpi(id int, name, category string, m time.Time, revenue float64) models.ProductKPI {
	return models.ProductKPI{
		ProductID:    id,
		ProductName:  name,
		CategoryName: category,
		OrderMonth:   m,
		TotalRevenue: revenue,
	}
}

func names(rows []models.ProductKPI) []string {
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.ProductName)
	}
	return out
}

func TestAvailableMonths(t *testing.T) {
	rows := []models.ProductKPI{
		kpi(1, "A", "X", month(2024, time.January), 1),
		kpi(2, "B", "X", time.Date(2024, time.March, 1, 0, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)), 1),
		kpi(3, "C", "Y", month(2024, time.January), 1),
		kpi(4, "D", "Y", month(2023, time.December), 1),
	}

	months := analytics.AvailableMonths(rows)
	require.Len(t, months, 3)
	assert.Equal(t, "2024-03", analytics.MonthKey(months[0]))
	assert.Equal(t, "2024-01", analytics.MonthKey(months[1]))
	assert.Equal(t, "2023-12", analytics.MonthKey(months[2]))
}

func TestAvailableCategories(t *testing.T) {
	rows := []models.ProductKPI{
		kpi(1, "A", "Toys", month(2024, time.January), 1),
		kpi(2, "B", "Books", month(2024, time.January), 1),
		kpi(3, "C", "Toys", month(2024, time.February), 1),
	}

	assert.Equal(t, []string{analytics.AllCategories, "Books", "Toys"}, analytics.AvailableCategories(rows))
	assert.Equal(t, []string{analytics.AllCategories}, analytics.AvailableCategories(nil))
}

func TestFilter(t *testing.T) {
	rows := []models.ProductKPI{
		kpi(1, "A", "Toys", month(2024, time.January), 1),
		kpi(2, "B", "Books", month(2024, time.January), 1),
		kpi(3, "C", "Toys", month(2024, time.February), 1),
		kpi(4, "D", "Toys", month(2024, time.January), 1),
	}

	assert.Equal(t, []string{"A", "B", "D"}, names(analytics.Filter(rows, month(2024, time.January), analytics.AllCategories)))
	assert.Equal(t, []string{"A", "B", "D"}, names(analytics.Filter(rows, month(2024, time.January), "")))
	assert.Equal(t, []string{"A", "D"}, names(analytics.Filter(rows, month(2024, time.January), "Toys")))

	// A month without rows yields an empty, non-nil result
	empty := analytics.Filter(rows, month(2025, time.June), analytics.AllCategories)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestTopByRevenue_StableAndDescending(t *testing.T) {
	m := month(2024, time.January)
	rows := []models.ProductKPI{
		kpi(1, "tie-first", "X", m, 100),
		kpi(2, "top", "X", m, 300),
		kpi(3, "tie-second", "X", m, 100),
		kpi(4, "low", "X", m, 10),
		kpi(5, "tie-third", "X", m, 100),
	}

	want := []string{"top", "tie-first", "tie-second", "tie-third", "low"}
	for i := 0; i < 5; i++ {
		got := analytics.TopByRevenue(rows, 20)
		assert.Equal(t, want, names(got))
	}

	top := analytics.TopByRevenue(rows, 2)
	assert.Equal(t, []string{"top", "tie-first"}, names(top))

	// Input is not reordered
	assert.Equal(t, "tie-first", rows[0].ProductName)
}

func TestTopByGrowth_SkipsMissingAndNonFinite(t *testing.T) {
	m := month(2024, time.January)
	rows := []models.ProductKPI{
		kpi(1, "none", "X", m, 1),
		kpi(2, "nan", "X", m, 1),
		kpi(3, "inf", "X", m, 1),
		kpi(4, "neg-inf", "X", m, 1),
		kpi(5, "slow", "X", m, 1),
		kpi(6, "fast", "X", m, 1),
		kpi(7, "shrinking", "X", m, 1),
	}
	rows[1].SalesGrowthPct = ptr(math.NaN())
	rows[2].SalesGrowthPct = ptr(math.Inf(1))
	rows[3].SalesGrowthPct = ptr(math.Inf(-1))
	rows[4].SalesGrowthPct = ptr(5.0)
	rows[5].SalesGrowthPct = ptr(80.0)
	rows[6].SalesGrowthPct = ptr(-12.5)

	assert.Equal(t, []string{"fast", "slow", "shrinking"}, names(analytics.TopByGrowth(rows, 10)))
	assert.Len(t, analytics.WithValidGrowth(rows), 3)
}

func TestTopByCartUnits(t *testing.T) {
	m := month(2024, time.January)
	rows := []models.ProductKPI{
		{ProductName: "few", OrderMonth: m, CartAddUnits: 2},
		{ProductName: "many", OrderMonth: m, CartAddUnits: 40},
		{ProductName: "some", OrderMonth: m, CartAddUnits: 7},
	}

	assert.Equal(t, []string{"many", "some", "few"}, names(analytics.TopByCartUnits(rows, 20)))
}

func TestStarAndPotentialProducts(t *testing.T) {
	m := month(2024, time.January)
	rows := []models.ProductKPI{
		{ProductName: "no-growth", OrderMonth: m, GrowthRank: ptr[int64](1), RevenueRank: ptr[int64](1), CartAddsRank: ptr[int64](1)},
		{ProductName: "unranked", OrderMonth: m, SalesGrowthPct: ptr(1.0)},
		{ProductName: "b", OrderMonth: m, SalesGrowthPct: ptr(10.0), GrowthRank: ptr[int64](1), RevenueRank: ptr[int64](3), CartAddsRank: ptr[int64](1)},
		{ProductName: "a", OrderMonth: m, SalesGrowthPct: ptr(10.0), GrowthRank: ptr[int64](1), RevenueRank: ptr[int64](2), CartAddsRank: ptr[int64](5)},
		{ProductName: "c", OrderMonth: m, SalesGrowthPct: ptr(3.0), GrowthRank: ptr[int64](2), RevenueRank: ptr[int64](1), CartAddsRank: ptr[int64](2)},
	}

	assert.Equal(t, []string{"a", "b", "c", "unranked"}, names(analytics.StarProducts(rows, 10)))
	assert.Equal(t, []string{"b", "a", "c", "unranked"}, names(analytics.PotentialProducts(rows, 10)))
	assert.Equal(t, []string{"a", "b"}, names(analytics.StarProducts(rows, 2)))
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$1,234,567.89", analytics.FormatCurrency(1234567.891))
	assert.Equal(t, "$0.00", analytics.FormatCurrency(0))
	assert.Equal(t, "12.35%", analytics.FormatPercent(12.345))
	assert.Equal(t, "-1,500.00%", analytics.FormatPercent(-1500))
	assert.Equal(t, "12,345", analytics.FormatCount(12345))
	assert.Equal(t, analytics.NotAvailable, analytics.FormatGrowth(nil))
	assert.Equal(t, "January 2024", analytics.MonthLabel(month(2024, time.January)))
}

func TestGrowthColor(t *testing.T) {
	assert.Equal(t, analytics.ColorGrowthPositive, analytics.GrowthColor(0.01))
	assert.Equal(t, analytics.ColorGrowthNegative, analytics.GrowthColor(-3))
	assert.Equal(t, analytics.ColorGrowthFlat, analytics.GrowthColor(0))
}

func TestParseMonth(t *testing.T) {
	m, err := analytics.ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, month(2024, time.February), m)

	_, err = analytics.ParseMonth("February")
	assert.Error(t, err)
}
