// Package analytics holds the read-only transformations behind the KPI dashboard:
// filtering, ranking, formatting and chart construction over rows already loaded
// from the reporting view. Nothing in this package touches the database.
package analytics

import (
	"sort"
	"time"

	"ecommerce-analytics/internal/models"
)

// AllCategories is the category choice that disables category filtering.
const AllCategories = "All Categories"

// MonthKeyLayout is the layout used for month query parameters and keys.
const MonthKeyLayout = "2006-01"

// MonthKey identifies the calendar month of t, ignoring day and time.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// ParseMonth parses a "2006-01" month key into the first instant of that month in UTC.
func ParseMonth(key string) (time.Time, error) {
	return time.Parse(MonthKeyLayout, key)
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// AvailableMonths returns the distinct months present in rows, newest first.
func AvailableMonths(rows []models.ProductKPI) []time.Time {
	seen := make(map[string]bool)
	var months []time.Time
	for _, row := range rows {
		key := MonthKey(row.OrderMonth)
		if seen[key] {
			continue
		}
		seen[key] = true
		months = append(months, time.Date(row.OrderMonth.Year(), row.OrderMonth.Month(), 1, 0, 0, 0, 0, time.UTC))
	}
	sort.Slice(months, func(i, j int) bool { return months[i].After(months[j]) })
	return months
}

// AvailableCategories returns AllCategories followed by the distinct category names, sorted.
func AvailableCategories(rows []models.ProductKPI) []string {
	seen := make(map[string]bool)
	var names []string
	for _, row := range rows {
		if seen[row.CategoryName] {
			continue
		}
		seen[row.CategoryName] = true
		names = append(names, row.CategoryName)
	}
	sort.Strings(names)
	return append([]string{AllCategories}, names...)
}

// Filter keeps the rows of the given month and, unless category is empty or
// AllCategories, of the given category. Row order is preserved.
func Filter(rows []models.ProductKPI, month time.Time, category string) []models.ProductKPI {
	filtered := make([]models.ProductKPI, 0)
	for _, row := range rows {
		if !sameMonth(row.OrderMonth, month) {
			continue
		}
		if category != "" && category != AllCategories && row.CategoryName != category {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}
