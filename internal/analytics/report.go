package analytics

import (
	"fmt"
	"time"

	"ecommerce-analytics/internal/models"
)

// TableRow is a reporting row together with its display strings.
type TableRow struct {
	models.ProductKPI
	Revenue     string `json:"revenue"`
	Growth      string `json:"growth"`
	CartAdds    string `json:"cart_adds"`
	CartUnits   string `json:"cart_units"`
	GrowthColor string `json:"growth_color,omitempty"`
}

// Leader is the headline product for one metric.
type Leader struct {
	ProductName  string `json:"product_name"`
	CategoryName string `json:"category_name"`
	Value        string `json:"value"`
}

// Charts groups the visualizations of a report.
type Charts struct {
	RevenueBar ChartSpec `json:"revenue_bar"`
	CartBar    ChartSpec `json:"cart_bar"`
	Scatter    ChartSpec `json:"scatter"`
}

// Report is everything the dashboard shows for one month/category selection.
type Report struct {
	Month      time.Time `json:"month"`
	MonthLabel string    `json:"month_label"`
	Category   string    `json:"category"`
	NoData     bool      `json:"no_data"`
	Message    string    `json:"message,omitempty"`

	TopRevenue    []TableRow `json:"top_revenue"`
	RevenueLeader *Leader    `json:"revenue_leader,omitempty"`
	TopGrowth     []TableRow `json:"top_growth"`
	GrowthLeader  *Leader    `json:"growth_leader,omitempty"`
	CartLeader    *Leader    `json:"cart_leader,omitempty"`
	Stars         []TableRow `json:"stars"`
	Potential     []TableRow `json:"potential"`
	Charts        *Charts    `json:"charts,omitempty"`
}

// NewTableRow formats a reporting row for display. Growth cells are coloured
// only when the growth percentage is finite.
func NewTableRow(row models.ProductKPI) TableRow {
	t := TableRow{
		ProductKPI: row,
		Revenue:    FormatCurrency(row.TotalRevenue),
		Growth:     FormatGrowth(row.SalesGrowthPct),
		CartAdds:   FormatCount(row.CartAddEvents),
		CartUnits:  FormatCount(row.CartAddUnits),
	}
	if HasValidGrowth(row) {
		t.GrowthColor = GrowthColor(*row.SalesGrowthPct)
	}
	return t
}

func tableRows(rows []models.ProductKPI) []TableRow {
	out := make([]TableRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewTableRow(row))
	}
	return out
}

func categoryLabel(category string) string {
	if category == "" {
		return AllCategories
	}
	return category
}

// BuildReport filters rows to month and category and assembles every table,
// headline and chart. An empty selection returns a NoData report, never an error.
func BuildReport(rows []models.ProductKPI, month time.Time, category string) Report {
	category = categoryLabel(category)
	label := MonthLabel(month)
	report := Report{
		Month:      month,
		MonthLabel: label,
		Category:   category,
		TopRevenue: []TableRow{},
		TopGrowth:  []TableRow{},
		Stars:      []TableRow{},
		Potential:  []TableRow{},
	}

	filtered := Filter(rows, month, category)
	if len(filtered) == 0 {
		report.NoData = true
		report.Message = fmt.Sprintf("No data available for %s and category %s. Please adjust your filters.", label, category)
		return report
	}

	topRevenue := TopByRevenue(filtered, TopRevenueLimit)
	report.TopRevenue = tableRows(topRevenue)
	first := topRevenue[0]
	report.RevenueLeader = &Leader{
		ProductName:  first.ProductName,
		CategoryName: first.CategoryName,
		Value:        FormatCurrency(first.TotalRevenue),
	}

	topGrowth := TopByGrowth(filtered, TopGrowthLimit)
	report.TopGrowth = tableRows(topGrowth)
	if len(topGrowth) > 0 {
		report.GrowthLeader = &Leader{
			ProductName:  topGrowth[0].ProductName,
			CategoryName: topGrowth[0].CategoryName,
			Value:        FormatGrowth(topGrowth[0].SalesGrowthPct),
		}
	}

	topCart := TopByCartUnits(filtered, TopCartLimit)
	report.CartLeader = &Leader{
		ProductName:  topCart[0].ProductName,
		CategoryName: topCart[0].CategoryName,
		Value:        FormatCount(topCart[0].CartAddUnits) + " units",
	}

	report.Stars = tableRows(StarProducts(filtered, TopCombinedLimit))
	report.Potential = tableRows(PotentialProducts(filtered, TopCombinedLimit))

	report.Charts = &Charts{
		RevenueBar: RevenueBarChart(fmt.Sprintf("Top %d Products by Revenue in %s", TopRevenueLimit, label), topRevenue),
		CartBar:    CartIntentBarChart(fmt.Sprintf("Top %d Products by Units Added to Cart in %s", TopCartLimit, label), topCart),
		Scatter:    RevenueVsCartScatter(fmt.Sprintf("Revenue vs. Units Added to Cart in %s", label), filtered),
	}
	return report
}
