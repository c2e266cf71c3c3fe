package analytics

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

// ExportContentType is the MIME type of the workbook written by WriteRevenueWorkbook.
const ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var exportHeaders = []string{
	"Product ID", "Product", "Category", "Month",
	"Total Revenue", "Sales Growth %", "Cart Add Events", "Cart Add Units",
	"Revenue Rank", "Growth Rank", "Cart Adds Rank",
}

// ExportFilename names the download for a report, e.g. kpis-2024-03.xlsx.
func ExportFilename(report Report) string {
	return fmt.Sprintf("kpis-%s.xlsx", MonthKey(report.Month))
}

// WriteRevenueWorkbook writes the top revenue table of report as an xlsx
// workbook. Numeric cells keep raw values; missing ranks and growth are blank.
func WriteRevenueWorkbook(w io.Writer, report Report) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Top Revenue")
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range exportHeaders {
		header.AddCell().SetValue(h)
	}

	for _, r := range report.TopRevenue {
		row := sheet.AddRow()
		row.AddCell().SetValue(r.ProductID)
		row.AddCell().SetValue(r.ProductName)
		row.AddCell().SetValue(r.CategoryName)
		row.AddCell().SetValue(MonthKey(r.OrderMonth))
		row.AddCell().SetValue(r.TotalRevenue)
		if HasValidGrowth(r.ProductKPI) {
			row.AddCell().SetValue(*r.SalesGrowthPct)
		} else {
			row.AddCell()
		}
		row.AddCell().SetValue(r.CartAddEvents)
		row.AddCell().SetValue(r.CartAddUnits)
		for _, rank := range []*int64{r.RevenueRank, r.GrowthRank, r.CartAddsRank} {
			cell := row.AddCell()
			if rank != nil {
				cell.SetValue(*rank)
			}
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
