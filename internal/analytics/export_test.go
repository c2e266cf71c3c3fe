package analytics_test

import (
	"bytes"
	"testing"
	"time"

	"ecommerce-analytics/internal/analytics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"
)

func TestWriteRevenueWorkbook(t *testing.T) {
	report := analytics.BuildReport(reportRows(), month(2024, time.February), analytics.AllCategories)

	var buf bytes.Buffer
	require.NoError(t, analytics.WriteRevenueWorkbook(&buf, report))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Top Revenue", sheet.Name)
	require.Len(t, sheet.Rows, 4)
	assert.Equal(t, "Product ID", sheet.Rows[0].Cells[0].Value)
	assert.Equal(t, "Total Revenue", sheet.Rows[0].Cells[4].Value)

	assert.Equal(t, "Laptop", sheet.Rows[1].Cells[1].Value)
	assert.Equal(t, "Electronics", sheet.Rows[1].Cells[2].Value)
	assert.Equal(t, "2024-02", sheet.Rows[1].Cells[3].Value)
	assert.Equal(t, "Novel", sheet.Rows[2].Cells[1].Value)
	assert.Equal(t, "Mouse", sheet.Rows[3].Cells[1].Value)
}

func TestWriteRevenueWorkbook_NoData(t *testing.T) {
	report := analytics.BuildReport(nil, month(2024, time.February), analytics.AllCategories)

	var buf bytes.Buffer
	require.NoError(t, analytics.WriteRevenueWorkbook(&buf, report))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, file.Sheets[0].Rows, 1)
}

func TestExportFilename(t *testing.T) {
	report := analytics.BuildReport(nil, month(2024, time.March), "")
	assert.Equal(t, "kpis-2024-03.xlsx", analytics.ExportFilename(report))
}
