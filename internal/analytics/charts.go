package analytics

import (
	"encoding/json"

	"ecommerce-analytics/internal/models"
)

const vegaLiteSchema = "https://vega.github.io/schema/vega-lite/v5.json"

// Chart colours.
const (
	RevenueBarColor = "#4CAF50"
	CartBarColor    = "#2196F3"
)

// ChartSpec is a Vega-Lite specification with inline data.
type ChartSpec struct {
	Schema   string       `json:"$schema"`
	Title    string       `json:"title"`
	Width    string       `json:"width"`
	Data     ChartData    `json:"data"`
	Mark     Mark         `json:"mark"`
	Encoding Encoding     `json:"encoding"`
	Params   []ChartParam `json:"params,omitempty"`
}

// ChartData carries the plotted points.
type ChartData struct {
	Values []ChartPoint `json:"values"`
}

// ChartPoint is one product in a chart.
type ChartPoint struct {
	Product   string  `json:"product"`
	Category  string  `json:"category"`
	Revenue   float64 `json:"revenue"`
	CartUnits int64   `json:"cart_units"`
}

// Mark selects the geometric shape of a chart.
type Mark struct {
	Type    string  `json:"type"`
	Color   string  `json:"color,omitempty"`
	Size    int     `json:"size,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

// Encoding maps data fields to visual channels.
type Encoding struct {
	X       *Channel  `json:"x,omitempty"`
	Y       *Channel  `json:"y,omitempty"`
	Color   *Channel  `json:"color,omitempty"`
	Size    *Channel  `json:"size,omitempty"`
	Tooltip []Channel `json:"tooltip,omitempty"`
}

// Channel is a single encoding channel definition.
type Channel struct {
	Field  string          `json:"field"`
	Type   string          `json:"type"`
	Title  string          `json:"title,omitempty"`
	Sort   string          `json:"sort,omitempty"`
	Format string          `json:"format,omitempty"`
	Axis   *Axis           `json:"axis,omitempty"`
	Legend json.RawMessage `json:"legend,omitempty"`
}

// Axis configures tick label formatting.
type Axis struct {
	Format string `json:"format"`
}

// ChartParam binds interactive selections; the zoom/pan param makes a chart interactive.
type ChartParam struct {
	Name   string `json:"name"`
	Select string `json:"select"`
	Bind   string `json:"bind"`
}

var (
	hiddenLegend = json.RawMessage(`null`)
	bottomLegend = json.RawMessage(`{"orient":"bottom","columns":2}`)
	zoomAndPan   = []ChartParam{{Name: "grid", Select: "interval", Bind: "scales"}}
)

func points(rows []models.ProductKPI) []ChartPoint {
	values := make([]ChartPoint, 0, len(rows))
	for _, row := range rows {
		values = append(values, ChartPoint{
			Product:   row.ProductName,
			Category:  row.CategoryName,
			Revenue:   row.TotalRevenue,
			CartUnits: row.CartAddUnits,
		})
	}
	return values
}

func productTooltip() []Channel {
	return []Channel{
		{Field: "product", Type: "nominal", Title: "Product"},
		{Field: "category", Type: "nominal", Title: "Category"},
	}
}

// RevenueBarChart plots revenue per product, longest bar first.
func RevenueBarChart(title string, rows []models.ProductKPI) ChartSpec {
	return ChartSpec{
		Schema: vegaLiteSchema,
		Title:  title,
		Width:  "container",
		Data:   ChartData{Values: points(rows)},
		Mark:   Mark{Type: "bar", Color: RevenueBarColor},
		Encoding: Encoding{
			X: &Channel{Field: "revenue", Type: "quantitative", Title: "Total Revenue ($)", Axis: &Axis{Format: "$,.0f"}},
			Y: &Channel{Field: "product", Type: "nominal", Title: "Product", Sort: "-x"},
			Tooltip: append(productTooltip(),
				Channel{Field: "revenue", Type: "quantitative", Title: "Revenue", Format: "$,.2f"}),
		},
		Params: zoomAndPan,
	}
}

// CartIntentBarChart plots units added to carts per product.
func CartIntentBarChart(title string, rows []models.ProductKPI) ChartSpec {
	return ChartSpec{
		Schema: vegaLiteSchema,
		Title:  title,
		Width:  "container",
		Data:   ChartData{Values: points(rows)},
		Mark:   Mark{Type: "bar", Color: CartBarColor},
		Encoding: Encoding{
			X: &Channel{Field: "cart_units", Type: "quantitative", Title: "Units Added to Cart"},
			Y: &Channel{Field: "product", Type: "nominal", Title: "Product", Sort: "-x"},
			Tooltip: append(productTooltip(),
				Channel{Field: "cart_units", Type: "quantitative", Title: "Units in Cart", Format: ",.0f"}),
		},
		Params: zoomAndPan,
	}
}

// RevenueVsCartScatter plots revenue against cart units, one circle per product,
// coloured by category and sized by revenue.
func RevenueVsCartScatter(title string, rows []models.ProductKPI) ChartSpec {
	return ChartSpec{
		Schema: vegaLiteSchema,
		Title:  title,
		Width:  "container",
		Data:   ChartData{Values: points(rows)},
		Mark:   Mark{Type: "circle", Size: 80, Opacity: 0.7},
		Encoding: Encoding{
			X:     &Channel{Field: "cart_units", Type: "quantitative", Title: "Units Added to Cart", Axis: &Axis{Format: ",.0f"}},
			Y:     &Channel{Field: "revenue", Type: "quantitative", Title: "Total Revenue ($)", Axis: &Axis{Format: "$,.0f"}},
			Color: &Channel{Field: "category", Type: "nominal", Title: "Category", Legend: bottomLegend},
			Size:  &Channel{Field: "revenue", Type: "quantitative", Legend: hiddenLegend},
			Tooltip: append(productTooltip(),
				Channel{Field: "revenue", Type: "quantitative", Title: "Revenue", Format: "$,.2f"},
				Channel{Field: "cart_units", Type: "quantitative", Title: "Units in Cart", Format: ",.0f"}),
		},
		Params: zoomAndPan,
	}
}
