package report

import (
	"strings"
	"testing"

	"prodstats/domain/chart"
	"prodstats/domain/product"

	"github.com/stretchr/testify/assert"
)

func sampleProjection() chart.Projection {
	axes := chart.AxisSelection{X: product.FieldPantType, Y: product.FieldPrice, Type: chart.TypeBar}
	return chart.Projection{
		Axes:  axes,
		Title: axes.Title(),
		Points: []chart.Point{
			{Category: "Chino", Value: 1500, Link: "https://example.com/c"},
			{Category: "Cargo|Wide", Value: 20.5},
		},
		Stats: &chart.SummaryStats{Total: 1520.5, Avg: 760.25, Max: 1500, Min: 20.5, Count: 2, Median: 760.25},
	}
}

func TestMarkdown(t *testing.T) {
	md := string(Markdown(sampleProjection(), Source{FileName: "q1.xlsx", Records: 1200}, Options{}))

	assert.Contains(t, md, "# Product Statistics")
	assert.Contains(t, md, "Source: `q1.xlsx`, 1,200 records")
	assert.Contains(t, md, "## Pant Type vs Price (bar chart)")
	assert.Contains(t, md, "| 1,520.5 | 760.25 | 1,500 | 20.5 | 2 |")
	assert.Contains(t, md, "| 1 | Chino | 1,500 | [open](https://example.com/c) |")
	assert.Contains(t, md, `Cargo\|Wide`)
}

func TestMarkdownEmptyProjection(t *testing.T) {
	proj := chart.Projection{
		Axes:   chart.DefaultSelection(),
		Points: []chart.Point{},
		Reason: chart.ReasonNoValidPoints,
	}
	md := string(Markdown(proj, Source{}, Options{}))

	assert.Contains(t, md, "No valid data points to display")
	assert.NotContains(t, md, "Source:")
	assert.NotContains(t, md, "### Points")
}

func TestMarkdownTruncatesPoints(t *testing.T) {
	proj := sampleProjection()
	md := string(Markdown(proj, Source{}, Options{MaxRows: 1}))

	assert.Contains(t, md, "| 1 | Chino |")
	assert.NotContains(t, md, "| 2 |")
	assert.Contains(t, md, "_1 more points not shown._")
}

func TestHTML(t *testing.T) {
	out := string(HTML(sampleProjection(), Source{}, Options{}))

	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, `target="_blank"`)
	assert.True(t, strings.Contains(out, "Chino"))
}

func TestHTMLDropsRawMarkup(t *testing.T) {
	proj := sampleProjection()
	proj.Points[0].Category = "<script>alert(1)</script>"
	proj.Points[0].Link = "javascript:alert(1)"

	out := string(HTML(proj, Source{}, Options{}))
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, `href="javascript:`)
}
