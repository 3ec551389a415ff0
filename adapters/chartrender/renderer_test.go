package chartrender

import (
	"bytes"
	"testing"

	"prodstats/domain/chart"
	"prodstats/domain/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projection(typ chart.Type, points ...chart.Point) chart.Projection {
	axes := chart.AxisSelection{X: product.FieldStyle, Y: product.FieldPrice, Type: typ}
	return chart.Projection{Axes: axes, Title: axes.Title(), Points: points}
}

func TestRenderSVG(t *testing.T) {
	points := []chart.Point{
		{Category: "Slim", Value: 10},
		{Category: "Wide leg relaxed fit", Value: 25},
		{Category: "Regular", Value: 5},
	}

	for _, typ := range chart.Types {
		t.Run(string(typ), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, projection(typ, points...), FormatSVG, Options{}))
			assert.Contains(t, buf.String(), "<svg")
		})
	}
}

func TestRenderSinglePoint(t *testing.T) {
	for _, typ := range chart.Types {
		t.Run(string(typ), func(t *testing.T) {
			var buf bytes.Buffer
			err := Render(&buf, projection(typ, chart.Point{Category: "Only", Value: 3}), FormatSVG, Options{})
			require.NoError(t, err)
			assert.NotZero(t, buf.Len())
		})
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, projection(chart.TypeBar, chart.Point{Category: "A", Value: 1}, chart.Point{Category: "B", Value: 2}), FormatPNG, Options{Width: 320, Height: 200})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRenderEmpty(t *testing.T) {
	proj := projection(chart.TypeBar)
	proj.Reason = chart.ReasonNoValidPoints

	err := Render(&bytes.Buffer{}, proj, FormatSVG, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNothingToRender)
	assert.Contains(t, err.Error(), "No valid data points to display")
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("PNG")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	assert.Equal(t, "image/png", f.ContentType())
	assert.Equal(t, "image/svg+xml", FormatSVG.ContentType())

	_, err = ParseFormat("gif")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 8))
	assert.Equal(t, "abcdefg…", truncate("abcdefghijk", 8))
}
