// Package chartrender draws projections as SVG or PNG images.
package chartrender

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"prodstats/domain/chart"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an image encoding
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ErrNothingToRender is returned for projections without points.
var ErrNothingToRender = errors.New("nothing to render")

// ParseFormat converts "svg" or "png" into a Format
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// ContentType returns the MIME type of f
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Options sizes the image
type Options struct {
	Width  int
	Height int
	// MaxLabel truncates category labels longer than this many runes.
	MaxLabel int
}

// DefaultOptions returns the size used by the viewer
func DefaultOptions() Options {
	return Options{Width: 960, Height: 400, MaxLabel: 16}
}

var palette = []drawing.Color{
	drawing.ColorFromHex("3b82f6"),
	drawing.ColorFromHex("10b981"),
	drawing.ColorFromHex("f59e0b"),
	drawing.ColorFromHex("ef4444"),
	drawing.ColorFromHex("8b5cf6"),
	drawing.ColorFromHex("ec4899"),
	drawing.ColorFromHex("14b8a6"),
	drawing.ColorFromHex("6366f1"),
}

// Render writes proj to w as an image of the given format.
func Render(w io.Writer, proj chart.Projection, format Format, opts Options) error {
	if proj.Empty() {
		reason := proj.Reason
		if reason == chart.ReasonNone {
			reason = chart.ReasonNoData
		}
		return fmt.Errorf("%w: %s", ErrNothingToRender, reason)
	}
	defaults := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = defaults.Width
	}
	if opts.Height <= 0 {
		opts.Height = defaults.Height
	}
	if opts.MaxLabel <= 0 {
		opts.MaxLabel = defaults.MaxLabel
	}

	provider := gochart.SVG
	if format == FormatPNG {
		provider = gochart.PNG
	}

	var err error
	switch proj.Axes.Type {
	case chart.TypePie:
		err = pieChart(proj, opts).Render(provider, w)
	case chart.TypeLine:
		err = lineChart(proj, opts).Render(provider, w)
	default:
		err = barChart(proj, opts).Render(provider, w)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s chart: %w", proj.Axes.Type, err)
	}
	return nil
}

func title(proj chart.Projection) string {
	if proj.Title != "" {
		return proj.Title
	}
	return proj.Axes.Title()
}

func valueRange(points []chart.Point) *gochart.ContinuousRange {
	max := 0.0
	for _, p := range points {
		if p.Value > max {
			max = p.Value
		}
	}
	return &gochart.ContinuousRange{Min: 0, Max: max * 1.1}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func barChart(proj chart.Projection, opts Options) gochart.BarChart {
	bars := make([]gochart.Value, len(proj.Points))
	for i, p := range proj.Points {
		bars[i] = gochart.Value{
			Label: truncate(p.Category, opts.MaxLabel),
			Value: p.Value,
			Style: gochart.Style{FillColor: palette[0], StrokeColor: palette[0]},
		}
	}

	// Each bar gets an equal slot, three quarters bar and one quarter gap.
	slot := opts.Width / (len(bars) + 1)
	if slot > 80 {
		slot = 80
	}
	barWidth, spacing := slot*3/4, slot/4
	if barWidth < 2 {
		barWidth = 2
	}
	if spacing < 1 {
		spacing = 1
	}

	return gochart.BarChart{
		Title:      title(proj),
		Width:      opts.Width,
		Height:     opts.Height,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.Style{Hidden: len(bars) > 40},
		YAxis:      gochart.YAxis{Name: string(proj.Axes.Y), Range: valueRange(proj.Points)},
		Bars:       bars,
	}
}

func lineChart(proj chart.Projection, opts Options) *gochart.Chart {
	xs := make([]float64, len(proj.Points))
	ys := make([]float64, len(proj.Points))
	ticks := make([]gochart.Tick, 0, len(proj.Points))
	every := len(proj.Points)/20 + 1
	for i, p := range proj.Points {
		xs[i] = float64(i)
		ys[i] = p.Value
		if i%every == 0 {
			ticks = append(ticks, gochart.Tick{Value: float64(i), Label: truncate(p.Category, opts.MaxLabel)})
		}
	}

	xMax := float64(len(proj.Points) - 1)
	if xMax < 1 {
		xMax = 1
	}

	return &gochart.Chart{
		Title:      title(proj),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:  string(proj.Axes.X),
			Range: &gochart.ContinuousRange{Min: 0, Max: xMax},
			Ticks: ticks,
		},
		YAxis: gochart.YAxis{Name: string(proj.Axes.Y), Range: valueRange(proj.Points)},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    string(proj.Axes.Y),
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: palette[0],
					StrokeWidth: 2,
					DotColor:    palette[0],
					DotWidth:    3,
				},
			},
		},
	}
}

func pieChart(proj chart.Projection, opts Options) gochart.PieChart {
	values := make([]gochart.Value, len(proj.Points))
	for i, p := range proj.Points {
		c := palette[i%len(palette)]
		values[i] = gochart.Value{
			Label: truncate(p.Category, opts.MaxLabel),
			Value: p.Value,
			Style: gochart.Style{FillColor: c, StrokeColor: drawing.ColorWhite},
		}
	}
	return gochart.PieChart{
		Title:  title(proj),
		Width:  opts.Width,
		Height: opts.Height,
		Values: values,
	}
}
