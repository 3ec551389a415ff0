// Package chart defines the axis selection, query and projection types
// exchanged between the projector and its renderers.
package chart

import (
	"fmt"
	"time"

	"prodstats/domain/core"
	"prodstats/domain/product"
)

// Type is the chart kind requested by the user.
type Type string

const (
	TypeBar  Type = "bar"
	TypeLine Type = "line"
	TypePie  Type = "pie"
)

// Types lists the chart kinds in selector order.
var Types = []Type{TypeBar, TypeLine, TypePie}

// ParseType converts a selector value into a Type.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeBar, TypeLine, TypePie:
		return Type(s), nil
	}
	return "", core.NewSelectionError(fmt.Sprintf("unknown chart type %q", s))
}

// SortOrder orders records by the value axis. The zero value leaves rows
// in upload order.
type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder converts a toggle value into a SortOrder.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortNone, SortAsc, SortDesc:
		return SortOrder(s), nil
	}
	return "", core.NewSelectionError(fmt.Sprintf("unknown sort order %q", s))
}

// AxisSelection is the user's choice of category axis, value axis and chart type.
type AxisSelection struct {
	X    product.Field `json:"x_axis"`
	Y    product.Field `json:"y_axis"`
	Type Type          `json:"chart_type"`
}

// DefaultSelection is what the viewer shows before the user picks anything.
func DefaultSelection() AxisSelection {
	return AxisSelection{X: product.FieldStyle, Y: product.FieldPrice, Type: TypeBar}
}

// Title is the "<x> vs <y>" caption shown above a chart.
func (s AxisSelection) Title() string {
	return fmt.Sprintf("%s vs %s", s.X, s.Y)
}

// DateRange keeps records dated within [From, To], compared by calendar day.
// A zero From disables the filter; a zero To leaves the range open-ended.
type DateRange struct {
	From time.Time `json:"from,omitzero"`
	To   time.Time `json:"to,omitzero"`
}

// IsSet reports whether the range filters anything.
func (d DateRange) IsSet() bool {
	return !d.From.IsZero()
}

// Contains reports whether t falls inside the range. Undated values never do.
func (d DateRange) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	day := calendarDay(t)
	if day.Before(calendarDay(d.From)) {
		return false
	}
	if !d.To.IsZero() && day.After(calendarDay(d.To)) {
		return false
	}
	return true
}

func calendarDay(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, time.UTC)
}

// Query parameterizes one projection.
type Query struct {
	Axes  AxisSelection `json:"axes"`
	Dates DateRange     `json:"dates"`
	Sort  SortOrder     `json:"sort,omitempty"`
	// FormatIDs rewrites point IDs as "<style>_<id>" for display.
	FormatIDs bool `json:"format_ids,omitempty"`
}

// Point is one plotted unit: a bar, a line vertex or a pie slice.
type Point struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
	Link     string  `json:"link,omitempty"`
	ID       string  `json:"id,omitempty"`
}

// SummaryStats describes the plotted values.
type SummaryStats struct {
	Total  float64 `json:"total"`
	Avg    float64 `json:"avg"`
	Max    float64 `json:"max"`
	Min    float64 `json:"min"`
	Count  int     `json:"count"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
}

// Reason explains an empty projection.
type Reason string

const (
	ReasonNone            Reason = ""
	ReasonNoData          Reason = "No data available to display"
	ReasonNoValidPoints   Reason = "No valid data points to display"
	ReasonProcessingError Reason = "Error processing data"
)

// Projection is the chart-ready result handed to a renderer. Either Points
// is non-empty and Stats is set, or Points is empty and Reason says why.
type Projection struct {
	Axes   AxisSelection `json:"axes"`
	Title  string        `json:"title"`
	Points []Point       `json:"points"`
	Stats  *SummaryStats `json:"stats,omitempty"`
	Reason Reason        `json:"reason,omitempty"`
}

// Empty reports whether nothing is plotted.
func (p Projection) Empty() bool {
	return len(p.Points) == 0
}
