// Package projector turns validated product records into chart points and
// summary statistics. It never fails: problems surface as an empty
// projection with a reason.
package projector

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"prodstats/domain/chart"
	"prodstats/domain/core"
	"prodstats/domain/product"
	"prodstats/internal"
	"prodstats/internal/metrics"
)

// UnknownCategory labels points whose category text is blank.
const UnknownCategory = "Unknown"

// Projector computes chart projections
type Projector struct {
	logger  *internal.Logger
	metrics *metrics.Recorder
}

// NewProjector creates a projector. Either argument may be nil.
func NewProjector(logger *internal.Logger, m *metrics.Recorder) *Projector {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Projector{logger: logger.Named("Projector"), metrics: m}
}

var defaultProjector = NewProjector(nil, nil)

// Project runs q over records with the default projector.
func Project(records []product.Record, q chart.Query) chart.Projection {
	return defaultProjector.Project(records, q)
}

// Project filters, orders and maps records into chart points for q. The
// input slice is never modified.
func (p *Projector) Project(records []product.Record, q chart.Query) (proj chart.Projection) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Projection of %s panicked: %v", q.Axes.Title(), r)
			proj = emptyProjection(q, chart.ReasonProcessingError)
		}
		outcome := "ok"
		if proj.Reason != chart.ReasonNone {
			outcome = string(proj.Reason)
		}
		p.metrics.RecordProjection(string(q.Axes.Type), outcome, len(proj.Points))
	}()

	points, reason, err := p.points(records, q)
	if err != nil {
		p.logger.Warn("Cannot project %s: %v", q.Axes.Title(), err)
		return emptyProjection(q, chart.ReasonProcessingError)
	}
	if reason != chart.ReasonNone {
		return emptyProjection(q, reason)
	}

	values := make([]float64, len(points))
	for i, pt := range points {
		values[i] = pt.Value
	}

	p.logger.Debug("Projected %d %s points for %s", len(points), q.Axes.Type, q.Axes.Title())
	return chart.Projection{
		Axes:   q.Axes,
		Title:  q.Axes.Title(),
		Points: points,
		Stats:  Summarize(values),
	}
}

func (p *Projector) points(records []product.Record, q chart.Query) ([]chart.Point, chart.Reason, error) {
	xInfo, ok := product.Lookup(q.Axes.X)
	if !ok {
		return nil, chart.ReasonNone, core.NewUnknownFieldError(string(q.Axes.X))
	}
	yInfo, ok := product.Lookup(q.Axes.Y)
	if !ok {
		return nil, chart.ReasonNone, core.NewUnknownFieldError(string(q.Axes.Y))
	}

	filtered := filterByDate(records, q.Dates)
	if len(filtered) == 0 {
		return nil, chart.ReasonNoData, nil
	}
	ordered := sortRecords(filtered, yInfo, q.Sort)

	var points []chart.Point
	switch q.Axes.Type {
	case chart.TypeBar, chart.TypeLine:
		points = seriesPoints(ordered, xInfo, yInfo, q.FormatIDs)
	case chart.TypePie:
		points = pieSlices(ordered, xInfo, yInfo)
	default:
		return nil, chart.ReasonNone, core.NewSelectionError(fmt.Sprintf("unknown chart type %q", q.Axes.Type))
	}

	if len(points) == 0 {
		return nil, chart.ReasonNoValidPoints, nil
	}
	return points, chart.ReasonNone, nil
}

func emptyProjection(q chart.Query, reason chart.Reason) chart.Projection {
	return chart.Projection{
		Axes:   q.Axes,
		Title:  q.Axes.Title(),
		Points: []chart.Point{},
		Reason: reason,
	}
}

// filterByDate keeps records inside the range. Undated records are dropped
// while a range is active.
func filterByDate(records []product.Record, dates chart.DateRange) []product.Record {
	if !dates.IsSet() {
		return records
	}
	out := make([]product.Record, 0, len(records))
	for _, r := range records {
		if dates.Contains(r.Date) {
			out = append(out, r)
		}
	}
	return out
}

// sortRecords returns a stably sorted copy when the value axis is sortable
// and an order was requested.
func sortRecords(records []product.Record, yInfo product.FieldInfo, order chart.SortOrder) []product.Record {
	if order == chart.SortNone || !product.IsSortable(yInfo.Field) {
		return records
	}

	sorted := make([]product.Record, len(records))
	copy(sorted, records)

	var cmp func(a, b product.Record) int
	switch {
	case yInfo.Kind == product.KindNumeric:
		cmp = func(a, b product.Record) int {
			av, _ := yInfo.Number(a)
			bv, _ := yInfo.Number(b)
			return compareFloat(av, bv)
		}
	case allNumeric(sorted, yInfo):
		cmp = func(a, b product.Record) int {
			av, _ := parseSize(yInfo.Text(a))
			bv, _ := parseSize(yInfo.Text(b))
			return compareFloat(av, bv)
		}
	default:
		cmp = func(a, b product.Record) int {
			return strings.Compare(yInfo.Text(a), yInfo.Text(b))
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		c := cmp(sorted[i], sorted[j])
		if order == chart.SortDesc {
			return c > 0
		}
		return c < 0
	})
	return sorted
}

// allNumeric reports whether every text value of the field parses as a
// number. Sizes sort numerically ("28" < "104") only when the whole column
// does, lexically otherwise.
func allNumeric(records []product.Record, yInfo product.FieldInfo) bool {
	for _, r := range records {
		if _, ok := parseSize(yInfo.Text(r)); !ok {
			return false
		}
	}
	return true
}

func parseSize(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func category(xInfo product.FieldInfo, r product.Record) string {
	if text := strings.TrimSpace(xInfo.Text(r)); text != "" {
		return text
	}
	return UnknownCategory
}

func value(yInfo product.FieldInfo, r product.Record) float64 {
	v, ok := yInfo.Number(r)
	if !ok {
		return 0
	}
	return v
}

// seriesPoints maps one record to one point, keeping only positive values.
func seriesPoints(records []product.Record, xInfo, yInfo product.FieldInfo, formatIDs bool) []chart.Point {
	points := make([]chart.Point, 0, len(records))
	for _, r := range records {
		v := value(yInfo, r)
		if !(v > 0) {
			continue
		}
		id := r.ID
		if formatIDs {
			id = fmt.Sprintf("%s_%s", r.Style, r.ID)
		}
		points = append(points, chart.Point{
			Category: category(xInfo, r),
			Value:    v,
			Link:     r.Link,
			ID:       id,
		})
	}
	return points
}

// pieSlices sums the value axis per category in first-appearance order and
// keeps only groups with a positive total.
func pieSlices(records []product.Record, xInfo, yInfo product.FieldInfo) []chart.Point {
	var order []string
	totals := make(map[string]float64)
	for _, r := range records {
		c := category(xInfo, r)
		if _, seen := totals[c]; !seen {
			order = append(order, c)
		}
		totals[c] += value(yInfo, r)
	}

	slices := make([]chart.Point, 0, len(order))
	for _, c := range order {
		if total := totals[c]; total > 0 {
			slices = append(slices, chart.Point{Category: c, Value: total})
		}
	}
	return slices
}
