package main

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"prodstats/domain/chart"
	"prodstats/domain/product"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	q, err := buildQuery("id", "price", "line", "desc", "2023-01-01", "2023-01-31", true)
	require.NoError(t, err)
	assert.Equal(t, product.FieldID, q.Axes.X)
	assert.Equal(t, chart.SortDesc, q.Sort)
	assert.True(t, q.Dates.IsSet())
	assert.Equal(t, 31, q.Dates.To.Day())

	_, err = buildQuery("id", "price", "line", "", "", "", false)
	assert.Error(t, err, "id needs the extended layout")

	q, err = buildQuery("style", "price", "bar", "", "", "2023-01-31", false)
	require.NoError(t, err, "--to alone applies no filter")
	assert.False(t, q.Dates.IsSet())
	assert.True(t, q.Dates.To.IsZero())

	_, err = buildQuery("style", "price", "bar", "sideways", "", "", false)
	assert.Error(t, err)
}

type closeRecorder struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteAndClose(t *testing.T) {
	proj := chart.Projection{
		Axes:   chart.DefaultSelection(),
		Points: []chart.Point{{Category: "Slim", Value: 10}},
		Stats:  &chart.SummaryStats{Total: 10, Avg: 10, Max: 10, Min: 10, Count: 1, Median: 10},
	}
	write := func(w io.Writer) error {
		return writeProjection(w, proj, "svg", "products.xlsx", 1, 0, 0)
	}

	ok := &closeRecorder{}
	require.NoError(t, writeAndClose(ok, "chart.svg", write))
	assert.True(t, ok.closed)
	assert.Contains(t, ok.String(), "<svg")

	failing := &closeRecorder{closeErr: errors.New("disk full")}
	err := writeAndClose(failing, "chart.svg", write)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write chart.svg: disk full")

	unknown := &closeRecorder{}
	err = writeAndClose(unknown, "chart.gif", func(w io.Writer) error {
		return writeProjection(w, proj, "gif", "products.xlsx", 1, 0, 0)
	})
	require.Error(t, err)
	assert.True(t, unknown.closed)
}

func TestFieldsCommand(t *testing.T) {
	cmd := newFieldsCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--type", "pie"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Category axis (pie):")
	assert.Contains(t, out.String(), "pantType")
	assert.NotContains(t, out.String(), "date")
}
