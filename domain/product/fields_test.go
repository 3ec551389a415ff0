package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldsBaseSetExcludesExtended(t *testing.T) {
	base := Fields(false)
	require.Len(t, base, 11)
	for _, fi := range base {
		assert.False(t, fi.Extended, "field %s should not be extended", fi.Field)
	}

	all := Fields(true)
	assert.Len(t, all, len(fieldTable))
	assert.Equal(t, FieldOrder, all[0].Field)
}

func TestLookupKinds(t *testing.T) {
	tests := []struct {
		field Field
		kind  Kind
	}{
		{FieldStyle, KindCategorical},
		{FieldPrice, KindNumeric},
		{FieldSell, KindNumeric},
		{FieldDate, KindTemporal},
		{FieldSize, KindCategorical},
	}

	for _, tt := range tests {
		fi, ok := Lookup(tt.field)
		require.True(t, ok, tt.field)
		assert.Equal(t, tt.kind, fi.Kind, tt.field)
	}

	_, ok := Lookup("link")
	assert.False(t, ok)
}

func TestAccessors(t *testing.T) {
	r := Record{
		Style: " Slim ",
		Price: 12.5,
		Size:  "32",
		Color: "navy",
		Date:  time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
	}

	style, _ := Lookup(FieldStyle)
	assert.Equal(t, " Slim ", style.Text(r))

	price, _ := Lookup(FieldPrice)
	assert.Equal(t, "12.5", price.Text(r))
	v, ok := price.Number(r)
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	size, _ := Lookup(FieldSize)
	v, ok = size.Number(r)
	assert.True(t, ok)
	assert.Equal(t, 32.0, v)

	for _, text := range []string{"Inf", "-Infinity", "NaN"} {
		_, ok = size.Number(Record{Size: text})
		assert.False(t, ok, text)
	}

	color, _ := Lookup(FieldColor)
	_, ok = color.Number(r)
	assert.False(t, ok)

	date, _ := Lookup(FieldDate)
	assert.Equal(t, "2023-01-15", date.Text(r))
	assert.Equal(t, "", date.Text(Record{}))
}

func TestIsSortable(t *testing.T) {
	assert.True(t, IsSortable(FieldPrice))
	assert.True(t, IsSortable(FieldSell))
	assert.True(t, IsSortable(FieldSize))
	assert.False(t, IsSortable(FieldStyle))
	assert.False(t, IsSortable(FieldDate))
}
