package coercer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNumber(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name    string
		raw     string
		present bool
		want    float64
		ok      bool
	}{
		{"integer", "42", true, 42, true},
		{"decimal with spaces", "  19.99 ", true, 19.99, true},
		{"negative", "-5", true, -5, true},
		{"exponent", "1e3", true, 1000, true},
		{"missing", "", false, 0, false},
		{"whitespace only", "   ", true, 0, true},
		{"empty but present", "", true, 0, true},
		{"text", "twelve", true, 0, false},
		{"currency", "$12", true, 0, false},
		{"nan", "NaN", true, 0, false},
		{"infinity", "Inf", true, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Number(tt.raw, tt.present)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanString(t *testing.T) {
	c := NewTypeCoercer(CoercionConfig{})
	assert.Equal(t, "", c.CleanString("ignored", false))
	assert.Equal(t, "Slim Fit", c.CleanString("  Slim Fit\t", true))
	assert.Equal(t, "", c.CleanString("   ", true))
}

func TestTimestamp(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())
	want := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)

	got, ok := c.Timestamp("2023-01-15", true)
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	got, ok = c.Timestamp("01/15/2023", true)
	assert.True(t, ok)
	assert.True(t, want.Equal(got))

	// 44941 is 2023-01-15 in the 1900 date system.
	got, ok = c.Timestamp("44941", true)
	assert.True(t, ok)
	assert.Equal(t, 2023, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 15, got.Day())

	_, ok = c.Timestamp("soon", true)
	assert.False(t, ok)

	_, ok = c.Timestamp("", false)
	assert.False(t, ok)

	_, ok = c.Timestamp("-3", true)
	assert.False(t, ok)
}
