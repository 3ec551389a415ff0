// Package product defines the product record extracted from an uploaded
// spreadsheet and the field metadata used to chart it.
package product

import "time"

// Record is one validated row of an uploaded product sheet.
// Records are never mutated after extraction.
type Record struct {
	Order               string    `json:"order"`
	Style               string    `json:"style"`
	Fit                 string    `json:"fit"`
	Type                string    `json:"type"`
	PantType            string    `json:"pantType"`
	Material            string    `json:"material"`
	MaterialComposition string    `json:"materialComposition"`
	Price               float64   `json:"price"`
	Sell                float64   `json:"sell"`
	Color               string    `json:"color"`
	Seller              string    `json:"seller"`
	Size                string    `json:"size"`
	Date                time.Time `json:"date,omitzero"`
	ID                  string    `json:"id"`
	Link                string    `json:"link,omitempty"`
}

// HasDate reports whether the row carried a parseable date.
func (r Record) HasDate() bool {
	return !r.Date.IsZero()
}
