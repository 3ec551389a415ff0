package product

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Field names a chartable attribute of a Record.
type Field string

const (
	FieldOrder               Field = "order"
	FieldStyle               Field = "style"
	FieldFit                 Field = "fit"
	FieldType                Field = "type"
	FieldPantType            Field = "pantType"
	FieldMaterial            Field = "material"
	FieldMaterialComposition Field = "materialComposition"
	FieldPrice               Field = "price"
	FieldSell                Field = "sell"
	FieldColor               Field = "color"
	FieldSeller              Field = "seller"
	FieldSize                Field = "size"
	FieldDate                Field = "date"
	FieldID                  Field = "id"
)

// Kind classifies how a field can be charted.
type Kind string

const (
	KindNumeric     Kind = "numeric"
	KindCategorical Kind = "categorical"
	KindTemporal    Kind = "temporal"
)

// DateLayout is the textual form of Record.Date when used as a category.
const DateLayout = "2006-01-02"

// FieldInfo is one entry of the field metadata table.
type FieldInfo struct {
	Field  Field  `json:"value"`
	Label  string `json:"label"`
	Header string `json:"header"`
	Kind   Kind   `json:"type"`
	// Extended fields only exist in sheets using the date-range layout.
	Extended bool `json:"extended"`

	accessors
}

// Text returns the field value as category text, untrimmed.
func (fi FieldInfo) Text(r Record) string {
	return fi.text(r)
}

// Number returns the field value as a number. ok is false when the value
// has no numeric reading.
func (fi FieldInfo) Number(r Record) (float64, bool) {
	return fi.number(r)
}

// Sheet header strings. Matching is exact: case and spacing are significant.
const (
	HeaderOrder               = "Order"
	HeaderStyle               = "Style"
	HeaderFit                 = "Fit"
	HeaderType                = "Type"
	HeaderPantType            = "Pant type"
	HeaderMaterial            = "MATERIAL"
	HeaderMaterialComposition = "Material composition"
	HeaderPrice               = "Price"
	HeaderSell                = "Sell"
	HeaderColor               = "Color"
	HeaderSeller              = "Seller"
	HeaderSize                = "Size"
	HeaderDate                = "Date"
	HeaderID                  = "ID"
	HeaderLink                = "Link"
)

type accessors struct {
	text   func(Record) string
	number func(Record) (float64, bool)
}

func textual(get func(Record) string) accessors {
	return accessors{
		text:   get,
		number: func(r Record) (float64, bool) { return parseNumber(get(r)) },
	}
}

func numeric(get func(Record) float64) accessors {
	return accessors{
		text:   func(r Record) string { return strconv.FormatFloat(get(r), 'f', -1, 64) },
		number: func(r Record) (float64, bool) { return get(r), true },
	}
}

func temporal(get func(Record) time.Time) accessors {
	return accessors{
		text: func(r Record) string {
			if t := get(r); !t.IsZero() {
				return t.Format(DateLayout)
			}
			return ""
		},
		number: func(Record) (float64, bool) { return 0, false },
	}
}

var fieldTable = []FieldInfo{
	{Field: FieldOrder, Label: "Order", Header: HeaderOrder, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.Order })},
	{Field: FieldStyle, Label: "Style", Header: HeaderStyle, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.Style })},
	{Field: FieldFit, Label: "Fit", Header: HeaderFit, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.Fit })},
	{Field: FieldType, Label: "Type", Header: HeaderType, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.Type })},
	{Field: FieldPantType, Label: "Pant Type", Header: HeaderPantType, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.PantType })},
	{Field: FieldMaterial, Label: "Material", Header: HeaderMaterial, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.Material })},
	{Field: FieldMaterialComposition, Label: "Material Composition", Header: HeaderMaterialComposition, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.MaterialComposition })},
	{Field: FieldPrice, Label: "Price", Header: HeaderPrice, Kind: KindNumeric,
		accessors: numeric(func(r Record) float64 { return r.Price })},
	{Field: FieldSell, Label: "Sell", Header: HeaderSell, Kind: KindNumeric,
		accessors: numeric(func(r Record) float64 { return r.Sell })},
	{Field: FieldColor, Label: "Color", Header: HeaderColor, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.Color })},
	{Field: FieldSeller, Label: "Seller", Header: HeaderSeller, Kind: KindCategorical,
		accessors: textual(func(r Record) string { return r.Seller })},
	{Field: FieldSize, Label: "Size", Header: HeaderSize, Kind: KindCategorical, Extended: true,
		accessors: textual(func(r Record) string { return r.Size })},
	{Field: FieldDate, Label: "Date", Header: HeaderDate, Kind: KindTemporal, Extended: true,
		accessors: temporal(func(r Record) time.Time { return r.Date })},
	{Field: FieldID, Label: "ID", Header: HeaderID, Kind: KindCategorical, Extended: true,
		accessors: textual(func(r Record) string { return r.ID })},
}

var fieldIndex = func() map[Field]FieldInfo {
	idx := make(map[Field]FieldInfo, len(fieldTable))
	for _, fi := range fieldTable {
		idx[fi.Field] = fi
	}
	return idx
}()

// Lookup returns the metadata entry for f.
func Lookup(f Field) (FieldInfo, bool) {
	fi, ok := fieldIndex[f]
	return fi, ok
}

// Fields returns the metadata table in display order. Extended fields are
// included only when extended is true.
func Fields(extended bool) []FieldInfo {
	out := make([]FieldInfo, 0, len(fieldTable))
	for _, fi := range fieldTable {
		if fi.Extended && !extended {
			continue
		}
		out = append(out, fi)
	}
	return out
}

// IsSortable reports whether records can be ordered by f.
func IsSortable(f Field) bool {
	return f == FieldPrice || f == FieldSell || f == FieldSize
}

// parseNumber reads s as a finite decimal number. Blank text reads as zero.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
