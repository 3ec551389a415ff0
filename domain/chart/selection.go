package chart

import (
	"fmt"

	"prodstats/domain/core"
	"prodstats/domain/product"
)

// AllowedX returns the fields offered on the category axis. Pie charts
// only group by categorical fields.
func AllowedX(t Type, extended bool) []product.FieldInfo {
	fields := product.Fields(extended)
	if t != TypePie {
		return fields
	}
	out := fields[:0:0]
	for _, fi := range fields {
		if fi.Kind == product.KindCategorical {
			out = append(out, fi)
		}
	}
	return out
}

// AllowedY returns the fields offered on the value axis: numeric fields,
// plus categorical ones when the extended field set is active.
func AllowedY(extended bool) []product.FieldInfo {
	var out []product.FieldInfo
	for _, fi := range product.Fields(extended) {
		switch fi.Kind {
		case product.KindNumeric:
			out = append(out, fi)
		case product.KindCategorical:
			if extended {
				out = append(out, fi)
			}
		}
	}
	return out
}

// Validate checks the selection against the selector rules.
func (s AxisSelection) Validate(extended bool) error {
	if _, err := ParseType(string(s.Type)); err != nil {
		return err
	}
	if _, ok := product.Lookup(s.X); !ok {
		return core.NewUnknownFieldError(string(s.X))
	}
	if _, ok := product.Lookup(s.Y); !ok {
		return core.NewUnknownFieldError(string(s.Y))
	}
	if !contains(AllowedX(s.Type, extended), s.X) {
		return core.NewSelectionError(fmt.Sprintf("%s cannot be used as the %s chart category", s.X, s.Type))
	}
	if !contains(AllowedY(extended), s.Y) {
		return core.NewSelectionError(fmt.Sprintf("%s cannot be used as the value axis", s.Y))
	}
	return nil
}

func contains(fields []product.FieldInfo, f product.Field) bool {
	for _, fi := range fields {
		if fi.Field == f {
			return true
		}
	}
	return false
}
