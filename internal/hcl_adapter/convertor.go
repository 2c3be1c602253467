package hcl_adapter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// valueToToken renders a deck attribute value the way it would be written on
// the command line: strings as-is, numbers in shortest form, and lists or
// tuples of scalars joined with commas.
func valueToToken(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("value is null")
	}
	if !v.IsWhollyKnown() {
		return "", fmt.Errorf("value is not known")
	}

	ty := v.Type()
	if ty.IsTupleType() || ty.IsListType() {
		parts := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			s, err := scalarToToken(elem)
			if err != nil {
				return "", fmt.Errorf("element %d: %w", len(parts), err)
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), nil
	}
	return scalarToToken(v)
}

func scalarToToken(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("value is null")
	}
	switch v.Type() {
	case cty.String:
		return v.AsString(), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			var i int64
			if err := gocty.FromCtyValue(v, &i); err != nil {
				return "", fmt.Errorf("integer out of range: %w", err)
			}
			return strconv.FormatInt(i, 10), nil
		}
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return "", err
		}
		return strconv.FormatFloat(f, 'g', -1, 64), nil
	case cty.Bool:
		return strconv.FormatBool(v.True()), nil
	default:
		return "", fmt.Errorf("unsupported type %s", v.Type().FriendlyName())
	}
}
