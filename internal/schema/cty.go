package schema

import (
	"fmt"
	"math/big"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// CtyType returns the cty type a value for the field is expected to have:
// Number for integer fields, String for choices.
func (f *Field) CtyType() cty.Type {
	if f.Kind == Choice {
		return cty.String
	}
	return cty.Number
}

// ImpliedType returns the object type with one attribute per field.
func (d *Descriptor) ImpliedType() cty.Type {
	attrs := make(map[string]cty.Type, len(d.Fields))
	for i := range d.Fields {
		attrs[d.Fields[i].Name] = d.Fields[i].CtyType()
	}
	return cty.Object(attrs)
}

// Decode converts an object or map value, typically the result of an HCL
// expression, into validated, canonical string values. A null value decodes
// to an empty map.
func (d *Descriptor) Decode(val cty.Value) (map[string]string, error) {
	out := make(map[string]string)
	if val.IsNull() {
		return out, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("%s: values must be known", d.Path)
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("%s: values must be an object, got %s", d.Path, ty.FriendlyName())
	}

	for it := val.ElementIterator(); it.Next(); {
		key, elem := it.Element()
		name := key.AsString()
		s, err := ctyToString(elem)
		if err != nil {
			return nil, fmt.Errorf("%s: parameter %s: %w", d.Path, name, err)
		}
		out[name] = s
	}

	return d.Normalize(out)
}

func ctyToString(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", fmt.Errorf("value is null")
	}
	if v.Type() == cty.Number {
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			return "", fmt.Errorf("%s is not a whole number", bf.Text('g', -1))
		}
		i, _ := bf.Int(new(big.Int))
		return i.String(), nil
	}
	sv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("cannot convert %s to string: %w", v.Type().FriendlyName(), err)
	}
	return sv.AsString(), nil
}
