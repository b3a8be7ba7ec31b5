// Package schema describes, as plain data, which values a user has to choose
// to instantiate the parametrized groups and locations of a template.
//
// A Descriptor lists one Field per named parameter. Renderers (the CLI, an
// editor, a project file decoder) consume descriptors generically.
package schema

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// FieldKind is the value shape of a field.
type FieldKind int

const (
	// Integer is a free non-negative integer with a default.
	Integer FieldKind = iota
	// Range is an integer within [Min, Max].
	Range
	// Choice is one of Choices.
	Choice
)

func (k FieldKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Range:
		return "range"
	case Choice:
		return "choice"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k FieldKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// NodeKind tells what a descriptor instantiates.
type NodeKind string

const (
	GroupNode    NodeKind = "group"
	LocationNode NodeKind = "location"
)

// Field is a single user-chosen value.
type Field struct {
	Name    string    `json:"name" yaml:"name"`
	Kind    FieldKind `json:"kind" yaml:"kind"`
	Min     int       `json:"min,omitempty" yaml:"min,omitempty"`
	Max     int       `json:"max,omitempty" yaml:"max,omitempty"`
	Choices []string  `json:"choices,omitempty" yaml:"choices,omitempty"`
	Default string    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Descriptor is the schema of one parametrized group or location.
type Descriptor struct {
	// Path names the node from its root group, e.g. "Counter/Cnt/Value".
	Path   string   `json:"path" yaml:"path"`
	Node   NodeKind `json:"node" yaml:"node"`
	Fields []Field  `json:"fields" yaml:"fields"`
}

// Field returns the field called name, or nil.
func (d *Descriptor) Field(name string) *Field {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i]
		}
	}
	return nil
}

// Validate checks every supplied value against its field. Names without a
// field are rejected; fields without a value are left to the caller.
func (d *Descriptor) Validate(values map[string]string) error {
	_, err := d.Normalize(values)
	return err
}

// Normalize validates values like Validate and returns a copy holding each
// value in canonical form, so "03" and "3" name the same point.
func (d *Descriptor) Normalize(values map[string]string) (map[string]string, error) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make(map[string]string, len(values))
	for _, name := range names {
		f := d.Field(name)
		if f == nil {
			return nil, fmt.Errorf("%s: unknown parameter %q", d.Path, name)
		}
		v, err := f.Normalize(values[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Path, err)
		}
		out[name] = v
	}
	return out, nil
}

// Validate checks a single value.
func (f *Field) Validate(v string) error {
	_, err := f.Normalize(v)
	return err
}

// Normalize checks v and returns it in canonical form: integers lose their
// leading zeros, choices are returned as is.
func (f *Field) Normalize(v string) (string, error) {
	switch f.Kind {
	case Choice:
		if !slices.Contains(f.Choices, v) {
			return "", fmt.Errorf("parameter %s: %q is not one of %s", f.Name, v, strings.Join(f.Choices, ", "))
		}
		return v, nil
	default:
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || strings.HasPrefix(v, "+") {
			return "", fmt.Errorf("parameter %s: %q is not a non-negative integer", f.Name, v)
		}
		if f.Kind == Range && (n < f.Min || n > f.Max) {
			return "", fmt.Errorf("parameter %s: %d is out of range %d..%d", f.Name, n, f.Min, f.Max)
		}
		return strconv.Itoa(n), nil
	}
}

// String renders the field's domain, e.g. "n: 0..7".
func (f *Field) String() string {
	switch f.Kind {
	case Range:
		return fmt.Sprintf("%s: %d..%d", f.Name, f.Min, f.Max)
	case Choice:
		return fmt.Sprintf("%s: {%s}", f.Name, strings.Join(f.Choices, ","))
	default:
		return fmt.Sprintf("%s: integer (default %s)", f.Name, f.Default)
	}
}
