package schema

import (
	"strings"

	"github.com/nucleron/yaplc/internal/model"
)

// PathSep joins node names in Descriptor.Path.
const PathSep = "/"

// FromParameter maps a named parameter to a field. Number becomes an Integer
// defaulting to the declared value, Range a bounded integer and Items a
// Choice.
func FromParameter(p model.Parameter) Field {
	f := Field{Name: p.Name}
	switch p.Kind {
	case model.Range:
		f.Kind, f.Min, f.Max = Range, p.Min, p.Max
	case model.Items:
		f.Kind, f.Choices = Choice, append([]string(nil), p.Items...)
	default:
		f.Kind, f.Default = Integer, p.Value
	}
	return f
}

// ForGroup returns the descriptor of g, or nil when g is not parametrized.
func ForGroup(tpl *model.Template, g *model.Group) *Descriptor {
	if !g.Parametrized() {
		return nil
	}
	return &Descriptor{
		Path:   GroupPath(tpl, g),
		Node:   GroupNode,
		Fields: []Field{FromParameter(g.ID)},
	}
}

// ForLocation returns the descriptor of loc, or nil when loc is not
// parametrized. A name repeated across parameters yields one field.
func ForLocation(tpl *model.Template, loc *model.Location) *Descriptor {
	if !loc.Parametrized() {
		return nil
	}
	d := &Descriptor{
		Path: GroupPath(tpl, tpl.Get(loc.Group())) + PathSep + loc.Name(),
		Node: LocationNode,
	}
	for _, p := range loc.Params {
		if p.Named() && d.Field(p.Name) == nil {
			d.Fields = append(d.Fields, FromParameter(p))
		}
	}
	return d
}

// Build returns the descriptors of every parametrized group and location of
// the template, depth-first in declaration order.
func Build(tpl *model.Template) []*Descriptor {
	var out []*Descriptor
	tpl.Walk(func(g *model.Group, _ int) bool {
		if d := ForGroup(tpl, g); d != nil {
			out = append(out, d)
		}
		for _, loc := range g.Locations() {
			if d := ForLocation(tpl, loc); d != nil {
				out = append(out, d)
			}
		}
		return true
	})
	return out
}

// GroupPath names g by its lineage, e.g. "Counter/Cnt".
func GroupPath(tpl *model.Template, g *model.Group) string {
	lineage := tpl.Lineage(g)
	names := make([]string, len(lineage))
	for i, l := range lineage {
		names[i] = l.Name
	}
	return strings.Join(names, PathSep)
}
