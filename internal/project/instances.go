package project

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/nucleron/yaplc/internal/locations"
	"github.com/nucleron/yaplc/internal/model"
	"github.com/nucleron/yaplc/internal/schema"
)

// Instances converts the project's group and location blocks into instances
// of tpl. Values are decoded against the schema of the node they target, so
// errors point at the offending expression in the project file.
func (p *Project) Instances(tpl *model.Template) ([]*locations.Instance, error) {
	var out []*locations.Instance
	for _, gb := range p.groups {
		inst, err := groupInstance(tpl, nil, gb)
		if err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

func groupInstance(tpl *model.Template, parent []string, gb *groupBlock) (*locations.Instance, error) {
	names := append(append([]string(nil), parent...), gb.Name)
	g := tpl.GroupPath(names...)
	if g == nil {
		// unknown names are reported by the tree builder with suggestions
		return &locations.Instance{Name: gb.Name}, nil
	}

	inst := &locations.Instance{Name: gb.Name}
	desc := schema.ForGroup(tpl, g)
	values, err := decodeValues(desc, schema.GroupPath(tpl, g), gb.Values)
	if err != nil {
		return nil, err
	}
	inst.Values = values

	for _, child := range gb.Groups {
		ci, err := groupInstance(tpl, names, child)
		if err != nil {
			return nil, err
		}
		inst.Children = append(inst.Children, ci)
	}
	for _, lb := range gb.Locations {
		li := &locations.Instance{Name: lb.Name}
		if loc := g.Location(lb.Name); loc != nil {
			path := schema.GroupPath(tpl, g) + schema.PathSep + loc.Name()
			li.Values, err = decodeValues(schema.ForLocation(tpl, loc), path, lb.Values)
			if err != nil {
				return nil, err
			}
		}
		inst.Children = append(inst.Children, li)
	}
	return inst, nil
}

// decodeValues evaluates a values expression. desc is nil for nodes that are
// not parametrized, which then accept no values.
func decodeValues(desc *schema.Descriptor, path string, expr hcl.Expression) (map[string]string, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", path, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if desc == nil {
		return nil, fmt.Errorf("%s: %s is not parametrized, values are not allowed", expr.Range(), path)
	}
	values, err := desc.Decode(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", expr.Range(), err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}
