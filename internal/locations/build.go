package locations

import (
	"context"
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/expand"
	"github.com/nucleron/yaplc/internal/iecaddr"
	"github.com/nucleron/yaplc/internal/model"
	"github.com/nucleron/yaplc/internal/schema"
	"github.com/nucleron/yaplc/internal/suggest"
)

// DefaultName is the root node name used when Options.Name is empty.
const DefaultName = "YAPLC"

// Options configures the root of the tree.
type Options struct {
	// Name of the configuration node.
	Name string
	// BaseLocation is the location of the configuration node in the
	// project, rendered as "0.1.x".
	BaseLocation []int
}

// Build flattens tpl into a variable tree. instances select and
// parametrize the template's groups and locations, starting from the root
// groups.
func Build(ctx context.Context, tpl *model.Template, instances []*Instance, opts Options) (*Node, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building variable tree.", "source", tpl.Source, "instances", len(instances))

	b := &builder{tpl: tpl}
	children, err := b.content(nil, nil, nil, instances)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = DefaultName
	}
	base := make([]string, len(opts.BaseLocation))
	for i, v := range opts.BaseLocation {
		base[i] = strconv.Itoa(v)
	}

	root := &Node{
		Name:     name,
		Kind:     ConfNode,
		Location: strings.Join(base, ".") + ".x",
		Children: children,
	}
	logger.Info("Variable tree built.", "variables", len(root.Variables()))
	return root, nil
}

type builder struct {
	tpl *model.Template
}

// content builds the nodes below g (the root groups when g is nil). path is
// g's id path and values the group parameter values chosen on the way down.
func (b *builder) content(g *model.Group, path []string, values map[string]string, insts []*Instance) ([]*Node, error) {
	var (
		groups []*model.Group
		locs   []*model.Location
	)
	if g == nil {
		groups = b.tpl.Groups()
	} else {
		groups = b.tpl.Children(g)
		locs = g.Locations()
	}

	byGroup := make(map[*model.Group][]*Instance)
	byLoc := make(map[*model.Location][]*Instance)
	for _, inst := range insts {
		if sg := findGroup(groups, inst.Name); sg != nil {
			byGroup[sg] = append(byGroup[sg], inst)
			continue
		}
		if l := findLocation(locs, inst.Name); l != nil {
			byLoc[l] = append(byLoc[l], inst)
			continue
		}
		return nil, fmt.Errorf("%s: unknown group or location %q%s",
			b.scopeName(g), inst.Name, suggest.Hint(inst.Name, scopeNames(groups, locs)))
	}

	var nodes []*Node
	for _, sg := range groups {
		gnodes, err := b.group(sg, path, values, byGroup[sg])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, gnodes...)
	}
	for _, l := range locs {
		vars, err := b.location(g, l, path, values, byLoc[l])
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, vars...)
	}
	return nodes, nil
}

func (b *builder) group(g *model.Group, parentPath []string, values map[string]string, insts []*Instance) ([]*Node, error) {
	if !g.Parametrized() {
		// every instance naming a static group contributes to all of its nodes
		var merged []*Instance
		for _, inst := range insts {
			if len(inst.Values) > 0 {
				return nil, fmt.Errorf("%s: group is not parametrized, values are not allowed", b.groupPath(g))
			}
			merged = append(merged, inst.Children...)
		}
		var nodes []*Node
		for _, v := range g.ID.Values() {
			n, err := b.groupNode(g, parentPath, v, values, merged)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, n)
		}
		return nodes, nil
	}

	desc := schema.ForGroup(b.tpl, g)
	var nodes []*Node
	for _, inst := range insts {
		vals, err := desc.Normalize(inst.Values)
		if err != nil {
			return nil, err
		}
		v, ok := vals[g.ID.Name]
		if !ok {
			if g.ID.Len() != 1 {
				return nil, fmt.Errorf("%s: missing value for parameter %s", desc.Path, g.ID.Name)
			}
			v = g.ID.Values()[0]
		}
		chosen := maps.Clone(values)
		if chosen == nil {
			chosen = make(map[string]string)
		}
		chosen[g.ID.Name] = v

		n, err := b.groupNode(g, parentPath, v, chosen, inst.Children)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (b *builder) groupNode(g *model.Group, parentPath []string, id string, values map[string]string, insts []*Instance) (*Node, error) {
	path := append(append([]string(nil), parentPath...), id)
	children, err := b.content(g, path, values, insts)
	if err != nil {
		return nil, err
	}
	return &Node{
		Name:     g.Name,
		Kind:     Group,
		Location: strings.Join(path, "."),
		Children: children,
	}, nil
}

func (b *builder) location(g *model.Group, l *model.Location, path []string, values map[string]string, insts []*Instance) ([]*Node, error) {
	// A location shares its parent's id unless it or its group is unique.
	prefix := path
	if !g.Unique && !l.Unique && b.tpl.Parent(g) != nil {
		prefix = path[:len(path)-1]
	}

	if !l.Parametrized() {
		if len(insts) > 0 {
			return nil, fmt.Errorf("%s/%s: location is not parametrized", b.groupPath(g), l.Name())
		}
		return b.variables(g, l, prefix, values)
	}

	desc := schema.ForLocation(b.tpl, l)
	var nodes []*Node
	for _, inst := range insts {
		if len(inst.Children) > 0 {
			return nil, fmt.Errorf("%s: locations cannot contain instances", desc.Path)
		}
		vals, err := desc.Normalize(inst.Values)
		if err != nil {
			return nil, err
		}
		fixed := maps.Clone(values)
		if fixed == nil {
			fixed = make(map[string]string)
		}
		maps.Copy(fixed, vals)
		vars, err := b.variables(g, l, prefix, fixed)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, vars...)
	}
	return nodes, nil
}

func (b *builder) variables(g *model.Group, l *model.Location, prefix []string, fixed map[string]string) ([]*Node, error) {
	tuples, err := expand.Join(l.Params, fixed)
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", b.groupPath(g), l.Name(), err)
	}
	nodes := make([]*Node, 0, len(tuples))
	for _, tuple := range tuples {
		segs := append(append([]string(nil), prefix...), tuple...)
		addr := iecaddr.New(l.Type, l.DataType, segs...)
		nodes = append(nodes, &Node{
			Name:        addr.String(),
			Kind:        KindOf(l.Type),
			Size:        l.DataType.Size(),
			IECType:     l.DataType.IECType(),
			VarName:     addr.VarName(),
			Location:    addr.Location(),
			Description: l.Description,
		})
	}
	return nodes, nil
}

func (b *builder) groupPath(g *model.Group) string {
	return schema.GroupPath(b.tpl, g)
}

func (b *builder) scopeName(g *model.Group) string {
	if g == nil {
		return "template"
	}
	return b.groupPath(g)
}

func findGroup(groups []*model.Group, name string) *model.Group {
	for _, g := range groups {
		if g.Name == name {
			return g
		}
	}
	return nil
}

func findLocation(locs []*model.Location, name string) *model.Location {
	for _, l := range locs {
		if l.Matches(name) {
			return l
		}
	}
	return nil
}

func scopeNames(groups []*model.Group, locs []*model.Location) []string {
	names := make([]string, 0, len(groups)+len(locs))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	for _, l := range locs {
		names = append(names, l.Name())
	}
	return names
}
