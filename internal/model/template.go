// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The YAPLC Authors
package model

import (
	"fmt"
)

// Template owns every group of one parsed template file. Groups are stored
// in declaration order and linked by GroupID handles.
type Template struct {
	// Source is the path the template was read from, if any.
	Source string

	groups []*Group
	roots  []GroupID
}

// NewTemplate returns an empty template.
func NewTemplate(source string) *Template {
	return &Template{Source: source}
}

// AddGroup attaches g under parent (NoGroup for a root group) and returns
// its handle. It fails when g collides with a unique group: a root-level UGRP
// of the same name, or a same-named sibling when either of the two is unique.
func (t *Template) AddGroup(g *Group, parent GroupID) (GroupID, error) {
	if g.handle != NoGroup {
		return NoGroup, fmt.Errorf("group %s is already attached", g.Name)
	}
	if parent != NoGroup && t.Get(parent) == nil {
		return NoGroup, fmt.Errorf("unknown parent group handle %d", parent)
	}

	for _, id := range t.roots {
		if r := t.groups[id]; r.Unique && r.Name == g.Name {
			return NoGroup, fmt.Errorf("unique group %s is already defined", g.Name)
		}
	}
	for _, id := range t.siblings(parent) {
		if s := t.groups[id]; s.Name == g.Name && (s.Unique || g.Unique) {
			return NoGroup, fmt.Errorf("unique group %s is already defined in this scope", g.Name)
		}
	}

	g.handle = GroupID(len(t.groups))
	g.parent = parent
	t.groups = append(t.groups, g)
	if parent == NoGroup {
		t.roots = append(t.roots, g.handle)
	} else {
		p := t.groups[parent]
		p.children = append(p.children, g.handle)
	}
	return g.handle, nil
}

// AddLocation appends loc to the group it was created for.
func (t *Template) AddLocation(loc *Location) error {
	g := t.Get(loc.group)
	if g == nil {
		return fmt.Errorf("location %s is not inside a group", loc.Code())
	}
	g.locations = append(g.locations, loc)
	return nil
}

// Get returns the group with the given handle, or nil.
func (t *Template) Get(id GroupID) *Group {
	if id < 0 || int(id) >= len(t.groups) {
		return nil
	}
	return t.groups[id]
}

// Groups returns the root groups in registration order.
func (t *Template) Groups() []*Group {
	out := make([]*Group, 0, len(t.roots))
	for _, id := range t.roots {
		out = append(out, t.groups[id])
	}
	return out
}

// Len returns the total number of groups at every depth.
func (t *Template) Len() int {
	return len(t.groups)
}

// Group looks a group up by name. Root groups are matched first, then every
// root's descendants are searched depth-first in declaration order. With
// duplicate names the first group found wins; use GroupPath to be exact.
func (t *Template) Group(name string) *Group {
	for _, id := range t.roots {
		if g := t.groups[id]; g.Name == name {
			return g
		}
	}
	for _, id := range t.roots {
		if g := t.find(id, name); g != nil {
			return g
		}
	}
	return nil
}

func (t *Template) find(id GroupID, name string) *Group {
	for _, c := range t.groups[id].children {
		if g := t.groups[c]; g.Name == name {
			return g
		}
		if g := t.find(c, name); g != nil {
			return g
		}
	}
	return nil
}

// GroupPath follows names from the roots down, e.g. ("Counter", "Cnt").
func (t *Template) GroupPath(names ...string) *Group {
	if len(names) == 0 {
		return nil
	}
	scope := t.roots
	var found *Group
	for _, name := range names {
		found = nil
		for _, id := range scope {
			if g := t.groups[id]; g.Name == name {
				found = g
				break
			}
		}
		if found == nil {
			return nil
		}
		scope = found.children
	}
	return found
}

// Parent returns the enclosing group of g, or nil for a root group.
func (t *Template) Parent(g *Group) *Group {
	return t.Get(g.parent)
}

// Children returns the direct subgroups of g in declaration order.
func (t *Template) Children(g *Group) []*Group {
	out := make([]*Group, 0, len(g.children))
	for _, id := range g.children {
		out = append(out, t.groups[id])
	}
	return out
}

// Lineage returns the chain of groups from the root down to g, inclusive.
func (t *Template) Lineage(g *Group) []*Group {
	var chain []*Group
	for cur := g; cur != nil; cur = t.Parent(cur) {
		chain = append(chain, cur)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// HasParametrized reports whether anything below g, at any depth, is
// parametrized: a subgroup id or a location parameter.
func (t *Template) HasParametrized(g *Group) bool {
	for _, l := range g.locations {
		if l.Parametrized() {
			return true
		}
	}
	for _, id := range g.children {
		c := t.groups[id]
		if c.Parametrized() || t.HasParametrized(c) {
			return true
		}
	}
	return false
}

// Walk visits every group depth-first in declaration order. Returning false
// from fn skips the group's subtree.
func (t *Template) Walk(fn func(g *Group, depth int) bool) {
	for _, id := range t.roots {
		t.walk(id, 0, fn)
	}
}

func (t *Template) walk(id GroupID, depth int, fn func(*Group, int) bool) {
	g := t.groups[id]
	if !fn(g, depth) {
		return
	}
	for _, c := range g.children {
		t.walk(c, depth+1, fn)
	}
}

func (t *Template) siblings(parent GroupID) []GroupID {
	if parent == NoGroup {
		return t.roots
	}
	return t.groups[parent].children
}
