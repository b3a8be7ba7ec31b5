// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The YAPLC Authors
package model

import (
	"fmt"

	"github.com/nucleron/yaplc/internal/lexer"
)

// GroupID is a handle to a group inside its Template.
type GroupID int

// NoGroup is the parent handle of root groups.
const NoGroup GroupID = -1

// Group is a named container of locations and subgroups. Its structural
// links are handles into the owning Template; use Template.Parent and
// Template.Children to follow them.
type Group struct {
	Name   string
	ID     Parameter
	Unique bool

	handle    GroupID
	parent    GroupID
	children  []GroupID
	locations []*Location
}

// NewGroup builds a detached group from the tokens of a GRP or UGRP line.
// idToken is either a plain parameter ("1", "0..3") or a named one
// ("[n:0..3]").
func NewGroup(name, idToken string, unique bool) (*Group, error) {
	name = lexer.Unquote(name)
	if err := ValidateName(name); err != nil {
		return nil, fmt.Errorf("invalid group name: %w", err)
	}

	var (
		id  Parameter
		err error
	)
	if lexer.IsBracketed(idToken) {
		id, err = ParseNamedParameter(lexer.Unbracket(idToken))
	} else {
		id, err = ParseParameter("", idToken)
	}
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", name, err)
	}

	return &Group{
		Name:   name,
		ID:     id,
		Unique: unique,
		handle: NoGroup,
		parent: NoGroup,
	}, nil
}

// Handle returns the group's handle in its template, or NoGroup while the
// group is detached.
func (g *Group) Handle() GroupID {
	return g.handle
}

// Parametrized reports whether the group id is a named parameter.
func (g *Group) Parametrized() bool {
	return g.ID.Named()
}

// Locations returns the locations declared directly in the group, in
// declaration order.
func (g *Group) Locations() []*Location {
	return append([]*Location(nil), g.locations...)
}

// Location returns the first location matching name by code or descriptive
// name, or nil.
func (g *Group) Location(name string) *Location {
	for _, l := range g.locations {
		if l.Matches(name) {
			return l
		}
	}
	return nil
}

func (g *Group) String() string {
	kw := "GRP"
	if g.Unique {
		kw = "UGRP"
	}
	return fmt.Sprintf("%s %s %s", kw, g.Name, g.ID.String())
}
