package locations

import (
	"fmt"

	"github.com/nucleron/yaplc/internal/model"
)

// Kind classifies a Node.
type Kind int

const (
	ConfNode Kind = iota
	Group
	VarInput
	VarOutput
	VarMemory
)

var kindNames = [...]string{
	ConfNode:  "confnode",
	Group:     "group",
	VarInput:  "input",
	VarOutput: "output",
	VarMemory: "memory",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a kind name written by MarshalText.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown node kind %q", text)
}

// IsVariable reports whether the kind is one of the variable kinds.
func (k Kind) IsVariable() bool {
	return k == VarInput || k == VarOutput || k == VarMemory
}

// KindOf maps a location type to its variable kind.
func KindOf(t model.LocationType) Kind {
	switch t {
	case model.Output:
		return VarOutput
	case model.Memory:
		return VarMemory
	default:
		return VarInput
	}
}

// Node is one entry of the variable tree.
type Node struct {
	Name        string  `json:"name" yaml:"name"`
	Kind        Kind    `json:"type" yaml:"type"`
	Size        int     `json:"size" yaml:"size"`
	IECType     string  `json:"IEC_type" yaml:"IEC_type"`
	VarName     string  `json:"var_name" yaml:"var_name"`
	Location    string  `json:"location" yaml:"location"`
	Description string  `json:"description" yaml:"description"`
	Children    []*Node `json:"children" yaml:"children"`
}

// Walk visits n and its descendants depth-first.
func (n *Node) Walk(fn func(n *Node, depth int)) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int), depth int) {
	fn(n, depth)
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Variables returns every variable node below n, depth-first.
func (n *Node) Variables() []*Node {
	var out []*Node
	n.Walk(func(c *Node, _ int) {
		if c.Kind.IsVariable() {
			out = append(out, c)
		}
	})
	return out
}

// Instance is a user's choice for one group or location: which node, by
// name within its parent, and the values of its named parameters.
type Instance struct {
	Name     string            `json:"name" yaml:"name"`
	Values   map[string]string `json:"values,omitempty" yaml:"values,omitempty"`
	Children []*Instance       `json:"children,omitempty" yaml:"children,omitempty"`
}
