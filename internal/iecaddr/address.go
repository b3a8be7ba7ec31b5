// internal/iecaddr/address.go
package iecaddr

import (
	"slices"
	"strconv"
	"strings"

	"github.com/nucleron/yaplc/internal/model"
)

const (
	prefix    = "%"
	varPrefix = "_"
	sep       = "."
	varSep    = "_"
)

// Address is the structured representation of a located variable.
type Address struct {
	Type     model.LocationType
	DataType model.DataType
	Path     []string
}

// New builds an address from a location code pair and path segments.
func New(t model.LocationType, d model.DataType, path ...string) *Address {
	return &Address{Type: t, DataType: d, Path: path}
}

// Code returns the two-letter location code, e.g. "IX".
func (a *Address) Code() string {
	return string([]byte{byte(a.Type), byte(a.DataType)})
}

// String serializes the address into its canonical form, e.g. "%IX1.3".
func (a *Address) String() string {
	if a == nil {
		return ""
	}
	return prefix + a.Code() + strings.Join(a.Path, sep)
}

// VarName returns the identifier used for the variable, e.g. "_IX1_3".
func (a *Address) VarName() string {
	if a == nil {
		return ""
	}
	return varPrefix + a.Code() + strings.Join(a.Path, varSep)
}

// Location returns the address without its type letter, e.g. "X1.3".
func (a *Address) Location() string {
	if a == nil {
		return ""
	}
	return string(a.DataType) + strings.Join(a.Path, sep)
}

// Equal checks for deep equality between two Address pointers.
func (a *Address) Equal(other *Address) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.Type == other.Type && a.DataType == other.DataType && slices.Equal(a.Path, other.Path)
}

// Compare orders addresses by code and then segment by segment. Numeric
// segments compare by value, so 2 sorts before 10.
func Compare(a, b *Address) int {
	if c := strings.Compare(a.Code(), b.Code()); c != 0 {
		return c
	}
	for i := 0; i < len(a.Path) && i < len(b.Path); i++ {
		if c := compareSegment(a.Path[i], b.Path[i]); c != 0 {
			return c
		}
	}
	return len(a.Path) - len(b.Path)
}

func compareSegment(x, y string) int {
	nx, errX := strconv.Atoi(x)
	ny, errY := strconv.Atoi(y)
	switch {
	case errX == nil && errY == nil:
		return nx - ny
	case errX == nil:
		return -1
	case errY == nil:
		return 1
	default:
		return strings.Compare(x, y)
	}
}
