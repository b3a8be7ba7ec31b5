// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The YAPLC Authors
//
// This file defines Location, the leaf declaration of a template, and the
// two-letter type codes used to declare it.
package model

import (
	"fmt"
	"strings"

	"github.com/nucleron/yaplc/internal/lexer"
)

// LocationType is the first letter of a location code.
type LocationType byte

const (
	Input  LocationType = 'I'
	Output LocationType = 'Q'
	Memory LocationType = 'M'
)

func (t LocationType) String() string {
	switch t {
	case Input:
		return "input"
	case Output:
		return "output"
	case Memory:
		return "memory"
	default:
		return fmt.Sprintf("LocationType(%q)", byte(t))
	}
}

// DataType is the second letter of a location code.
type DataType byte

const (
	Bit        DataType = 'X'
	Byte       DataType = 'B'
	Word       DataType = 'W'
	DoubleWord DataType = 'D'
	LongWord   DataType = 'L'
	String     DataType = 'S'
)

var dataTypes = map[DataType]struct {
	iec  string
	size int
}{
	Bit:        {"BOOL", 1},
	Byte:       {"BYTE", 8},
	Word:       {"WORD", 16},
	DoubleWord: {"DWORD", 32},
	LongWord:   {"LWORD", 64},
	String:     {"STRING", 0},
}

// IECType returns the IEC 61131-3 elementary type name for the data type.
func (d DataType) IECType() string {
	return dataTypes[d].iec
}

// Size returns the width in bits. Strings have no fixed width and report 0.
func (d DataType) Size() int {
	return dataTypes[d].size
}

func (d DataType) String() string {
	if iec := d.IECType(); iec != "" {
		return iec
	}
	return fmt.Sprintf("DataType(%q)", byte(d))
}

// ParseCode splits a two-letter location code such as "IX" or "QW".
func ParseCode(code string) (LocationType, DataType, error) {
	if len(code) != 2 {
		return 0, 0, fmt.Errorf("wrong location type specified %q, expected two letters", code)
	}
	t, d := LocationType(code[0]), DataType(code[1])
	switch t {
	case Input, Output, Memory:
	default:
		return 0, 0, fmt.Errorf("wrong location type %q in %q, expected one of I, M, Q", code[0], code)
	}
	if _, ok := dataTypes[d]; !ok {
		return 0, 0, fmt.Errorf("wrong data type %q in %q, expected one of X, B, W, D, L, S", code[1], code)
	}
	return t, d, nil
}

// Location is a single declared I/O point.
type Location struct {
	Type        LocationType
	DataType    DataType
	Params      []Parameter
	Description string
	Unique      bool

	group GroupID
}

// NewLocation builds a location from its code and the remaining tokens of a
// LOC or ULOC line. Tokens are read left to right: "[name:value]" is a named
// parameter, a quoted token is the descriptive name, a digit string is a
// positional number and anything else a positional range or item list.
func NewLocation(code string, unique bool, group GroupID, args ...string) (*Location, error) {
	t, d, err := ParseCode(code)
	if err != nil {
		return nil, err
	}
	loc := &Location{Type: t, DataType: d, Unique: unique, group: group}

	for _, arg := range args {
		switch {
		case lexer.IsBracketed(arg):
			p, err := ParseNamedParameter(lexer.Unbracket(arg))
			if err != nil {
				return nil, err
			}
			loc.Params = append(loc.Params, p)

		case lexer.IsQuoted(arg):
			if loc.Description != "" {
				return nil, fmt.Errorf("location %s has more than one descriptive name", code)
			}
			name := lexer.Unquote(arg)
			if err := ValidateName(name); err != nil {
				return nil, fmt.Errorf("invalid location name: %w", err)
			}
			loc.Description = name

		case isDigits(arg):
			loc.Params = append(loc.Params, Parameter{Kind: Number, Value: arg})

		default:
			p, err := ParseParameter("", arg)
			if err != nil {
				return nil, err
			}
			loc.Params = append(loc.Params, p)
		}
	}

	if loc.Parametrized() && loc.Description == "" {
		return nil, fmt.Errorf("parametrized locations requires descriptive name")
	}
	return loc, nil
}

// Code returns the two-letter location code, e.g. "IX".
func (l *Location) Code() string {
	return string([]byte{byte(l.Type), byte(l.DataType)})
}

// Name returns the descriptive name, or the code when there is none.
func (l *Location) Name() string {
	if l.Description != "" {
		return l.Description
	}
	return l.Code()
}

// Parametrized reports whether any parameter is named.
func (l *Location) Parametrized() bool {
	for _, p := range l.Params {
		if p.Named() {
			return true
		}
	}
	return false
}

// Group returns the handle of the group the location was declared in.
func (l *Location) Group() GroupID {
	return l.group
}

// Matches reports whether name selects this location, by code or by
// descriptive name.
func (l *Location) Matches(name string) bool {
	return name == l.Code() || (l.Description != "" && name == l.Description)
}

func (l *Location) String() string {
	var b strings.Builder
	if l.Unique {
		b.WriteString("ULOC ")
	} else {
		b.WriteString("LOC ")
	}
	b.WriteString(l.Code())
	if l.Description != "" {
		fmt.Fprintf(&b, " %q", l.Description)
	}
	for _, p := range l.Params {
		b.WriteByte(' ')
		b.WriteString(p.String())
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
