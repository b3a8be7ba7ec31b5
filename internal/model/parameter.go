// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The YAPLC Authors
//
// This file defines Parameter, the value domain attached to groups and
// locations, and the parsing of its textual forms:
//
//	5        a single Number
//	0..7     an inclusive Range
//	a,b,c    a list of Items
//	n:0..7   any of the above, named n
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// ParamKind is the shape of a parameter's value domain.
type ParamKind int

const (
	// Number is a single fixed value.
	Number ParamKind = iota
	// Range is every integer from Min to Max, both included.
	Range
	// Items is an ordered list of string values.
	Items
)

func (k ParamKind) String() string {
	switch k {
	case Number:
		return "number"
	case Range:
		return "range"
	case Items:
		return "items"
	default:
		return fmt.Sprintf("ParamKind(%d)", int(k))
	}
}

// MaxRangeLen bounds the number of values a Range may hold.
const MaxRangeLen = 1 << 16

const (
	rangeSep = ".."
	itemSep  = ","
	nameSep  = ":"
)

// Parameter describes the value domain of a single parameter. An empty Name
// marks a positional parameter.
type Parameter struct {
	Name  string
	Kind  ParamKind
	Value string   // Number
	Min   int      // Range
	Max   int      // Range
	Items []string // Items, in source order, duplicates kept
}

// ParseParameter parses a parameter value body. A body containing ".." is a
// range of two non-negative integers, a body containing "," is an item list
// and anything else is a single number kept verbatim.
func ParseParameter(name, body string) (Parameter, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Parameter{}, fmt.Errorf("empty parameter value")
	}

	p := Parameter{Name: name}
	switch {
	case strings.Contains(body, rangeSep):
		bounds := strings.Split(body, rangeSep)
		if len(bounds) != 2 {
			return Parameter{}, fmt.Errorf("wrong range syntax %q", body)
		}
		lo, errLo := parseBound(bounds[0])
		hi, errHi := parseBound(bounds[1])
		if errLo != nil || errHi != nil || lo > hi {
			return Parameter{}, fmt.Errorf("incorrect bounds format %s", body)
		}
		if hi-lo >= MaxRangeLen {
			return Parameter{}, fmt.Errorf("range too large %s: at most %d values are allowed", body, MaxRangeLen)
		}
		p.Kind, p.Min, p.Max = Range, lo, hi

	case strings.Contains(body, itemSep):
		parts := strings.Split(body, itemSep)
		items := make([]string, 0, len(parts))
		for _, part := range parts {
			item := strings.TrimSpace(part)
			if item == "" {
				return Parameter{}, fmt.Errorf("empty item in list %q", body)
			}
			items = append(items, item)
		}
		p.Kind, p.Items = Items, items

	default:
		p.Kind, p.Value = Number, body
	}
	return p, nil
}

// ParseNamedParameter parses the inside of a bracketed parameter,
// "name:value".
func ParseNamedParameter(spec string) (Parameter, error) {
	parts := strings.Split(spec, nameSep)
	if len(parts) != 2 {
		return Parameter{}, fmt.Errorf("malformed named parameter %q, expected name:value", spec)
	}
	name := strings.TrimSpace(parts[0])
	if err := ValidateName(name); err != nil {
		return Parameter{}, fmt.Errorf("invalid parameter name: %w", err)
	}
	return ParseParameter(name, parts[1])
}

func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty bound")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("bound %q is not a non-negative integer", s)
		}
	}
	return strconv.Atoi(s)
}

// Named reports whether the parameter was declared as [name:value].
func (p Parameter) Named() bool {
	return p.Name != ""
}

// Len returns the number of values in the domain. A Range that is inverted
// or longer than MaxRangeLen has no usable domain and reports 0.
func (p Parameter) Len() int {
	switch p.Kind {
	case Range:
		if p.Max < p.Min || p.Max-p.Min >= MaxRangeLen {
			return 0
		}
		return p.Max - p.Min + 1
	case Items:
		return len(p.Items)
	default:
		return 1
	}
}

// Values returns the domain in order: the number itself, the range ascending
// or the items as declared.
func (p Parameter) Values() []string {
	switch p.Kind {
	case Range:
		n := p.Len()
		if n == 0 {
			return nil
		}
		vals := make([]string, 0, n)
		for i := p.Min; i <= p.Max; i++ {
			vals = append(vals, strconv.Itoa(i))
		}
		return vals
	case Items:
		return append([]string(nil), p.Items...)
	default:
		return []string{p.Value}
	}
}

// Contains reports whether v belongs to the domain. Range membership is
// numeric, so "03" is in 0..7.
func (p Parameter) Contains(v string) bool {
	switch p.Kind {
	case Range:
		n, err := parseBound(v)
		return err == nil && n >= p.Min && n <= p.Max
	case Items:
		for _, item := range p.Items {
			if item == v {
				return true
			}
		}
		return false
	default:
		return v == p.Value
	}
}

// String renders the parameter back in template syntax.
func (p Parameter) String() string {
	var body string
	switch p.Kind {
	case Range:
		body = fmt.Sprintf("%d%s%d", p.Min, rangeSep, p.Max)
	case Items:
		body = strings.Join(p.Items, itemSep)
	default:
		body = p.Value
	}
	if p.Named() {
		return "[" + p.Name + nameSep + body + "]"
	}
	return body
}
