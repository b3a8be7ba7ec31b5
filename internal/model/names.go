// SPDX-License-Identifier: MIT
// Copyright (c) 2025 The YAPLC Authors
//
// This file holds the naming rules shared by groups, descriptive location
// names and parameter names.
package model

import (
	"fmt"
	"strings"
)

// ReservedChars may not appear in group names, descriptive names or
// parameter names. Most of them carry meaning in generated addresses.
const ReservedChars = `.,"*:#@!(){}`

// ValidateName checks that name is non-empty and free of reserved characters.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if i := strings.IndexAny(name, ReservedChars); i >= 0 {
		return fmt.Errorf("name %q contains reserved character %q", name, name[i])
	}
	return nil
}
