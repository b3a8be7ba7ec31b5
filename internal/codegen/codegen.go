// Package codegen renders a variable tree as IEC 61131-3 source.
package codegen

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/nucleron/yaplc/internal/iecaddr"
	"github.com/nucleron/yaplc/internal/locations"
)

// WriteGlobals writes every variable below root as a located global:
//
//	VAR_GLOBAL
//	    _IX1_0 AT %IX1.0 : BOOL; (* Chan *)
//	END_VAR
//
// Variables are written depth-first in tree order. Two variables with the
// same name, or a variable with a malformed address, fail before anything is
// written.
func WriteGlobals(w io.Writer, root *locations.Node) error {
	vars := root.Variables()

	seen := make(map[string]string, len(vars))
	for _, v := range vars {
		if _, err := iecaddr.Parse(v.Name); err != nil {
			return fmt.Errorf("variable %s: %w", v.VarName, err)
		}
		if prev, ok := seen[v.VarName]; ok {
			return fmt.Errorf("duplicate variable %s for %s and %s", v.VarName, prev, v.Name)
		}
		seen[v.VarName] = v.Name
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "VAR_GLOBAL")
	for _, v := range vars {
		fmt.Fprintf(bw, "    %s AT %s : %s;", v.VarName, v.Name, v.IECType)
		if v.Description != "" {
			fmt.Fprintf(bw, " (* %s *)", sanitizeComment(v.Description))
		}
		fmt.Fprintln(bw)
	}
	fmt.Fprintln(bw, "END_VAR")
	return bw.Flush()
}

func sanitizeComment(s string) string {
	return strings.NewReplacer("(*", "( *", "*)", "* )").Replace(s)
}
