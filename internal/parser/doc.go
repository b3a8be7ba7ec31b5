// Package parser reads YAPLC location templates into a model.Template.
//
// A template is line oriented. The first token of every non-empty line is an
// instruction:
//
//	GRP  <name> <id>        open a group
//	UGRP <name> <id>        open a unique group
//	LOC  <TD> [args...]     declare a location in the current group
//	ULOC <TD> [args...]     declare a unique location
//	ENDGRP                  close the current group
//
// Parsing is all or nothing: any malformed line, or a group left open at the
// end of the input, fails the whole template with a *ParseError.
//
// A Parser keeps the last template it parsed successfully and replaces it
// atomically, so readers calling Template never observe a half-built tree.
package parser
