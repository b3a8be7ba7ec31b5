// Package cli implements the yaplc command tree: it parses flags and
// environment defaults, builds the application configuration, renders
// results in the selected output format and maps failures to process exit
// codes.
package cli
