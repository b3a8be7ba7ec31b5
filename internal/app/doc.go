// Package app wires the template engine together: it owns the logger, the
// parser and the optional project file, resolves which template to use and
// turns it into a variable tree. It is decoupled from any specific
// entrypoint like the CLI.
package app
