package parser

import (
	"errors"
	"fmt"
)

// ErrTemplateNotFound is wrapped by the *ParseError returned when the
// template file is missing or cannot be read.
var ErrTemplateNotFound = errors.New("no template file for current target")

// ParseError describes why a template could not be parsed. Line is 1-based
// and zero when the failure is not tied to a line.
type ParseError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	loc := e.Path
	if loc == "" {
		loc = "<input>"
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", loc, e.Line, e.Msg)
	}
	return fmt.Sprintf("%s: %s", loc, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
