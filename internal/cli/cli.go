package cli

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/nucleron/yaplc/internal/parser"
	"github.com/nucleron/yaplc/internal/targets"
)

// Exit codes.
const (
	ExitFailure         = 1
	ExitUsage           = 2
	ExitTemplateInvalid = 3
	ExitTemplateMissing = 4
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// Run executes the command line args, writing results to stdout and logs
// and diagnostics to stderr. Every returned error is an *ExitError.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		return toExitError(err)
	}
	return nil
}

func toExitError(err error) *ExitError {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	code := ExitFailure
	var parseErr *parser.ParseError
	switch {
	case errors.Is(err, parser.ErrTemplateNotFound), errors.Is(err, targets.ErrUnknownTarget):
		code = ExitTemplateMissing
	case errors.As(err, &parseErr):
		code = ExitTemplateInvalid
	case strings.HasPrefix(err.Error(), "unknown command"):
		code = ExitUsage
	}
	return &ExitError{Code: code, Message: err.Error()}
}
