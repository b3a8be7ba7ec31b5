package parser

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/nucleron/yaplc/internal/ctxlog"
	"github.com/nucleron/yaplc/internal/lexer"
	"github.com/nucleron/yaplc/internal/model"
)

const (
	kwGroup        = "GRP"
	kwUniqueGroup  = "UGRP"
	kwLocation     = "LOC"
	kwUniqueLoc    = "ULOC"
	kwEndGroup     = "ENDGRP"
	maxGroupTokens = 3
)

// MaxLineLength bounds a single template line in bytes.
const MaxLineLength = 1 << 20

// Parser parses templates and remembers the last successful result.
type Parser struct {
	current atomic.Pointer[model.Template]
}

// New creates a Parser with no template loaded.
func New() *Parser {
	return &Parser{}
}

// Template returns the last successfully parsed template, or nil.
func (p *Parser) Template() *model.Template {
	return p.current.Load()
}

// ParseFile parses the template at path. On success the result becomes the
// parser's current template; on failure the previous one stays in place.
func (p *Parser) ParseFile(ctx context.Context, path string) (*model.Template, error) {
	tpl, err := ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}
	p.current.Store(tpl)
	return tpl, nil
}

// Parse is ParseFile for an already opened source; name is used in errors.
func (p *Parser) Parse(ctx context.Context, r io.Reader, name string) (*model.Template, error) {
	tpl, err := Parse(ctx, r, name)
	if err != nil {
		return nil, err
	}
	p.current.Store(tpl)
	return tpl, nil
}

// ParseFile opens path and parses it. A missing or unreadable file yields a
// *ParseError wrapping ErrTemplateNotFound.
func ParseFile(ctx context.Context, path string) (*model.Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{
			Path: path,
			Msg:  ErrTemplateNotFound.Error(),
			Err:  fmt.Errorf("%w: %w", ErrTemplateNotFound, err),
		}
	}
	defer f.Close()

	return Parse(ctx, f, path)
}

// Parse reads a whole template from r.
func Parse(ctx context.Context, r io.Reader, name string) (*model.Template, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Parsing template.", "source", name)

	st := &state{tpl: model.NewTemplate(name), current: model.NoGroup}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineLength)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		tokens, err := lexer.Tokenize(sc.Text())
		if err != nil {
			return nil, &ParseError{Path: name, Line: lineNo, Msg: err.Error(), Err: err}
		}
		if len(tokens) == 0 {
			continue
		}
		if err := st.apply(tokens); err != nil {
			return nil, &ParseError{Path: name, Line: lineNo, Msg: err.Error(), Err: err}
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &ParseError{
				Path: name,
				Line: lineNo + 1,
				Msg:  fmt.Sprintf("line exceeds %d bytes", MaxLineLength),
				Err:  err,
			}
		}
		return nil, &ParseError{
			Path: name,
			Line: lineNo,
			Msg:  fmt.Sprintf("read failed: %v", err),
			Err:  fmt.Errorf("%w: %w", ErrTemplateNotFound, err),
		}
	}

	if open := st.tpl.Get(st.current); open != nil {
		return nil, &ParseError{
			Path: name,
			Line: lineNo,
			Msg:  fmt.Sprintf("group %s has not been closed properly", open.Name),
		}
	}

	logger.Info("Template parsed.", "source", name, "root_groups", len(st.tpl.Groups()), "groups", st.tpl.Len())
	return st.tpl, nil
}

// state is the statement machine: NoGroup at the top level, otherwise the
// handle of the innermost open group.
type state struct {
	tpl     *model.Template
	current model.GroupID
}

func (s *state) apply(tokens []string) error {
	switch kw := tokens[0]; kw {
	case kwGroup, kwUniqueGroup:
		return s.openGroup(kw == kwUniqueGroup, tokens[1:])
	case kwLocation, kwUniqueLoc:
		return s.addLocation(kw == kwUniqueLoc, tokens[1:])
	case kwEndGroup:
		return s.closeGroup()
	default:
		return fmt.Errorf("unknown instruction %q", kw)
	}
}

func (s *state) openGroup(unique bool, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("group declaration requires a name and an id")
	}
	if len(args) > maxGroupTokens-1 {
		return fmt.Errorf("group %s: at most one parameter is allowed for the group id", args[0])
	}
	g, err := model.NewGroup(args[0], args[1], unique)
	if err != nil {
		return err
	}
	id, err := s.tpl.AddGroup(g, s.current)
	if err != nil {
		return err
	}
	s.current = id
	return nil
}

func (s *state) addLocation(unique bool, args []string) error {
	if s.current == model.NoGroup {
		kw := kwLocation
		if unique {
			kw = kwUniqueLoc
		}
		return fmt.Errorf("location %s without group", kw)
	}
	if len(args) == 0 {
		return fmt.Errorf("location declaration requires a type code")
	}
	loc, err := model.NewLocation(args[0], unique, s.current, args[1:]...)
	if err != nil {
		return err
	}
	return s.tpl.AddLocation(loc)
}

func (s *state) closeGroup() error {
	g := s.tpl.Get(s.current)
	if g == nil {
		return fmt.Errorf("illegal end of group")
	}
	if parent := s.tpl.Parent(g); parent != nil {
		s.current = parent.Handle()
	} else {
		s.current = model.NoGroup
	}
	return nil
}
