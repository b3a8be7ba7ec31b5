// Package lexer splits one line of a location template into tokens.
//
// Tokens are separated by whitespace and a '#' starts a comment that runs to
// the end of the line. Besides bare words the lexer knows two delimited forms
// that are returned whole, delimiters included:
//
//	"Descriptive name"   a quoted name
//	[n:0..7]             a bracketed parameter
//
// Word characters are letters, digits, '_' and additionally '.', '(', ')',
// ':' and ',', so that ranges (0..7), item lists (a,b,c) and codes such as
// M.I stay in one token. Any other punctuation is returned as a token of its
// own.
package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	commentChar  = '#'
	quoteChar    = '"'
	openBracket  = '['
	closeBracket = ']'
)

// Error reports a line that could not be split into tokens.
type Error struct {
	Col int // 1-based rune column of the offending delimiter
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("column %d: %s", e.Col, e.Msg)
}

type state int

const (
	stateSpace state = iota
	stateWord
	stateQuote
	stateBracket
)

// Tokenize splits line into tokens. Unterminated quotes and brackets are
// reported as *Error.
func Tokenize(line string) ([]string, error) {
	var (
		tokens []string
		tok    strings.Builder
		st     = stateSpace
		start  int // column where the current delimited token opened
		col    int
	)

	emit := func() {
		tokens = append(tokens, tok.String())
		tok.Reset()
		st = stateSpace
	}

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])
		col++

		switch st {
		case stateSpace:
			switch {
			case isSpace(r):
			case r == commentChar:
				return tokens, nil
			case isWordChar(r):
				tok.WriteRune(r)
				st = stateWord
			case r == quoteChar:
				tok.WriteRune(r)
				st, start = stateQuote, col
			case r == openBracket:
				tok.WriteRune(r)
				st, start = stateBracket, col
			default:
				tok.WriteRune(r)
				emit()
			}

		case stateWord:
			switch {
			case isSpace(r):
				emit()
			case r == commentChar:
				emit()
				return tokens, nil
			case isWordChar(r), r == quoteChar, r == openBracket, r == closeBracket:
				tok.WriteRune(r)
			default:
				// punctuation ends the word and is re-read as a token of its own
				emit()
				col--
				continue
			}

		case stateQuote:
			tok.WriteRune(r)
			if r == quoteChar {
				emit()
			}

		case stateBracket:
			tok.WriteRune(r)
			if r == closeBracket {
				emit()
			}
		}
		i += size
	}

	switch st {
	case stateWord:
		emit()
	case stateQuote:
		return nil, &Error{Col: start, Msg: "no closing quotation"}
	case stateBracket:
		return nil, &Error{Col: start, Msg: "no closing bracket"}
	}
	return tokens, nil
}

// IsQuoted reports whether tok is a complete "..." token.
func IsQuoted(tok string) bool {
	return len(tok) >= 2 && tok[0] == quoteChar && tok[len(tok)-1] == quoteChar
}

// IsBracketed reports whether tok is a complete [...] token.
func IsBracketed(tok string) bool {
	return len(tok) >= 2 && tok[0] == openBracket && tok[len(tok)-1] == closeBracket
}

// Unquote strips the surrounding double quotes of tok, if any.
func Unquote(tok string) string {
	return strings.TrimSuffix(strings.TrimPrefix(tok, string(quoteChar)), string(quoteChar))
}

// Unbracket strips the surrounding square brackets of tok, if any.
func Unbracket(tok string) string {
	return strings.TrimSuffix(strings.TrimPrefix(tok, string(openBracket)), string(closeBracket))
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n' || r == '\f' || r == '\v'
}

func isWordChar(r rune) bool {
	switch r {
	case '_', '.', '(', ')', ':', ',':
		return true
	}
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
