// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

import "fmt"

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // runes consumed on the line, so the first rune is column 1
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// ErrorKind classifies the errors reported by a Reader.
type ErrorKind byte

// Constants defining the valid ErrorKind values.
const (
	StructuralError ErrorKind = iota // unexpected token for the grammar position
	LexError                         // malformed token text
	StreamError                      // I/O failure on the underlying source
)

var errorKindStr = [...]string{
	StructuralError: "structural error",
	LexError:        "lexical error",
	StreamError:     "stream error",
}

func (k ErrorKind) String() string {
	if int(k) >= len(errorKindStr) {
		return "unknown error"
	}
	return errorKindStr[k]
}

// SyntaxError is the concrete type of errors reported by the Reader.
// Once a Reader has produced a SyntaxError its session is terminal: every
// further call of ReadNext reports the Error notation without consuming
// input.
type SyntaxError struct {
	Kind     ErrorKind
	Location LineCol
	Message  string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at %s: %s", s.Location, s.Message)
}
