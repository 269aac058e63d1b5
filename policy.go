// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

// A PrintPolicy controls the whitespace a Writer emits before each element
// of its output. The writer calls the hook matching the element about to be
// written, passing a function that appends a single rune to the output, the
// current nesting depth, and the token written immediately before. The
// policy sees only separators: the structural text of the output is fixed.
type PrintPolicy interface {
	// ObjectStartPrefix is called before an opening curly brace.
	ObjectStartPrefix(write func(rune), indent int, prev Token)

	// ObjectEndPrefix is called before a closing curly brace.
	ObjectEndPrefix(write func(rune), indent int, prev Token)

	// ArrayStartPrefix is called before an opening square bracket.
	ArrayStartPrefix(write func(rune), indent int, prev Token)

	// ArrayEndPrefix is called before a closing square bracket.
	ArrayEndPrefix(write func(rune), indent int, prev Token)

	// IdentifierPrefix is called before an object member key.
	IdentifierPrefix(write func(rune), indent int, prev Token)

	// ValuePrefix is called before a scalar value.
	ValuePrefix(write func(rune), indent int, prev Token)
}

// CompactPolicy emits no whitespace at all, producing the densest possible
// rendering on a single line.
type CompactPolicy struct{}

func (CompactPolicy) ObjectStartPrefix(func(rune), int, Token) {}
func (CompactPolicy) ObjectEndPrefix(func(rune), int, Token)   {}
func (CompactPolicy) ArrayStartPrefix(func(rune), int, Token)  {}
func (CompactPolicy) ArrayEndPrefix(func(rune), int, Token)    {}
func (CompactPolicy) IdentifierPrefix(func(rune), int, Token)  {}
func (CompactPolicy) ValuePrefix(func(rune), int, Token)       {}

// PrettyPolicy renders output in a multi-line human-readable layout: each
// member key on its own line indented by one tab per nesting level, a space
// between a key and its value, and closing brackets of non-empty containers
// on their own line at the parent's indentation.
type PrettyPolicy struct{}

func (PrettyPolicy) ObjectStartPrefix(write func(rune), indent int, prev Token) {
	if prev == TokIdentifier {
		newlineIndent(write, indent)
	}
}

func (PrettyPolicy) ObjectEndPrefix(write func(rune), indent int, prev Token) {
	if prev != TokCurlyOpen {
		newlineIndent(write, indent)
	}
}

func (PrettyPolicy) ArrayStartPrefix(write func(rune), indent int, prev Token) {
	if prev == TokIdentifier {
		newlineIndent(write, indent)
	}
}

func (PrettyPolicy) ArrayEndPrefix(write func(rune), indent int, prev Token) {
	if prev != TokSquareOpen {
		newlineIndent(write, indent)
	}
}

func (PrettyPolicy) IdentifierPrefix(write func(rune), indent int, prev Token) {
	newlineIndent(write, indent)
}

func (PrettyPolicy) ValuePrefix(write func(rune), indent int, prev Token) {
	if prev == TokIdentifier {
		write(' ')
	} else {
		newlineIndent(write, indent)
	}
}

func newlineIndent(write func(rune), indent int) {
	write('\n')
	for i := 0; i < indent; i++ {
		write('\t')
	}
}
