// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ejson-go/ejson/internal/escape"

	"go4.org/mem"
)

// A Writer emits JSON text one element at a time to an output stream. The
// caller drives it with Begin/End and Write calls; the writer tracks the
// stack of open containers and the previously written token, inserts commas
// between siblings, and delegates all other whitespace to its PrintPolicy.
//
// The writer is lenient: a call that is not legal in the current state, such
// as ending an object that is not open or writing a bare value where a
// member key is required, is silently ignored rather than corrupting the
// output. Output is buffered; call Close to flush it.
type Writer struct {
	sink   io.Writer
	w      *bufio.Writer
	policy PrintPolicy

	scopes []scope
	prev   Token
	indent int
}

// NewWriter constructs a Writer that emits output to w, formatted by
// policy. A nil policy defaults to PrettyPolicy.
func NewWriter(w io.Writer, policy PrintPolicy) *Writer {
	if policy == nil {
		policy = PrettyPolicy{}
	}
	return &Writer{sink: w, w: bufio.NewWriter(w), policy: policy, prev: TokNone}
}

// Close flushes buffered output and closes the underlying sink if it
// implements io.Closer.
func (w *Writer) Close() error {
	ferr := w.w.Flush()
	if c, ok := w.sink.(io.Closer); ok {
		if cerr := c.Close(); ferr == nil {
			ferr = cerr
		}
	}
	return ferr
}

// BeginObject opens an object in a value position.
func (w *Writer) BeginObject() {
	if !w.canWriteValue() {
		return
	}
	w.writeCommaIfNeeded()
	w.policy.ObjectStartPrefix(w.putRune, w.indent, w.prev)
	w.openScope(scopeObject)
}

// BeginObjectField opens an object as the value of the member name.
func (w *Writer) BeginObjectField(name string) {
	if !w.canWriteField() {
		return
	}
	w.WriteIdentifier(name)
	w.policy.ObjectStartPrefix(w.putRune, w.indent, w.prev)
	w.openScope(scopeObject)
}

// EndObject closes the innermost open object. It is ignored if the
// innermost scope is not an object, or a member key is awaiting its value.
func (w *Writer) EndObject() {
	n := len(w.scopes)
	if n == 0 || w.scopes[n-1] != scopeObject || w.prev == TokIdentifier {
		return
	}
	w.scopes = w.scopes[:n-1]
	w.indent--
	w.policy.ObjectEndPrefix(w.putRune, w.indent, w.prev)
	w.w.WriteByte('}')
	w.prev = TokCurlyClose
}

// BeginArray opens an array in a value position.
func (w *Writer) BeginArray() {
	if !w.canWriteValue() {
		return
	}
	w.writeCommaIfNeeded()
	w.policy.ArrayStartPrefix(w.putRune, w.indent, w.prev)
	w.openScope(scopeArray)
}

// BeginArrayField opens an array as the value of the member name.
func (w *Writer) BeginArrayField(name string) {
	if !w.canWriteField() {
		return
	}
	w.WriteIdentifier(name)
	w.policy.ArrayStartPrefix(w.putRune, w.indent, w.prev)
	w.openScope(scopeArray)
}

// EndArray closes the innermost open array. It is ignored if the innermost
// scope is not an array.
func (w *Writer) EndArray() {
	n := len(w.scopes)
	if n == 0 || w.scopes[n-1] != scopeArray {
		return
	}
	w.scopes = w.scopes[:n-1]
	w.indent--
	w.policy.ArrayEndPrefix(w.putRune, w.indent, w.prev)
	w.w.WriteByte(']')
	w.prev = TokSquareClose
}

// WriteIdentifier emits a member key inside an open object. It is ignored
// outside an object scope or when a key has already been written.
func (w *Writer) WriteIdentifier(name string) {
	if !w.canWriteField() {
		return
	}
	w.writeCommaIfNeeded()
	w.policy.IdentifierPrefix(w.putRune, w.indent, w.prev)
	w.w.WriteByte('"')
	w.w.Write(escape.Quote(mem.S(name)))
	w.w.WriteString(`":`)
	w.prev = TokIdentifier
}

// WriteNull emits a null in a value position.
func (w *Writer) WriteNull() { w.writeScalar(TokNull, "null") }

// WriteNullField emits a null as the value of the member name.
func (w *Writer) WriteNullField(name string) {
	if !w.canWriteField() {
		return
	}
	w.WriteIdentifier(name)
	w.WriteNull()
}

// WriteBool emits a boolean in a value position.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.writeScalar(TokTrue, "true")
	} else {
		w.writeScalar(TokFalse, "false")
	}
}

// WriteBoolField emits a boolean as the value of the member name.
func (w *Writer) WriteBoolField(name string, v bool) {
	if !w.canWriteField() {
		return
	}
	w.WriteIdentifier(name)
	w.WriteBool(v)
}

// WriteNumber emits a number in a value position. The value must be finite:
// NaN and the infinities render in Go's notation, which is not valid JSON.
func (w *Writer) WriteNumber(v float64) { w.writeScalar(TokNumber, formatNumber(v)) }

// WriteNumberField emits a number as the value of the member name.
func (w *Writer) WriteNumberField(name string, v float64) {
	if !w.canWriteField() {
		return
	}
	w.WriteIdentifier(name)
	w.WriteNumber(v)
}

// WriteString emits a quoted string in a value position.
func (w *Writer) WriteString(s string) {
	if !w.canWriteValue() {
		return
	}
	w.writeCommaIfNeeded()
	w.policy.ValuePrefix(w.putRune, w.indent, w.prev)
	w.w.WriteByte('"')
	w.w.Write(escape.Quote(mem.S(s)))
	w.w.WriteByte('"')
	w.prev = TokString
}

// WriteStringField emits a quoted string as the value of the member name.
func (w *Writer) WriteStringField(name, s string) {
	if !w.canWriteField() {
		return
	}
	w.WriteIdentifier(name)
	w.WriteString(s)
}

// writeScalar emits a bare literal in a value position.
func (w *Writer) writeScalar(tok Token, text string) {
	if !w.canWriteValue() {
		return
	}
	w.writeCommaIfNeeded()
	w.policy.ValuePrefix(w.putRune, w.indent, w.prev)
	w.w.WriteString(text)
	w.prev = tok
}

// canWriteValue reports whether a value may be written without a member
// key: at the root, inside an array, or after a pending key.
func (w *Writer) canWriteValue() bool {
	n := len(w.scopes)
	return n == 0 || w.scopes[n-1] == scopeArray || w.prev == TokIdentifier
}

// canWriteField reports whether a member key may be written: inside an
// object, with no other key pending.
func (w *Writer) canWriteField() bool {
	n := len(w.scopes)
	return n > 0 && w.scopes[n-1] == scopeObject && w.prev != TokIdentifier
}

// writeCommaIfNeeded separates the element about to be written from a
// preceding sibling.
func (w *Writer) writeCommaIfNeeded() {
	switch w.prev {
	case TokNone, TokCurlyOpen, TokSquareOpen, TokIdentifier:
	default:
		w.w.WriteByte(',')
	}
}

func (w *Writer) openScope(sc scope) {
	if sc == scopeObject {
		w.w.WriteByte('{')
		w.prev = TokCurlyOpen
	} else {
		w.w.WriteByte('[')
		w.prev = TokSquareOpen
	}
	w.scopes = append(w.scopes, sc)
	w.indent++
}

func (w *Writer) putRune(ch rune) { w.w.WriteRune(ch) }

// formatNumber renders v in the shortest form that parses back exactly,
// with a trailing ".0" added to integral values so the output reads back as
// the same numeric type.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
