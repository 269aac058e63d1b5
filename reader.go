// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ejson-go/ejson/internal/escape"

	"go4.org/mem"
)

// A Reader pulls JSON parse events one at a time from a character stream.
// Each call of ReadNext advances the reader by one notation and updates the
// value accessors for it. The reader keeps a stack of currently-open
// container scopes and validates the grammar as it goes: commas between
// siblings, colons between object keys and values, balanced brackets, and a
// single object or array root with nothing but whitespace after it.
//
// A Reader is a single-owner, single-pass session. It is not safe for
// concurrent use, and once it reports the Error notation that state is
// terminal for the session.
type Reader struct {
	src    io.Reader
	r      *bufio.Reader
	scopes []scope
	token  Token
	closed bool

	// Apparent position of the input cursor. The column counts runes
	// consumed since the last line break.
	line, col int

	rootDone bool
	err      *SyntaxError

	identifier string
	strVal     string
	numVal     float64
	boolVal    bool
}

// NewReader constructs a Reader that consumes input from r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{src: r, r: br, line: 1}
}

// Identifier returns the object member key most recently read. It is valid
// after a notation produced inside an object scope, until the next call of
// ReadNext.
func (r *Reader) Identifier() string { return r.identifier }

// StringValue returns the decoded text of the current String notation. After
// a Number notation it returns the raw text of the number token.
func (r *Reader) StringValue() string { return r.strVal }

// NumberValue returns the value of the current Number notation.
func (r *Reader) NumberValue() float64 { return r.numVal }

// BoolValue returns the value of the current Boolean notation.
func (r *Reader) BoolValue() bool { return r.boolVal }

// Err returns the error that put the reader into the Error state, or nil.
// The concrete type of a non-nil result is [*SyntaxError].
func (r *Reader) Err() error {
	if r.err == nil {
		return nil
	}
	return r.err
}

// Close releases the underlying source if it implements io.Closer. The
// reader reports errors after Close.
func (r *Reader) Close() error {
	r.closed = true
	if c, ok := r.src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// ReadNext advances the reader to the next notation of the input. The flag
// reports whether the pull loop should continue: the first error returns
// (Error, true) so the caller observes it, every call after that returns
// (Error, false) without consuming input. A clean end of input after the
// root value has closed returns (Invalid, false) with Err() == nil.
func (r *Reader) ReadNext() (Notation, bool) {
	if r.err != nil {
		return Error, false
	}
	if r.closed {
		r.fail(StreamError, "read on closed reader")
		return Error, true
	}

	atEnd := r.atEnd()
	if atEnd && !r.rootDone {
		r.fail(StructuralError, "improperly formatted input")
		return Error, true
	}
	if r.rootDone && !atEnd {
		r.fail(StructuralError, "unexpected additional input")
		return Error, true
	}
	if atEnd {
		return Invalid, false
	}

	r.identifier = ""
	ok := false
	for {
		switch {
		case len(r.scopes) == 0:
			ok = r.readStart()
		case r.scopes[len(r.scopes)-1] == scopeArray:
			ok = r.readNextArrayValue()
		default:
			ok = r.readNextObjectValue()
		}
		if !ok || r.token != TokNone {
			break
		}
	}

	n := tokenNotation[r.token]
	r.rootDone = len(r.scopes) == 0

	if !ok || n == Error {
		if r.err == nil {
			r.fail(StructuralError, fmt.Sprintf("unexpected %v token", r.token))
		}
		return Error, true
	}
	if r.rootDone && !r.atEnd() {
		r.skipSpace()
	}
	return n, true
}

// SkipObject consumes notations until the end of the innermost open object.
// It reports false if an Error notation was encountered on the way.
func (r *Reader) SkipObject() bool { return r.readUntilMatching(ObjectEnd) }

// SkipArray consumes notations until the end of the innermost open array.
// It reports false if an Error notation was encountered on the way.
func (r *Reader) SkipArray() bool { return r.readUntilMatching(ArrayEnd) }

func (r *Reader) readUntilMatching(want Notation) bool {
	depth := 0
	for {
		n, ok := r.ReadNext()
		if !ok {
			return true
		}
		if depth == 0 && n == want {
			return true
		}
		switch n {
		case ObjectStart, ArrayStart:
			depth++
		case ObjectEnd, ArrayEnd:
			depth--
		case Error:
			return false
		}
	}
}

// readStart consumes the opening bracket of the root value.
func (r *Reader) readStart() bool {
	r.skipSpace()
	r.token = TokNone
	if !r.nextToken() {
		return false
	}
	if r.token != TokCurlyOpen && r.token != TokSquareOpen {
		r.fail(StructuralError, "open curly or square brace token expected")
		return false
	}
	return true
}

// readNextObjectValue consumes up to the next value inside an object scope:
// a separating comma unless the scope just opened, the member key, the
// colon, and the value's first token.
func (r *Reader) readNextObjectValue() bool {
	commaPrepend := r.token != TokCurlyOpen
	r.token = TokNone
	if !r.nextToken() {
		return false
	}
	if r.token == TokCurlyClose {
		return true
	}

	if commaPrepend {
		if r.token != TokComma {
			r.fail(StructuralError, "comma token expected")
			return false
		}
		r.token = TokNone
		if !r.nextToken() {
			return false
		}
		if r.token == TokCurlyClose {
			r.fail(StructuralError, "trailing comma before end of object")
			return false
		}
	}

	if r.token != TokString {
		r.fail(StructuralError, "string token expected")
		return false
	}
	r.identifier = r.strVal

	r.token = TokNone
	if !r.nextToken() {
		return false
	}
	if r.token != TokColon {
		r.fail(StructuralError, "colon token expected")
		return false
	}

	r.token = TokNone
	return r.nextToken()
}

// readNextArrayValue consumes up to the next value inside an array scope: a
// separating comma unless the scope just opened, then the value's first
// token.
func (r *Reader) readNextArrayValue() bool {
	commaPrepend := r.token != TokSquareOpen
	r.token = TokNone
	if !r.nextToken() {
		return false
	}
	if r.token == TokSquareClose {
		return true
	}

	if commaPrepend {
		if r.token != TokComma {
			r.fail(StructuralError, "comma token expected")
			return false
		}
		r.token = TokNone
		if !r.nextToken() {
			return false
		}
		if r.token == TokSquareClose {
			r.fail(StructuralError, "trailing comma before end of array")
			return false
		}
	}
	return true
}

// nextToken scans the next lexical token, maintaining the scope stack for
// brackets as a side effect.
func (r *Reader) nextToken() bool {
	for {
		ch, ok := r.read()
		if !ok {
			if r.err == nil {
				r.fail(StructuralError, "unexpected end of input")
			}
			return false
		}
		if ch == '\n' {
			r.line++
			r.col = 0
		}
		if isSpace(ch) {
			continue
		}

		if isNumberRune(ch) {
			if !r.scanNumber(ch) {
				return false
			}
			r.token = TokNumber
			return true
		}

		switch ch {
		case '{':
			r.scopes = append(r.scopes, scopeObject)
			r.token = TokCurlyOpen
			return true
		case '}':
			if n := len(r.scopes); n == 0 || r.scopes[n-1] != scopeObject {
				r.fail(StructuralError, "mismatched closing brace")
				return false
			}
			r.scopes = r.scopes[:len(r.scopes)-1]
			r.token = TokCurlyClose
			return true
		case '[':
			r.scopes = append(r.scopes, scopeArray)
			r.token = TokSquareOpen
			return true
		case ']':
			if n := len(r.scopes); n == 0 || r.scopes[n-1] != scopeArray {
				r.fail(StructuralError, "mismatched closing bracket")
				return false
			}
			r.scopes = r.scopes[:len(r.scopes)-1]
			r.token = TokSquareClose
			return true
		case ':':
			r.token = TokColon
			return true
		case ',':
			r.token = TokComma
			return true
		case '"':
			if !r.scanString() {
				return false
			}
			r.token = TokString
			return true
		case 't', 'T', 'f', 'F', 'n', 'N':
			return r.scanLiteral(ch)
		default:
			r.fail(StructuralError, fmt.Sprintf("invalid JSON token %q", ch))
			return false
		}
	}
}

// scanLiteral greedily consumes letters after first and matches the result
// against the true/false/null constants, ignoring case.
func (r *Reader) scanLiteral(first rune) bool {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		ch, ok := r.read()
		if !ok {
			if r.err != nil {
				return false
			}
			break // end of input ends the literal
		}
		if !isLetter(ch) {
			r.unread()
			break
		}
		sb.WriteRune(ch)
	}

	text := sb.String()
	switch {
	case strings.EqualFold(text, "true"):
		r.boolVal = true
		r.token = TokTrue
	case strings.EqualFold(text, "false"):
		r.boolVal = false
		r.token = TokFalse
	case strings.EqualFold(text, "null"):
		r.token = TokNull
	default:
		r.fail(LexError, fmt.Sprintf("invalid JSON literal %q", text))
		return false
	}
	return true
}

// scanString accumulates the raw text of a string token, validating escape
// sequences as they are consumed, and decodes it once the closing quote is
// reached. The opening quote has already been consumed.
func (r *Reader) scanString() bool {
	var raw bytes.Buffer
	for {
		ch, ok := r.read()
		if !ok {
			r.fail(LexError, "string token abruptly ended")
			return false
		}
		if ch == '"' {
			break
		}
		if ch != '\\' {
			raw.WriteRune(ch)
			continue
		}

		esc, ok := r.read()
		if !ok {
			r.fail(LexError, "string token abruptly ended")
			return false
		}
		switch esc {
		case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			raw.WriteByte('\\')
			raw.WriteByte(byte(esc))
		case 'u':
			raw.WriteString(`\u`)
			for i := 0; i < 4; i++ {
				d, ok := r.read()
				if !ok {
					r.fail(LexError, "string token abruptly ended")
					return false
				}
				if !isHexDigit(d) {
					r.fail(LexError, fmt.Sprintf("invalid hexadecimal digit %q", d))
					return false
				}
				raw.WriteRune(d)
			}
		default:
			r.fail(LexError, fmt.Sprintf("invalid %q after escape", esc))
			return false
		}
	}

	dec, err := escape.Unquote(mem.B(raw.Bytes()))
	if err != nil {
		r.fail(LexError, err.Error())
		return false
	}
	r.strVal = string(dec)
	return true
}

// States of the number tokenizer. The accepting states are numZero, numInt,
// numFrac and numExpDigits.
const (
	numStart = iota
	numSign
	numZero
	numInt
	numDot
	numExp
	numFrac
	numExpSign
	numExpDigits
)

// scanNumber consumes the remainder of a number token whose first rune has
// already been read, enforcing the JSON number grammar with an explicit
// state machine, and converts the accepted text to a float64.
func (r *Reader) scanNumber(first rune) bool {
	var buf bytes.Buffer
	state := numStart
	ch, haveCh := first, true
	valid := true

	for {
		if !haveCh {
			var ok bool
			ch, ok = r.read()
			if !ok {
				if r.err == nil {
					r.fail(LexError, "number token abruptly ended")
				}
				return false
			}
		}
		haveCh = false

		if !isNumberRune(ch) {
			r.unread()
			break
		}

		switch state {
		case numStart:
			switch {
			case ch == '-':
				state = numSign
			case ch == '0':
				state = numZero
			case isDigit(ch):
				state = numInt
			default:
				valid = false
			}
		case numSign:
			switch {
			case ch == '0':
				state = numZero
			case isDigit(ch):
				state = numInt
			default:
				valid = false
			}
		case numZero:
			switch ch {
			case '.':
				state = numDot
			case 'e', 'E':
				state = numExp
			default:
				valid = false
			}
		case numInt:
			switch {
			case isDigit(ch):
				state = numInt
			case ch == '.':
				state = numDot
			case ch == 'e' || ch == 'E':
				state = numExp
			default:
				valid = false
			}
		case numDot:
			if isDigit(ch) {
				state = numFrac
			} else {
				valid = false
			}
		case numExp:
			switch {
			case ch == '-' || ch == '+':
				state = numExpSign
			case isDigit(ch):
				state = numExpDigits
			default:
				valid = false
			}
		case numFrac:
			switch {
			case isDigit(ch):
				state = numFrac
			case ch == 'e' || ch == 'E':
				state = numExp
			default:
				valid = false
			}
		case numExpSign, numExpDigits:
			if isDigit(ch) {
				state = numExpDigits
			} else {
				valid = false
			}
		}
		if !valid {
			break
		}
		buf.WriteRune(ch)
	}

	if valid {
		switch state {
		case numZero, numInt, numFrac, numExpDigits:
			text := buf.String()
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				// Grammar-valid text can still overflow the double range
				// (e.g. 1e999). The parse fails rather than defaulting.
				r.fail(LexError, fmt.Sprintf("number %s out of range", text))
				return false
			}
			r.strVal = text
			r.numVal = v
			return true
		}
	}
	r.fail(LexError, "poorly formed JSON number token")
	return false
}

// skipSpace consumes whitespace up to the next significant rune, which is
// left in the stream.
func (r *Reader) skipSpace() {
	for {
		ch, ok := r.read()
		if !ok {
			return
		}
		if ch == '\n' {
			r.line++
			r.col = 0
		}
		if !isSpace(ch) {
			r.unread()
			return
		}
	}
}

// read consumes a single rune and advances the column counter. Line breaks
// are accounted for by the callers that can encounter them outside tokens.
func (r *Reader) read() (rune, bool) {
	ch, _, err := r.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			r.fail(StreamError, err.Error())
		}
		return 0, false
	}
	r.col++
	return ch, true
}

// unread pushes the most recently read rune back into the stream.
func (r *Reader) unread() {
	r.r.UnreadRune()
	r.col--
}

func (r *Reader) atEnd() bool {
	_, err := r.r.Peek(1)
	return err != nil
}

// fail records the first error of the session with its input position.
func (r *Reader) fail(kind ErrorKind, msg string) {
	if r.err == nil {
		r.err = &SyntaxError{
			Kind:     kind,
			Location: LineCol{Line: r.line, Column: r.col},
			Message:  msg,
		}
	}
}

func isSpace(ch rune) bool { return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t' }

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }

func isNumberRune(ch rune) bool {
	return isDigit(ch) || ch == '-' || ch == '+' || ch == '.' || ch == 'e' || ch == 'E'
}

func isLetter(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
