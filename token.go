// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson

// Token is the type of a lexical token in the JSON grammar. The Reader
// produces tokens internally; the Writer records the most recently emitted
// token and reports it to the PrintPolicy hooks.
type Token byte

// Constants defining the valid Token values.
const (
	TokNone        Token = iota // no token
	TokComma                    // comma ","
	TokCurlyOpen                // left brace "{"
	TokCurlyClose               // right brace "}"
	TokSquareOpen               // left square bracket "["
	TokSquareClose              // right square bracket "]"
	TokColon                    // colon ":"
	TokString                   // quoted string
	TokNumber                   // number
	TokTrue                     // constant: true
	TokFalse                    // constant: false
	TokNull                     // constant: null
	TokIdentifier               // object member identifier
)

var tokenStr = [...]string{
	TokNone:        "none",
	TokComma:       `","`,
	TokCurlyOpen:   `"{"`,
	TokCurlyClose:  `"}"`,
	TokSquareOpen:  `"["`,
	TokSquareClose: `"]"`,
	TokColon:       `":"`,
	TokString:      "string",
	TokNumber:      "number",
	TokTrue:        "true",
	TokFalse:       "false",
	TokNull:        "null",
	TokIdentifier:  "identifier",
}

func (t Token) String() string {
	if int(t) >= len(tokenStr) {
		return "invalid token"
	}
	return tokenStr[t]
}

// A Notation is one parse event reported by the Reader. Each successful call
// of ReadNext advances the reader by exactly one notation.
type Notation byte

// Constants defining the valid Notation values.
const (
	Invalid     Notation = iota // no notation available
	ObjectStart                 // beginning of an object scope
	ObjectEnd                   // end of the innermost object scope
	ArrayStart                  // beginning of an array scope
	ArrayEnd                    // end of the innermost array scope
	Boolean                     // boolean value, see BoolValue
	String                      // string value, see StringValue
	Number                      // number value, see NumberValue
	Null                        // null value
	Error                       // parse error, see Err
)

var notationStr = [...]string{
	Invalid:     "invalid notation",
	ObjectStart: "object start",
	ObjectEnd:   "object end",
	ArrayStart:  "array start",
	ArrayEnd:    "array end",
	Boolean:     "boolean",
	String:      "string",
	Number:      "number",
	Null:        "null",
	Error:       "error",
}

func (n Notation) String() string {
	if int(n) >= len(notationStr) {
		return notationStr[Invalid]
	}
	return notationStr[n]
}

// tokenNotation maps each token to the notation the reader reports for it.
// Punctuation never escapes the reader loop, so it maps to Error.
var tokenNotation = [...]Notation{
	TokNone:        Error,
	TokComma:       Error,
	TokCurlyOpen:   ObjectStart,
	TokCurlyClose:  ObjectEnd,
	TokSquareOpen:  ArrayStart,
	TokSquareClose: ArrayEnd,
	TokColon:       Error,
	TokString:      String,
	TokNumber:      Number,
	TokTrue:        Boolean,
	TokFalse:       Boolean,
	TokNull:        Null,
	TokIdentifier:  Error,
}

// scope marks a currently-open container context.
type scope byte

const (
	scopeArray scope = iota
	scopeObject
)
