// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ejson_test

import (
	"strings"
	"testing"

	"github.com/ejson-go/ejson"
	"github.com/google/go-cmp/cmp"
)

func TestReadNext(t *testing.T) {
	tests := []struct {
		input string
		want  []ejson.Notation
	}{
		// Empty containers
		{"{}", []ejson.Notation{ejson.ObjectStart, ejson.ObjectEnd}},
		{"[]", []ejson.Notation{ejson.ArrayStart, ejson.ArrayEnd}},
		{" \t\r\n [ ] \t\r\n ", []ejson.Notation{ejson.ArrayStart, ejson.ArrayEnd}},
		{"[[],{},[{}]]", []ejson.Notation{
			ejson.ArrayStart,
			ejson.ArrayStart, ejson.ArrayEnd,
			ejson.ObjectStart, ejson.ObjectEnd,
			ejson.ArrayStart, ejson.ObjectStart, ejson.ObjectEnd, ejson.ArrayEnd,
			ejson.ArrayEnd,
		}},

		// Scalars of every type
		{`[1, "two", true, false, null]`, []ejson.Notation{
			ejson.ArrayStart,
			ejson.Number, ejson.String, ejson.Boolean, ejson.Boolean, ejson.Null,
			ejson.ArrayEnd,
		}},

		// Object members
		{`{"a":1,"b":[true,null]}`, []ejson.Notation{
			ejson.ObjectStart,
			ejson.Number,
			ejson.ArrayStart, ejson.Boolean, ejson.Null, ejson.ArrayEnd,
			ejson.ObjectEnd,
		}},

		// Case-insensitive literals
		{`[TRUE, False, NULL, nuLL]`, []ejson.Notation{
			ejson.ArrayStart,
			ejson.Boolean, ejson.Boolean, ejson.Null, ejson.Null,
			ejson.ArrayEnd,
		}},
	}

	for _, test := range tests {
		var got []ejson.Notation
		r := ejson.NewReader(strings.NewReader(test.input))
		for {
			n, ok := r.ReadNext()
			if !ok {
				break
			}
			got = append(got, n)
		}
		if r.Err() != nil {
			t.Errorf("Input: %#q\nReadNext failed: %v", test.input, r.Err())
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nNotations: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestReadNext_values(t *testing.T) {
	type event struct {
		N   ejson.Notation
		ID  string
		Val any
	}
	const input = `{"name":"Ada", "age":36.5, "tags":["x", ""], "on":false, "nil":null, "":0}`
	want := []event{
		{ejson.ObjectStart, "", nil},
		{ejson.String, "name", "Ada"},
		{ejson.Number, "age", 36.5},
		{ejson.ArrayStart, "tags", nil},
		{ejson.String, "", "x"},
		{ejson.String, "", ""},
		{ejson.ArrayEnd, "", nil},
		{ejson.Boolean, "on", false},
		{ejson.Null, "nil", nil},
		{ejson.Number, "", 0.0},
		{ejson.ObjectEnd, "", nil},
	}

	var got []event
	r := ejson.NewReader(strings.NewReader(input))
	for {
		n, ok := r.ReadNext()
		if !ok {
			break
		}
		ev := event{N: n, ID: r.Identifier()}
		switch n {
		case ejson.String:
			ev.Val = r.StringValue()
		case ejson.Number:
			ev.Val = r.NumberValue()
		case ejson.Boolean:
			ev.Val = r.BoolValue()
		}
		got = append(got, ev)
	}
	if r.Err() != nil {
		t.Fatalf("ReadNext failed: %v", r.Err())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Events: (-want, +got)\n%s", diff)
	}
}

func TestReadNext_numbers(t *testing.T) {
	const input = `[0, -1, 5139, 2.3, 5e+9, 3.6E+4, -0.001E-100, 0.5]`
	want := []float64{0, -1, 5139, 2.3, 5e+9, 3.6e+4, -0.001e-100, 0.5}
	wantText := []string{"0", "-1", "5139", "2.3", "5e+9", "3.6E+4", "-0.001E-100", "0.5"}

	var got []float64
	var gotText []string
	r := ejson.NewReader(strings.NewReader(input))
	for {
		n, ok := r.ReadNext()
		if !ok {
			break
		}
		if n == ejson.Number {
			got = append(got, r.NumberValue())
			gotText = append(gotText, r.StringValue())
		}
	}
	if r.Err() != nil {
		t.Fatalf("ReadNext failed: %v", r.Err())
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Values: (-want, +got)\n%s", diff)
	}
	if diff := cmp.Diff(wantText, gotText); diff != "" {
		t.Errorf("Raw text: (-want, +got)\n%s", diff)
	}
}

func TestReadNext_errors(t *testing.T) {
	tests := []struct {
		input   string
		wantMsg string // substring of the error message
		wantLoc string // "line:col", or "" to skip the check
	}{
		// Structure
		{"", "improperly formatted input", "1:0"},
		{"   ", "unexpected end of input", ""},
		{"true", "open curly or square brace token expected", ""},
		{`"str" `, "open curly or square brace token expected", ""},
		{"{} {}", "unexpected additional input", ""},
		{"[1,]", "trailing comma before end of array", "1:4"},
		{`{"a":1,}`, "trailing comma before end of object", "1:8"},
		{"[1 2]", "comma token expected", ""},
		{`{"a":1 "b":2}`, "comma token expected", ""},
		{`{"a" 1}`, "colon token expected", ""},
		{"{1:2}", "string token expected", ""},
		{"[}", "mismatched closing brace", "1:2"},
		{"{]", "mismatched closing bracket", "1:2"},
		{"[1", "number token abruptly ended", ""},
		{"[1 ", "unexpected end of input", ""},
		{"[,1]", `unexpected "," token`, ""},
		{"[:]", `unexpected ":" token`, ""},
		{"[@]", "invalid JSON token", ""},

		// Strings
		{`"abc`, "string token abruptly ended", "1:4"},
		{`["ab\`, "string token abruptly ended", ""},
		{`["\q"]`, `invalid 'q' after escape`, ""},
		{`["\u12g4"]`, "invalid hexadecimal digit", ""},
		{`["\u00"]`, "invalid hexadecimal digit", ""},

		// Literals
		{"[truth]", "invalid JSON literal", ""},
		{"[nil]", "invalid JSON literal", ""},

		// Numbers
		{"[01]", "poorly formed JSON number token", ""},
		{"[1.]", "poorly formed JSON number token", ""},
		{"[.5]", "poorly formed JSON number token", ""},
		{"[+1]", "poorly formed JSON number token", ""},
		{"[1e]", "poorly formed JSON number token", ""},
		{"[1e+]", "poorly formed JSON number token", ""},
		{"[--1]", "poorly formed JSON number token", ""},
		{"[1e999]", "out of range", ""},

		// Multi-line location tracking. Only t/f/n open a literal scan;
		// any other letter is rejected where it stands.
		{"[\n  1,\n  bogus\n]", "invalid JSON token", "3:3"},
		{"[\n  1,\n  falsy\n]", "invalid JSON literal", "3:7"},
	}

	for _, test := range tests {
		r := ejson.NewReader(strings.NewReader(test.input))
		var last ejson.Notation
		for {
			n, ok := r.ReadNext()
			if !ok {
				break
			}
			last = n
		}
		if last != ejson.Error {
			t.Errorf("Input: %#q: got %v, want %v", test.input, last, ejson.Error)
			continue
		}

		// The reader must be stuck after delivering the error.
		if n, ok := r.ReadNext(); n != ejson.Error || ok {
			t.Errorf("Input: %#q: ReadNext after error: got (%v, %v), want (%v, false)",
				test.input, n, ok, ejson.Error)
		}

		err := r.Err()
		if err == nil {
			t.Errorf("Input: %#q: Err: got nil, want error", test.input)
			continue
		}
		if !strings.Contains(err.Error(), test.wantMsg) {
			t.Errorf("Input: %#q\nError: %v\nWant substring: %#q", test.input, err, test.wantMsg)
		}
		serr, ok := err.(*ejson.SyntaxError)
		if !ok {
			t.Errorf("Input: %#q: error has type %T, want *ejson.SyntaxError", test.input, err)
			continue
		}
		if test.wantLoc != "" && serr.Location.String() != test.wantLoc {
			t.Errorf("Input: %#q: location: got %v, want %v", test.input, serr.Location, test.wantLoc)
		}
	}
}

func TestReadNext_cleanEnd(t *testing.T) {
	r := ejson.NewReader(strings.NewReader("[] \n "))
	for i := 0; i < 2; i++ {
		if _, ok := r.ReadNext(); !ok {
			t.Fatalf("ReadNext failed: %v", r.Err())
		}
	}
	for i := 0; i < 3; i++ {
		if n, ok := r.ReadNext(); n != ejson.Invalid || ok {
			t.Errorf("ReadNext at end: got (%v, %v), want (%v, false)", n, ok, ejson.Invalid)
		}
	}
	if err := r.Err(); err != nil {
		t.Errorf("Err after clean end: got %v, want nil", err)
	}
}

func TestReader_skip(t *testing.T) {
	t.Run("Object", func(t *testing.T) {
		r := ejson.NewReader(strings.NewReader(`{"a":{"x":[1,2],"y":{}},"b":3}`))
		mustRead(t, r, ejson.ObjectStart)
		mustRead(t, r, ejson.ObjectStart) // the value of "a"
		if !r.SkipObject() {
			t.Fatalf("SkipObject failed: %v", r.Err())
		}
		mustRead(t, r, ejson.Number)
		if id := r.Identifier(); id != "b" {
			t.Errorf("Identifier: got %q, want %q", id, "b")
		}
		if v := r.NumberValue(); v != 3 {
			t.Errorf("NumberValue: got %v, want 3", v)
		}
		mustRead(t, r, ejson.ObjectEnd)
	})

	t.Run("Array", func(t *testing.T) {
		r := ejson.NewReader(strings.NewReader(`[[1,[2]],5]`))
		mustRead(t, r, ejson.ArrayStart)
		mustRead(t, r, ejson.ArrayStart) // the inner array
		if !r.SkipArray() {
			t.Fatalf("SkipArray failed: %v", r.Err())
		}
		mustRead(t, r, ejson.Number)
		if v := r.NumberValue(); v != 5 {
			t.Errorf("NumberValue: got %v, want 5", v)
		}
		mustRead(t, r, ejson.ArrayEnd)
	})

	t.Run("Error", func(t *testing.T) {
		r := ejson.NewReader(strings.NewReader(`[[1,`))
		mustRead(t, r, ejson.ArrayStart)
		mustRead(t, r, ejson.ArrayStart)
		if r.SkipArray() {
			t.Error("SkipArray on truncated input: got true, want false")
		}
		if r.Err() == nil {
			t.Error("Err after failed skip: got nil, want error")
		}
	})
}

func TestReader_close(t *testing.T) {
	r := ejson.NewReader(strings.NewReader("[]"))
	if err := r.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if n, ok := r.ReadNext(); n != ejson.Error || !ok {
		t.Errorf("ReadNext after close: got (%v, %v), want (%v, true)", n, ok, ejson.Error)
	}
	if err := r.Err(); err == nil || !strings.Contains(err.Error(), "closed") {
		t.Errorf("Err after close: got %v, want closed-reader error", err)
	}
}

func mustRead(t *testing.T, r *ejson.Reader, want ejson.Notation) {
	t.Helper()
	n, ok := r.ReadNext()
	if !ok {
		t.Fatalf("ReadNext failed: %v", r.Err())
	}
	if n != want {
		t.Fatalf("ReadNext: got %v, want %v", n, want)
	}
}
