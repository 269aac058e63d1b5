// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ejson implements a streaming JSON reader and writer.
//
// # Reading
//
// The Reader type implements a pull parser for JSON.  Construct a reader
// from an io.Reader and call its ReadNext method to iterate over the parse
// events of the input. ReadNext advances by one notation and reports whether
// the loop should continue:
//
//	r := ejson.NewReader(input)
//	for {
//	   n, ok := r.ReadNext()
//	   if !ok {
//	      break
//	   }
//	   log.Printf("Next notation: %v", n)
//	}
//	if err := r.Err(); err != nil {
//	   log.Fatalf("Reading failed: %v", err)
//	}
//
// After ReadNext returns a value notation, the accessors Identifier,
// StringValue, NumberValue and BoolValue report the corresponding data. The
// first error is delivered as an Error notation with a true flag so the
// caller observes it; thereafter the reader is stuck and every call returns
// (Error, false). A clean end of input returns (Invalid, false) with a nil
// Err. In case of error, Err has concrete type *ejson.SyntaxError and
// carries the line and column of the failure.
//
// The reader enforces the JSON grammar: the root value must be an object or
// an array, brackets must balance, and no input other than whitespace may
// follow the root.
//
// # Writing
//
// The Writer type emits JSON text element by element. Construct a writer
// from an io.Writer and a PrintPolicy, then call its Begin/End and Write
// methods; the writer inserts commas and delegates the remaining whitespace
// to the policy:
//
//	w := ejson.NewWriter(output, ejson.CompactPolicy{})
//	w.BeginObject()
//	w.WriteStringField("name", "value")
//	w.EndObject()
//	if err := w.Close(); err != nil {
//	   log.Fatalf("Writing failed: %v", err)
//	}
//
// A call that is not legal in the writer's current state is silently
// ignored, so a misused writer produces incomplete output rather than
// malformed output.
//
// # Print policies
//
// A PrintPolicy decides the whitespace written before each output element.
// Two policies are provided: CompactPolicy emits no whitespace, and
// PrettyPolicy produces an indented multi-line layout. Custom layouts
// implement the PrintPolicy interface.
//
// # Values
//
// The dom subpackage defines an in-memory representation of JSON values and
// a Serializer connecting it to the Reader and Writer of this package.
package ejson
