// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package dom defines an in-memory representation of JSON values and a
// serializer connecting it to the ejson reader and writer.
//
// A Value is a tagged union over the six JSON types. Scalar values are
// immutable; arrays and objects are mutable reference types whose mutators
// preserve the tree invariant, refusing any insertion that would make a
// container reachable from itself.
package dom

import (
	"fmt"
	"strings"

	"github.com/ejson-go/ejson"
)

// Kind enumerates the JSON types a Value can hold.
type Kind byte

const (
	KindNull Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindStr = [...]string{
	KindNull: "null", KindBoolean: "boolean", KindNumber: "number",
	KindString: "string", KindArray: "array", KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindStr) {
		return kindStr[k]
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// A Value is a single JSON value of any type. The zero Value is null.
// Values are comparable only through Equal, not ==.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	arr  *Array
	obj  *Object
}

// Singleton values for the JSON constants.
var (
	Null  = Value{}
	True  = Value{kind: KindBoolean, b: true}
	False = Value{kind: KindBoolean}
)

// Bool constructs a boolean Value.
func Bool(v bool) Value { return Value{kind: KindBoolean, b: v} }

// Number constructs a numeric Value.
func Number(v float64) Value { return Value{kind: KindNumber, num: v} }

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// ArrayValue wraps a in a Value. A nil a yields the frozen EmptyArray.
func ArrayValue(a *Array) Value {
	if a == nil {
		a = EmptyArray
	}
	return Value{kind: KindArray, arr: a}
}

// ObjectValue wraps o in a Value. A nil o yields the frozen EmptyObject.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = EmptyObject
	}
	return Value{kind: KindObject, obj: o}
}

// ValueOf constructs a Value from a plain Go value. It accepts nil, bool,
// string, the integer and float types, Value, *Array, *Object, []any and
// map[string]any, and panics for any other type.
func ValueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int8:
		return Number(float64(t))
	case int16:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case uint:
		return Number(float64(t))
	case uint8:
		return Number(float64(t))
	case uint16:
		return Number(float64(t))
	case uint32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case Value:
		return t
	case *Array:
		return ArrayValue(t)
	case *Object:
		return ObjectValue(t)
	case []any:
		a := NewArray()
		for _, e := range t {
			a.values = append(a.values, ValueOf(e))
		}
		return ArrayValue(a)
	case map[string]any:
		o := NewObject()
		for k, e := range t {
			o.put(k, ValueOf(e))
		}
		return ObjectValue(o)
	default:
		panic(fmt.Sprintf("unsupported value type %T", v))
	}
}

// Kind reports the JSON type of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean held by v, or false if v is not a boolean.
func (v Value) AsBool() bool { return v.kind == KindBoolean && v.b }

// AsNumber returns the number held by v, or 0 if v is not a number.
func (v Value) AsNumber() float64 {
	if v.kind == KindNumber {
		return v.num
	}
	return 0
}

// AsString returns the string held by v, or "" if v is not a string.
func (v Value) AsString() string {
	if v.kind == KindString {
		return v.str
	}
	return ""
}

// AsArray returns the array held by v, or the frozen EmptyArray if v is not
// an array.
func (v Value) AsArray() *Array {
	if v.kind == KindArray {
		return v.arr
	}
	return EmptyArray
}

// AsObject returns the object held by v, or the frozen EmptyObject if v is
// not an object.
func (v Value) AsObject() *Object {
	if v.kind == KindObject {
		return v.obj
	}
	return EmptyObject
}

// Equal reports whether v and u denote equal JSON values. Containers are
// compared structurally; object member order does not affect equality.
func (v Value) Equal(u Value) bool {
	if v.kind != u.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBoolean:
		return v.b == u.b
	case KindNumber:
		return v.num == u.num
	case KindString:
		return v.str == u.str
	case KindArray:
		return v.arr.Equal(u.arr)
	case KindObject:
		return v.obj.Equal(u.obj)
	}
	return false
}

// String renders v as compact JSON text.
func (v Value) String() string {
	var sb strings.Builder
	w := ejson.NewWriter(&sb, ejson.CompactPolicy{})
	Serialize(v, w)
	w.Close()
	return sb.String()
}

// reaches reports whether the container target is reachable from v,
// counting v itself. Shared subtrees are visited once.
func (v Value) reaches(target any) bool {
	stack := []Value{v}
	var visited map[any]bool
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch cur.kind {
		case KindArray:
			if cur.arr == target {
				return true
			}
			if visited[cur.arr] {
				continue
			}
			if visited == nil {
				visited = make(map[any]bool)
			}
			visited[cur.arr] = true
			stack = append(stack, cur.arr.values...)
		case KindObject:
			if cur.obj == target {
				return true
			}
			if visited[cur.obj] {
				continue
			}
			if visited == nil {
				visited = make(map[any]bool)
			}
			visited[cur.obj] = true
			for _, f := range cur.obj.fields {
				stack = append(stack, f.value)
			}
		}
	}
	return false
}
