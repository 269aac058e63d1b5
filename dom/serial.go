// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

import "github.com/ejson-go/ejson"

// Deserialize consumes the value at the front of r and returns it as a
// tree. It returns Null if reading fails; the reader's Err method reports
// the reason. The reader is closed before Deserialize returns.
//
// The tree is built iteratively with an explicit stack of open containers,
// so input depth is bounded by memory rather than the goroutine stack.
func Deserialize(r *ejson.Reader) Value {
	defer r.Close()

	var root Value
	var stack []frame
	var cur frame
	for {
		n, ok := r.ReadNext()
		if !ok {
			if r.Err() != nil {
				return Null
			}
			return root
		}
		switch n {
		case ejson.ObjectStart:
			obj := NewObject()
			cur.attach(&root, r.Identifier(), ObjectValue(obj))
			stack = append(stack, cur)
			cur = frame{obj: obj}
		case ejson.ArrayStart:
			arr := NewArray()
			cur.attach(&root, r.Identifier(), ArrayValue(arr))
			stack = append(stack, cur)
			cur = frame{arr: arr}
		case ejson.ObjectEnd, ejson.ArrayEnd:
			cur = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		case ejson.String:
			cur.attach(&root, r.Identifier(), String(r.StringValue()))
		case ejson.Number:
			cur.attach(&root, r.Identifier(), Number(r.NumberValue()))
		case ejson.Boolean:
			cur.attach(&root, r.Identifier(), Bool(r.BoolValue()))
		case ejson.Null:
			cur.attach(&root, r.Identifier(), Null)
		default: // ejson.Error
			return Null
		}
	}
}

// DeserializeArray consumes the value at the front of r and returns it as
// an array. It returns the frozen EmptyArray if reading fails or the root
// value is not an array. The reader is closed before DeserializeArray
// returns.
func DeserializeArray(r *ejson.Reader) *Array {
	v := Deserialize(r)
	if v.Kind() != KindArray {
		return EmptyArray
	}
	return v.AsArray()
}

// DeserializeObject consumes the value at the front of r and returns it as
// an object. It returns the frozen EmptyObject if reading fails or the root
// value is not an object. The reader is closed before DeserializeObject
// returns.
func DeserializeObject(r *ejson.Reader) *Object {
	v := Deserialize(r)
	if v.Kind() != KindObject {
		return EmptyObject
	}
	return v.AsObject()
}

// A frame is one open container during deserialization. A frame with
// neither field set is the root position.
type frame struct {
	arr *Array
	obj *Object
}

// attach adds v to the open container of f, under id inside an object, or
// records it as the root when no container is open. Stream-built trees
// cannot alias, so attachment bypasses the reachability check.
func (f frame) attach(root *Value, id string, v Value) {
	switch {
	case f.obj != nil:
		f.obj.put(id, v)
	case f.arr != nil:
		f.arr.push(v)
	default:
		*root = v
	}
}

// Serialize writes v to w and reports whether the whole value was written.
// It traverses the tree iteratively with an explicit work stack, keeping
// the set of containers currently open on the output; revisiting one means
// the value is cyclic, and serialization aborts with nothing further
// written. Shared acyclic subtrees are written once per occurrence.
//
// The writer is not flushed or closed; that is the caller's concern.
func Serialize(v Value, w *ejson.Writer) bool {
	type item struct {
		v     Value
		id    string
		hasID bool
		close bool
	}
	open := make(map[any]bool)
	stack := []item{{v: v}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.close {
			if it.v.kind == KindObject {
				w.EndObject()
				delete(open, it.v.obj)
			} else {
				w.EndArray()
				delete(open, it.v.arr)
			}
			continue
		}

		switch it.v.kind {
		case KindNull:
			if it.hasID {
				w.WriteNullField(it.id)
			} else {
				w.WriteNull()
			}
		case KindBoolean:
			if it.hasID {
				w.WriteBoolField(it.id, it.v.b)
			} else {
				w.WriteBool(it.v.b)
			}
		case KindNumber:
			if it.hasID {
				w.WriteNumberField(it.id, it.v.num)
			} else {
				w.WriteNumber(it.v.num)
			}
		case KindString:
			if it.hasID {
				w.WriteStringField(it.id, it.v.str)
			} else {
				w.WriteString(it.v.str)
			}
		case KindArray:
			a := it.v.arr
			if open[a] {
				return false
			}
			open[a] = true
			if it.hasID {
				w.BeginArrayField(it.id)
			} else {
				w.BeginArray()
			}
			stack = append(stack, item{v: it.v, close: true})
			for i := len(a.values) - 1; i >= 0; i-- {
				stack = append(stack, item{v: a.values[i]})
			}
		case KindObject:
			o := it.v.obj
			if open[o] {
				return false
			}
			open[o] = true
			if it.hasID {
				w.BeginObjectField(it.id)
			} else {
				w.BeginObject()
			}
			stack = append(stack, item{v: it.v, close: true})
			for i := len(o.fields) - 1; i >= 0; i-- {
				f := o.fields[i]
				stack = append(stack, item{v: f.value, id: f.key, hasID: true})
			}
		}
	}
	return true
}

// SerializeArray writes a to w as an array value.
func SerializeArray(a *Array, w *ejson.Writer) bool { return Serialize(ArrayValue(a), w) }

// SerializeObject writes o to w as an object value.
func SerializeObject(o *Object, w *ejson.Writer) bool { return Serialize(ObjectValue(o), w) }
