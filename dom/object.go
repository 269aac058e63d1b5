// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

// An Object is a mutable mapping from member keys to values that preserves
// insertion order. The zero Object is empty and ready for use. The empty
// string is a legal key.
//
// Mutators report whether the object was modified. A mutation is refused
// when the object is frozen or the insertion would make a container
// reachable from itself.
type Object struct {
	index  map[string]int
	fields []field
	frozen bool
}

type field struct {
	key   string
	value Value
}

// EmptyObject is a frozen object with no members. All its mutators report
// false without effect.
var EmptyObject = &Object{frozen: true}

// NewObject constructs an empty mutable object.
func NewObject() *Object { return new(Object) }

// NewObjectFrom constructs a mutable shallow copy of o, preserving member
// order. Copying a frozen object yields an ordinary mutable one.
func NewObjectFrom(o *Object) *Object {
	out := new(Object)
	for _, f := range o.fields {
		out.put(f.key, f.value)
	}
	return out
}

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.fields) }

// IsEmpty reports whether o has no members.
func (o *Object) IsEmpty() bool { return len(o.fields) == 0 }

// Has reports whether o has a member with the given key.
func (o *Object) Has(key string) bool {
	_, ok := o.index[key]
	return ok
}

// HasKind reports whether o has a member with the given key whose value is
// of kind k.
func (o *Object) HasKind(key string, k Kind) bool {
	i, ok := o.index[key]
	return ok && o.fields[i].value.kind == k
}

// Get returns the value of the member with the given key, or Null if no
// such member exists.
func (o *Object) Get(key string) Value {
	if i, ok := o.index[key]; ok {
		return o.fields[i].value
	}
	return Null
}

// Keys returns the member keys of o in insertion order.
func (o *Object) Keys() []string {
	if len(o.fields) == 0 {
		return nil
	}
	out := make([]string, len(o.fields))
	for i, f := range o.fields {
		out[i] = f.key
	}
	return out
}

// Set binds key to v, replacing an existing binding and otherwise appending
// a new member.
func (o *Object) Set(key string, v Value) bool {
	if o.frozen || v.reaches(o) {
		return false
	}
	o.put(key, v)
	return true
}

// SetIfAbsent binds key to v only when o has no member with that key.
func (o *Object) SetIfAbsent(key string, v Value) bool {
	if o.frozen || o.Has(key) || v.reaches(o) {
		return false
	}
	o.put(key, v)
	return true
}

// Remove deletes the member with the given key.
func (o *Object) Remove(key string) bool {
	if o.frozen {
		return false
	}
	i, ok := o.index[key]
	if !ok {
		return false
	}
	o.fields = append(o.fields[:i], o.fields[i+1:]...)
	delete(o.index, key)
	for j := i; j < len(o.fields); j++ {
		o.index[o.fields[j].key] = j
	}
	return true
}

// Clear removes all members of o.
func (o *Object) Clear() bool {
	if o.frozen {
		return false
	}
	o.fields = o.fields[:0]
	o.index = nil
	return true
}

// Equal reports whether o and p hold equal values under equal keys. Member
// order does not affect equality.
func (o *Object) Equal(p *Object) bool {
	if o == p {
		return true
	}
	if len(o.fields) != len(p.fields) {
		return false
	}
	for _, f := range o.fields {
		i, ok := p.index[f.key]
		if !ok || !f.value.Equal(p.fields[i].value) {
			return false
		}
	}
	return true
}

// put binds without the reachability check, for trees built from a stream
// where no aliasing is possible.
func (o *Object) put(key string, v Value) {
	if i, ok := o.index[key]; ok {
		o.fields[i].value = v
		return
	}
	if o.index == nil {
		o.index = make(map[string]int)
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, field{key: key, value: v})
}
