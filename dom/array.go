// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package dom

// An Array is an ordered, mutable sequence of values. The zero Array is
// empty and ready for use.
//
// Mutators report whether the array was modified. A mutation is refused when
// the array is frozen, an index is out of range, or the insertion would make
// a container reachable from itself.
type Array struct {
	values []Value
	frozen bool
}

// EmptyArray is a frozen array with no elements. All its mutators report
// false without effect.
var EmptyArray = &Array{frozen: true}

// NewArray constructs a mutable array holding the given values.
func NewArray(vs ...Value) *Array {
	a := new(Array)
	a.values = append(a.values, vs...)
	return a
}

// NewArrayOf constructs a mutable shallow copy of a. Copying a frozen array
// yields an ordinary mutable one.
func NewArrayOf(a *Array) *Array {
	out := new(Array)
	out.values = append(out.values, a.values...)
	return out
}

// Len reports the number of elements in a.
func (a *Array) Len() int { return len(a.values) }

// IsEmpty reports whether a has no elements.
func (a *Array) IsEmpty() bool { return len(a.values) == 0 }

// Get returns the element at index i, or Null if i is out of range.
func (a *Array) Get(i int) Value {
	if i < 0 || i >= len(a.values) {
		return Null
	}
	return a.values[i]
}

// Values returns a copy of the elements of a in order.
func (a *Array) Values() []Value {
	if len(a.values) == 0 {
		return nil
	}
	out := make([]Value, len(a.values))
	copy(out, a.values)
	return out
}

// Add appends v to a.
func (a *Array) Add(v Value) bool {
	if a.frozen || v.reaches(a) {
		return false
	}
	a.values = append(a.values, v)
	return true
}

// Set replaces the element at index i with v.
func (a *Array) Set(i int, v Value) bool {
	if a.frozen || i < 0 || i >= len(a.values) || v.reaches(a) {
		return false
	}
	a.values[i] = v
	return true
}

// Remove deletes the element at index i, shifting later elements down.
func (a *Array) Remove(i int) bool {
	if a.frozen || i < 0 || i >= len(a.values) {
		return false
	}
	a.values = append(a.values[:i], a.values[i+1:]...)
	return true
}

// Clear removes all elements of a.
func (a *Array) Clear() bool {
	if a.frozen {
		return false
	}
	a.values = a.values[:0]
	return true
}

// Equal reports whether a and b hold equal values in the same order.
func (a *Array) Equal(b *Array) bool {
	if a == b {
		return true
	}
	if len(a.values) != len(b.values) {
		return false
	}
	for i, v := range a.values {
		if !v.Equal(b.values[i]) {
			return false
		}
	}
	return true
}

// push appends without the reachability check, for trees built from a
// stream where no aliasing is possible.
func (a *Array) push(v Value) { a.values = append(a.values, v) }
