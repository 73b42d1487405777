// This file is part of Glimmer.
//
// Glimmer is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Glimmer is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Glimmer.  If not, see <https://www.gnu.org/licenses/>.

// Package values defines the dynamically-typed value representation shared
// by the virtual machine and the object model.
//
// A Value is a small tagged union: undefined, null, boolean, double
// precision number, immutable string, or a handle into the script object
// arena. Coercion between the kinds follows the rules of the emulated
// dialect; the coercion functions in this package handle every case that
// does not require consulting an object (an object's valueOf/toString is
// the interpreter's business).
package values

import "github.com/glimmerproject/glimmer/player/arena"

// Kind enumerates the possible types of a Value.
type Kind int

// List of valid Kind values.
const (
	KindUndefined Kind = iota
	KindNull
	KindBoolean
	KindNumber
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Value is one dynamically-typed value. The zero value is undefined.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	obj  arena.Handle
}

// Undefined returns the undefined value.
func Undefined() Value {
	return Value{kind: KindUndefined}
}

// Null returns the null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Boolean wraps a bool.
func Boolean(b bool) Value {
	return Value{kind: KindBoolean, b: b}
}

// Number wraps a float64.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// String wraps a string.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Object wraps a handle into the script object arena.
func Object(h arena.Handle) Value {
	return Value{kind: KindObject, obj: h}
}

// Kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsUndefined is true for the undefined value.
func (v Value) IsUndefined() bool {
	return v.kind == KindUndefined
}

// IsObject is true for object values.
func (v Value) IsObject() bool {
	return v.kind == KindObject
}

// ObjectHandle returns the arena handle of an object value. The null handle
// is returned for every other kind.
func (v Value) ObjectHandle() arena.Handle {
	if v.kind != KindObject {
		return arena.Null
	}
	return v.obj
}
