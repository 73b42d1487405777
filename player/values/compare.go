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

package values

import "math"

// Equals implements the abstract (coercing) equality of the emulated
// dialect. Object values compare by handle; an object compared against a
// primitive is unequal at this level, the interpreter having already
// substituted the object's primitive form where the dialect requires it.
func Equals(a, b Value) bool {
	if a.kind == b.kind {
		switch a.kind {
		case KindUndefined, KindNull:
			return true
		case KindBoolean:
			return a.b == b.b
		case KindNumber:
			return a.num == b.num // NaN is unequal to itself
		case KindString:
			return a.str == b.str
		case KindObject:
			return a.obj == b.obj
		}
		return false
	}

	// undefined and null are equal to each other and nothing else
	aNil := a.kind == KindUndefined || a.kind == KindNull
	bNil := b.kind == KindUndefined || b.kind == KindNull
	if aNil || bNil {
		return aNil && bNil
	}

	if a.kind == KindObject || b.kind == KindObject {
		return false
	}

	// mixed primitive kinds compare numerically
	x := a.ToNumber()
	y := b.ToNumber()
	return x == y
}

// StrictEquals is equality without coercion.
func StrictEquals(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	return Equals(a, b)
}

// Less implements the ordering comparison. When both operands are strings
// the comparison is lexicographic; otherwise both are coerced to numbers.
// The second return value is false when the result is undefined (a NaN
// operand).
func Less(a, b Value) (bool, bool) {
	if a.kind == KindString && b.kind == KindString {
		return a.str < b.str, true
	}

	x := a.ToNumber()
	y := b.ToNumber()
	if math.IsNaN(x) || math.IsNaN(y) {
		return false, false
	}
	return x < y, true
}
