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

import (
	"math"
	"strconv"
	"strings"
)

// ToBoolean coerces the value for use in a branch condition.
func (v Value) ToBoolean() bool {
	switch v.kind {
	case KindBoolean:
		return v.b
	case KindNumber:
		return v.num != 0 && !math.IsNaN(v.num)
	case KindString:
		return v.str != ""
	case KindObject:
		return true
	}
	return false
}

// ToNumber coerces the value to a double precision number. An object value
// coerces to NaN at this level - the interpreter consults the object's
// valueOf before it gets here.
func (v Value) ToNumber() float64 {
	switch v.kind {
	case KindNull:
		return 0
	case KindBoolean:
		if v.b {
			return 1
		}
		return 0
	case KindNumber:
		return v.num
	case KindString:
		s := strings.TrimSpace(v.str)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	}
	return math.NaN()
}

// Float returns the raw number of a number value without coercion. Zero for
// every other kind.
func (v Value) Float() float64 {
	if v.kind != KindNumber {
		return 0
	}
	return v.num
}

// ToString coerces the value to a string. An object value gives the generic
// object string - the interpreter consults the object's toString before it
// gets here.
func (v Value) ToString() string {
	switch v.kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	case KindObject:
		return "[object Object]"
	}
	return ""
}

// FormatNumber converts a double to its script-visible string form.
func FormatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

const twoTo32 = 4294967296.0

// ToUint32 coerces the value to an unsigned 32-bit integer with the modulo
// semantics of the emulated dialect.
func (v Value) ToUint32() uint32 {
	f := v.ToNumber()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	f = math.Mod(f, twoTo32)
	if f < 0 {
		f += twoTo32
	}
	return uint32(f)
}

// ToInt32 coerces the value to a signed 32-bit integer. Out of range values
// wrap with two's-complement behaviour, matching the historical integer
// overflow wraparound.
func (v Value) ToInt32() int32 {
	return int32(v.ToUint32())
}
