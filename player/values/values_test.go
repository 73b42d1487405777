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

package values_test

import (
	"math"
	"testing"

	"github.com/glimmerproject/glimmer/player/values"
	"github.com/glimmerproject/glimmer/test"
)

func TestToNumber(t *testing.T) {
	test.Equate(t, values.Undefined().ToNumber(), math.NaN())
	test.Equate(t, values.Null().ToNumber(), 0)
	test.Equate(t, values.Boolean(true).ToNumber(), 1)
	test.Equate(t, values.String("12.5").ToNumber(), 12.5)
	test.Equate(t, values.String("  3 ").ToNumber(), 3)
	test.Equate(t, values.String("").ToNumber(), 0)
	test.Equate(t, values.String("twelve").ToNumber(), math.NaN())
}

func TestToString(t *testing.T) {
	test.Equate(t, values.Undefined().ToString(), "undefined")
	test.Equate(t, values.Null().ToString(), "null")
	test.Equate(t, values.Number(5).ToString(), "5")
	test.Equate(t, values.Number(1.25).ToString(), "1.25")
	test.Equate(t, values.Number(math.NaN()).ToString(), "NaN")
	test.Equate(t, values.Number(math.Inf(-1)).ToString(), "-Infinity")
}

func TestToBoolean(t *testing.T) {
	test.Equate(t, values.Undefined().ToBoolean(), false)
	test.Equate(t, values.Null().ToBoolean(), false)
	test.Equate(t, values.Number(0).ToBoolean(), false)
	test.Equate(t, values.Number(math.NaN()).ToBoolean(), false)
	test.Equate(t, values.Number(-1).ToBoolean(), true)
	test.Equate(t, values.String("").ToBoolean(), false)
	test.Equate(t, values.String("0").ToBoolean(), true)
}

func TestInt32Wraparound(t *testing.T) {
	// 2^32-1 expressed as a double wraps to -1 as a signed 32-bit integer
	test.Equate(t, int(values.Number(4294967295).ToInt32()), -1)
	test.Equate(t, values.Number(4294967295).ToUint32(), uint32(4294967295))

	// truncation is toward zero
	test.Equate(t, int(values.Number(-1.9).ToInt32()), -1)

	// non-finite numbers coerce to zero
	test.Equate(t, int(values.Number(math.NaN()).ToInt32()), 0)
	test.Equate(t, int(values.Number(math.Inf(1)).ToInt32()), 0)

	// 2^32+5 wraps to 5
	test.Equate(t, int(values.Number(4294967301).ToInt32()), 5)
}

func TestEquals(t *testing.T) {
	test.ExpectedSuccess(t, values.Equals(values.Undefined(), values.Null()))
	test.ExpectedSuccess(t, values.Equals(values.Number(5), values.String("5")))
	test.ExpectedSuccess(t, values.Equals(values.Boolean(true), values.Number(1)))
	test.ExpectedFailure(t, values.Equals(values.Number(math.NaN()), values.Number(math.NaN())))
	test.ExpectedFailure(t, values.Equals(values.String("foo"), values.Number(0)))

	test.ExpectedFailure(t, values.StrictEquals(values.Number(5), values.String("5")))
	test.ExpectedFailure(t, values.StrictEquals(values.Undefined(), values.Null()))
	test.ExpectedSuccess(t, values.StrictEquals(values.String("a"), values.String("a")))
}

func TestLess(t *testing.T) {
	// both strings: lexicographic
	r, ok := values.Less(values.String("apple"), values.String("banana"))
	test.ExpectedSuccess(t, ok)
	test.ExpectedSuccess(t, r)

	// string of digits against a number: numeric
	r, ok = values.Less(values.String("10"), values.Number(9))
	test.ExpectedSuccess(t, ok)
	test.ExpectedFailure(t, r)

	// NaN operand: result is undefined
	_, ok = values.Less(values.Number(math.NaN()), values.Number(1))
	test.ExpectedFailure(t, ok)
}
