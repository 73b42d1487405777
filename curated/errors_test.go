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

package curated_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/test"
)

const testError = "test error: %s"
const wrapError = "wrap error: %v"

func TestIs(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	test.ExpectedSuccess(t, curated.IsAny(e))
	test.ExpectedSuccess(t, curated.Is(e, testError))
	test.ExpectedFailure(t, curated.Is(e, wrapError))

	// a plain error is not curated
	test.ExpectedFailure(t, curated.IsAny(nil))
}

func TestHas(t *testing.T) {
	e := curated.Errorf(testError, "foo")
	f := curated.Errorf(wrapError, e)

	// Is() matches only the head of the chain
	test.ExpectedFailure(t, curated.Is(f, testError))
	test.ExpectedSuccess(t, curated.Is(f, wrapError))

	// Has() matches anywhere in the chain
	test.ExpectedSuccess(t, curated.Has(f, testError))
	test.ExpectedSuccess(t, curated.Has(f, wrapError))
}

func TestDeduplication(t *testing.T) {
	e := curated.Errorf("error: %v", curated.Errorf("error: %v", "foo"))
	test.Equate(t, e.Error(), "error: foo")
}
