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

package arena_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/test"
)

func TestNullHandle(t *testing.T) {
	tb := arena.NewTable()
	test.ExpectedSuccess(t, arena.Null.IsNull())
	test.ExpectedFailure(t, tb.Check(arena.Null))
}

func TestAllocCheck(t *testing.T) {
	tb := arena.NewTable()

	h := tb.Alloc()
	test.ExpectedFailure(t, h.IsNull())
	test.ExpectedSuccess(t, tb.Check(h))
	test.Equate(t, tb.Live(), 1)

	idx, ok := tb.Index(h)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, idx, 0)
}

func TestSweepInvalidatesHandles(t *testing.T) {
	tb := arena.NewTable()
	h := tb.Alloc()

	tb.ClearMarks()
	// nothing marked: h is unreachable
	freed := 0
	tb.Sweep(func(idx int) { freed++ })
	test.Equate(t, freed, 1)
	test.ExpectedFailure(t, tb.Check(h))
	test.Equate(t, tb.Live(), 0)

	// the slot is reused but the stale handle still fails the check
	h2 := tb.Alloc()
	test.ExpectedSuccess(t, tb.Check(h2))
	test.ExpectedFailure(t, tb.Check(h))
}

func TestMarkedSlotSurvives(t *testing.T) {
	tb := arena.NewTable()
	a := tb.Alloc()
	b := tb.Alloc()

	tb.ClearMarks()
	test.ExpectedSuccess(t, tb.Mark(a))
	// marking twice reports not-newly-marked, cutting off cycles
	test.ExpectedFailure(t, tb.Mark(a))

	tb.Sweep(nil)
	test.ExpectedSuccess(t, tb.Check(a))
	test.ExpectedFailure(t, tb.Check(b))
}

func TestWeakReferencesDelayReuse(t *testing.T) {
	tb := arena.NewTable()
	h := tb.Alloc()
	test.ExpectedSuccess(t, tb.Acquire(h))

	tb.ClearMarks()
	tb.Sweep(nil)

	// swept: the handle is stale immediately
	test.ExpectedFailure(t, tb.Check(h))

	// but the slot must not be reused while the weak reference remains
	h2 := tb.Alloc()
	idx2, ok := tb.Index(h2)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, idx2, 1)

	// releasing the weak reference frees the slot for reuse
	tb.Release(h)
	h3 := tb.Alloc()
	idx3, ok := tb.Index(h3)
	test.ExpectedSuccess(t, ok)
	test.Equate(t, idx3, 0)
}
