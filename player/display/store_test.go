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

package display_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/display"
	"github.com/glimmerproject/glimmer/player/object"
	"github.com/glimmerproject/glimmer/player/values"
	"github.com/glimmerproject/glimmer/test"
)

func newTestStore() (*display.Store, *object.Store) {
	objs := object.NewStore()
	s := display.NewStore(objs)
	s.SetLibrary(map[movie.CharacterID]movie.Character{
		1: movie.Shape{ID: 1},
		2: movie.Shape{ID: 2},
		3: movie.Sprite{ID: 3, Frames: []movie.Frame{{}, {}}},
		4: movie.Text{ID: 4, Content: "hello"},
	})
	s.SetPrototypes(arena.Null, arena.Null, arena.Null)
	return s, objs
}

func place(t *testing.T, s *display.Store, parent arena.Handle, depth movie.Depth, id movie.CharacterID) arena.Handle {
	t.Helper()
	h, err := s.PlaceChild(parent, movie.PlaceObject{
		Depth: depth, HasCharacter: true, ID: id,
	})
	test.ExpectedSuccess(t, err)
	if h.IsNull() {
		t.Fatalf("placement returned the null handle")
	}
	return h
}

func TestPlaceAndRemove(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	a := place(t, s, root, 1, 1)
	b := place(t, s, root, 3, 2)

	children := s.Children(root)
	test.Equate(t, len(children), 2)
	test.Equate(t, children[0] == a, true)
	test.Equate(t, children[1] == b, true)

	// removing an empty depth is a no-op, not an error
	test.ExpectedSuccess(t, s.RemoveChild(root, 2))
	test.Equate(t, len(s.Children(root)), 2)

	test.ExpectedSuccess(t, s.RemoveChild(root, 1))
	test.Equate(t, s.Alive(a), false)
	test.Equate(t, len(s.Children(root)), 1)
}

func TestDepthUniqueness(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	// an arbitrary mix of placements, moves, removals and swaps. after every
	// operation each depth has at most one live occupant
	ops := []func(){
		func() { place(t, s, root, 1, 1) },
		func() { place(t, s, root, 2, 2) },
		func() { s.PlaceChild(root, movie.PlaceObject{Depth: 1, HasCharacter: true, ID: 2}) },
		func() { s.SwapDepths(root, 1, 2) },
		func() { s.RemoveChild(root, 2) },
		func() { place(t, s, root, 2, 3) },
		func() { s.SwapDepths(root, 2, 5) },
		func() { place(t, s, root, 2, 1) },
	}

	for i, op := range ops {
		op()
		seen := make(map[movie.Depth]bool)
		for _, h := range s.Children(root) {
			d := s.DepthOf(h)
			if seen[d] {
				t.Fatalf("after operation %d: two live children at depth %d", i, d)
			}
			seen[d] = true
		}
	}
}

func TestMoveVersusReplace(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	a := place(t, s, root, 1, 1)

	// a move with the same character adjusts the occupant in place
	h, err := s.PlaceChild(root, movie.PlaceObject{
		Depth: 1, HasCharacter: true, ID: 1, Move: true,
		HasMatrix: true, Matrix: movie.TranslateMatrix(10, 20),
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, h == a, true)
	test.Equate(t, s.MatrixOf(a).TX, float64(10))

	// a characterless move also adjusts in place
	h, err = s.PlaceChild(root, movie.PlaceObject{
		Depth: 1, Move: true, HasMatrix: true, Matrix: movie.TranslateMatrix(5, 5),
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, h == a, true)
	test.Equate(t, s.MatrixOf(a).TX, float64(5))

	// a characterless move of an empty depth does nothing
	h, err = s.PlaceChild(root, movie.PlaceObject{Depth: 9, Move: true})
	test.ExpectedSuccess(t, err)
	test.Equate(t, h.IsNull(), true)

	// placing a different character replaces the occupant
	h, err = s.PlaceChild(root, movie.PlaceObject{
		Depth: 1, HasCharacter: true, ID: 2, Move: true,
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, h == a, false)
	test.Equate(t, s.Alive(a), false)
	test.Equate(t, s.Alive(h), true)
}

func TestRepeatPlacementAdjustsInPlace(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	clip := place(t, s, root, 2, 3)
	s.SetCursor(clip, 1)

	// a looping timeline re-runs its placement tags verbatim. the repeat
	// placement is not a move but it names the occupant's character, so the
	// occupant is adjusted rather than re-instantiated
	h, err := s.PlaceChild(root, movie.PlaceObject{
		Depth: 2, HasCharacter: true, ID: 3,
		HasMatrix: true, Matrix: movie.TranslateMatrix(30, 0),
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, h == clip, true)
	test.Equate(t, s.Alive(clip), true)
	test.Equate(t, s.Cursor(clip), 1)
	test.Equate(t, s.MatrixOf(clip).TX, float64(30))
}

func TestRemovalDetachesBinding(t *testing.T) {
	s, objs := newTestStore()
	root := s.NewRoot(nil)

	a := place(t, s, root, 1, 1)
	binding := s.Binding(a)

	v, err := objs.GetProperty(binding, "_name")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v.ToString(), "")

	test.ExpectedSuccess(t, s.RemoveChild(root, 1))

	// the binding object still exists but reports detachment
	_, err = objs.GetProperty(binding, "_x")
	test.ExpectedFailure(t, err)
	if !curated.Is(err, object.DetachedObject) {
		t.Fatalf("expected a detached object error, got: %v", err)
	}
}

func TestRemovalDetachesSubtree(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	clip := place(t, s, root, 1, 3)
	inner := place(t, s, clip, 1, 1)

	test.ExpectedSuccess(t, s.RemoveChild(root, 1))
	test.Equate(t, s.Alive(clip), false)
	test.Equate(t, s.Alive(inner), false)
}

func TestSwapDepths(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	a := place(t, s, root, 1, 1)
	b := place(t, s, root, 2, 2)

	test.ExpectedSuccess(t, s.SwapDepths(root, 1, 2))
	test.Equate(t, int(s.DepthOf(a)), 2)
	test.Equate(t, int(s.DepthOf(b)), 1)

	children := s.Children(root)
	test.Equate(t, children[0] == b, true)
	test.Equate(t, children[1] == a, true)

	// swapping with an empty depth moves the single occupant
	test.ExpectedSuccess(t, s.SwapDepths(root, 1, 7))
	test.Equate(t, int(s.DepthOf(b)), 7)
}

func TestFindByName(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	a, err := s.PlaceChild(root, movie.PlaceObject{
		Depth: 1, HasCharacter: true, ID: 1, Name: "left",
	})
	test.ExpectedSuccess(t, err)
	_, err = s.PlaceChild(root, movie.PlaceObject{
		Depth: 2, HasCharacter: true, ID: 2, Name: "right",
	})
	test.ExpectedSuccess(t, err)

	h, ok := s.FindByName(root, "left")
	test.ExpectedSuccess(t, ok)
	test.Equate(t, h == a, true)

	_, ok = s.FindByName(root, "missing")
	test.ExpectedFailure(t, ok)
}

func TestBindingProperties(t *testing.T) {
	s, objs := newTestStore()
	root := s.NewRoot([]movie.Frame{{}, {}, {}})

	a := place(t, s, root, 1, 3)
	binding := s.Binding(a)

	test.ExpectedSuccess(t, objs.SetProperty(binding, "_x", values.Number(42)))
	test.Equate(t, s.MatrixOf(a).TX, float64(42))

	v, err := objs.GetProperty(binding, "_x")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v.ToNumber(), float64(42))

	// frame numbers are one-based on the script side
	s.SetCursor(a, 0)
	v, err = objs.GetProperty(binding, "_currentframe")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v.ToNumber(), float64(1))

	v, err = objs.GetProperty(binding, "_totalframes")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v.ToNumber(), float64(2))

	// _parent resolves to the root's binding
	v, err = objs.GetProperty(binding, "_parent")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v.IsObject(), true)
	test.Equate(t, v.ObjectHandle() == s.Binding(root), true)

	// read-only properties swallow writes
	test.ExpectedSuccess(t, objs.SetProperty(binding, "_totalframes", values.Number(99)))
	v, _ = objs.GetProperty(binding, "_totalframes")
	test.Equate(t, v.ToNumber(), float64(2))

	// ordinary expando properties still work alongside the native ones
	test.ExpectedSuccess(t, objs.SetProperty(binding, "score", values.Number(7)))
	v, err = objs.GetProperty(binding, "score")
	test.ExpectedSuccess(t, err)
	test.Equate(t, v.ToNumber(), float64(7))
}

func TestSnapshotOrderAndTransforms(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	clip, err := s.PlaceChild(root, movie.PlaceObject{
		Depth: 2, HasCharacter: true, ID: 3,
		HasMatrix: true, Matrix: movie.TranslateMatrix(100, 0),
	})
	test.ExpectedSuccess(t, err)
	_, err = s.PlaceChild(clip, movie.PlaceObject{
		Depth: 1, HasCharacter: true, ID: 1,
		HasMatrix: true, Matrix: movie.TranslateMatrix(10, 10),
	})
	test.ExpectedSuccess(t, err)
	place(t, s, root, 1, 2)

	snap := s.Snapshot()
	test.Equate(t, len(snap), 2)

	// depth 1 shape first, then the clip's child with concatenated transform
	test.Equate(t, int(snap[0].Character), 2)
	test.Equate(t, int(snap[1].Character), 1)
	test.Equate(t, snap[1].Matrix.TX, float64(110))
	test.Equate(t, snap[1].Matrix.TY, float64(10))
}

func TestSnapshotSkipsInvisibleAndRemoved(t *testing.T) {
	s, objs := newTestStore()
	root := s.NewRoot(nil)

	a := place(t, s, root, 1, 1)
	place(t, s, root, 2, 2)

	test.ExpectedSuccess(t, objs.SetProperty(s.Binding(a), "_visible", values.Boolean(false)))
	snap := s.Snapshot()
	test.Equate(t, len(snap), 1)
	test.Equate(t, int(snap[0].Character), 2)

	test.ExpectedSuccess(t, s.RemoveChild(root, 2))
	test.Equate(t, len(s.Snapshot()), 0)
}

func TestCompactReclaimsRemoved(t *testing.T) {
	s, _ := newTestStore()
	root := s.NewRoot(nil)

	place(t, s, root, 1, 1)
	b := place(t, s, root, 2, 3)
	place(t, s, b, 1, 2)

	test.ExpectedSuccess(t, s.RemoveChild(root, 2))

	// mark from the root then sweep. the removed subtree (clip and inner
	// shape) is reclaimed
	s.Table().ClearMarks()
	s.MarkReachable(s.Root(), nil)
	reclaimed := s.Compact()
	test.Equate(t, reclaimed, 2)
	test.Equate(t, s.Table().Live(), 2)

	// the depth the subtree occupied is genuinely free again
	c := place(t, s, root, 2, 1)
	test.Equate(t, s.Alive(c), true)
}
