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

package display

import (
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/arena"
)

// Walk visits every live node reachable from h in traversal order:
// the node itself, then children depth-ascending, depth-first. The child
// lists are copied before visiting so the callback may mutate the graph.
func (s *Store) Walk(h arena.Handle, visit func(arena.Handle)) {
	e, ok := s.lookup(h)
	if !ok || e.removed {
		return
	}

	visit(h)

	if e.clip != nil {
		for _, child := range s.Children(h) {
			s.Walk(child, visit)
		}
	}
}

// RenderNode is one drawable entry of a frame snapshot: the node's resolved
// transform and color transform together with a reference to the content
// to draw. Movie clips contribute their children, not themselves.
type RenderNode struct {
	Kind           Kind
	Character      movie.CharacterID
	Matrix         movie.Matrix
	ColorTransform movie.ColorTransform
}

// Snapshot produces the drawable view of the graph for the current instant
// in traversal order. The snapshot is a frozen copy: the renderer reads it
// after the tick has completed and cannot observe (or cause) graph
// mutation.
func (s *Store) Snapshot() []RenderNode {
	var out []RenderNode
	s.snapshot(s.root, movie.IdentityMatrix(), movie.IdentityColorTransform(), &out)
	return out
}

func (s *Store) snapshot(h arena.Handle, m movie.Matrix, cx movie.ColorTransform, out *[]RenderNode) {
	e, ok := s.lookup(h)
	if !ok || e.removed || !e.visible {
		return
	}

	m = m.Mul(e.matrix)
	cx = cx.Mul(e.cxform)

	switch e.kind {
	case KindClip:
		for _, child := range s.Children(h) {
			s.snapshot(child, m, cx, out)
		}

	case KindButton:
		// a button draws the character of its up state
		if btn, ok := s.lib[e.charID].(movie.Button); ok {
			if c, ok := s.lib[btn.Character]; ok {
				kind := KindShape
				switch c.(type) {
				case movie.Text:
					kind = KindText
				case movie.Bitmap:
					kind = KindBitmap
				}
				*out = append(*out, RenderNode{
					Kind:           kind,
					Character:      btn.Character,
					Matrix:         m,
					ColorTransform: cx,
				})
			}
		}

	default:
		*out = append(*out, RenderNode{
			Kind:           e.kind,
			Character:      e.charID,
			Matrix:         m,
			ColorTransform: cx,
		})
	}
}

// Compact physically removes logically removed children from every child
// map and then sweeps the arena. Marking must already have happened - the
// player marks from the roots before calling this.
//
// Returns the number of display nodes reclaimed.
func (s *Store) Compact() int {
	for i := range s.nodes {
		c := s.nodes[i].clip
		if c == nil {
			continue
		}
		for d, h := range c.children {
			e, ok := s.lookup(h)
			if !ok || e.removed {
				delete(c.children, d)
			}
		}
	}

	return s.table.Sweep(func(idx int) {
		s.nodes[idx] = node{}
	})
}

// MarkReachable marks the subtree rooted at h and, through the callback,
// gives the caller the chance to mark each node's script binding in the
// object store. Removed nodes are deliberately not marked - they are
// exactly what the sweep is for.
func (s *Store) MarkReachable(h arena.Handle, bindings func(arena.Handle)) {
	e, ok := s.lookup(h)
	if !ok || e.removed {
		return
	}
	if !s.table.Mark(h) {
		return
	}

	if bindings != nil && !e.binding.IsNull() {
		bindings(e.binding)
	}

	if e.clip != nil {
		for _, child := range e.clip.children {
			s.MarkReachable(child, bindings)
		}
	}
}
