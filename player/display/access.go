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
	"sort"

	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/arena"
)

// Alive is true if the handle refers to a node that has not been removed
// or reclaimed.
func (s *Store) Alive(h arena.Handle) bool {
	e, ok := s.lookup(h)
	return ok && !e.removed
}

// KindOf returns the node's variant.
func (s *Store) KindOf(h arena.Handle) (Kind, bool) {
	e, ok := s.lookup(h)
	if !ok {
		return 0, false
	}
	return e.kind, true
}

// IsClip is true if the node is a movie clip.
func (s *Store) IsClip(h arena.Handle) bool {
	e, ok := s.lookup(h)
	return ok && e.clip != nil
}

// NameOf returns the node's instance name.
func (s *Store) NameOf(h arena.Handle) string {
	e, ok := s.lookup(h)
	if !ok {
		return ""
	}
	return e.name
}

// DepthOf returns the node's depth among its siblings.
func (s *Store) DepthOf(h arena.Handle) movie.Depth {
	e, ok := s.lookup(h)
	if !ok {
		return 0
	}
	return e.depth
}

// ParentOf returns the node's parent, or the null handle for the root.
func (s *Store) ParentOf(h arena.Handle) arena.Handle {
	e, ok := s.lookup(h)
	if !ok {
		return arena.Null
	}
	return e.parent
}

// CharacterOf returns the id of the character definition the node was
// created from. The root has no character.
func (s *Store) CharacterOf(h arena.Handle) movie.CharacterID {
	e, ok := s.lookup(h)
	if !ok {
		return 0
	}
	return e.charID
}

// Binding returns the node's script object.
func (s *Store) Binding(h arena.Handle) arena.Handle {
	e, ok := s.lookup(h)
	if !ok {
		return arena.Null
	}
	return e.binding
}

// NodeFor returns the display node bound to a script object, by searching
// the binding relation in reverse. Used by natives that receive a script
// object as their this binding.
func (s *Store) NodeFor(binding arena.Handle) (arena.Handle, bool) {
	b, ok := s.objects.NativeOf(binding)
	if !ok {
		return arena.Null, false
	}
	nb, ok := b.(*backing)
	if !ok {
		return arena.Null, false
	}
	return nb.node, true
}

// Children returns the live children of a clip in depth-ascending order.
// The returned slice is a fresh copy: mutating the display list does not
// disturb an iteration already in progress.
func (s *Store) Children(parent arena.Handle) []arena.Handle {
	e, ok := s.lookup(parent)
	if !ok || e.clip == nil {
		return nil
	}

	depths := make([]int, 0, len(e.clip.children))
	for d := range e.clip.children {
		if _, _, occupied := s.occupant(e.clip, d); occupied {
			depths = append(depths, int(d))
		}
	}
	sort.Ints(depths)

	children := make([]arena.Handle, 0, len(depths))
	for _, d := range depths {
		children = append(children, e.clip.children[movie.Depth(d)])
	}
	return children
}

// Cursor returns the clip's current frame index.
func (s *Store) Cursor(h arena.Handle) int {
	e, ok := s.lookup(h)
	if !ok || e.clip == nil {
		return 0
	}
	return e.clip.cursor
}

// SetCursor moves the clip's frame cursor. The value is clamped to the
// clip's frame count - the cursor is always a valid index.
func (s *Store) SetCursor(h arena.Handle, frame int) {
	e, ok := s.lookup(h)
	if !ok || e.clip == nil {
		return
	}
	if frame < 0 {
		frame = 0
	}
	if frame >= len(e.clip.frames) {
		frame = len(e.clip.frames) - 1
	}
	e.clip.cursor = frame
}

// FrameCount returns the number of frames in the clip's timeline.
func (s *Store) FrameCount(h arena.Handle) int {
	e, ok := s.lookup(h)
	if !ok || e.clip == nil {
		return 0
	}
	return len(e.clip.frames)
}

// FrameTags returns the control tags of one frame of the clip's timeline.
func (s *Store) FrameTags(h arena.Handle, frame int) []movie.ControlTag {
	e, ok := s.lookup(h)
	if !ok || e.clip == nil || frame < 0 || frame >= len(e.clip.frames) {
		return nil
	}
	return e.clip.frames[frame].Tags
}

// Playing returns the clip's play state.
func (s *Store) Playing(h arena.Handle) bool {
	e, ok := s.lookup(h)
	return ok && e.clip != nil && e.clip.playing
}

// SetPlaying transitions the clip between the playing and stopped states.
func (s *Store) SetPlaying(h arena.Handle, playing bool) {
	e, ok := s.lookup(h)
	if !ok || e.clip == nil {
		return
	}
	e.clip.playing = playing
}

// MatrixOf returns the node's own (not concatenated) transform.
func (s *Store) MatrixOf(h arena.Handle) movie.Matrix {
	e, ok := s.lookup(h)
	if !ok {
		return movie.IdentityMatrix()
	}
	return e.matrix
}

// SetMatrix replaces the node's own transform.
func (s *Store) SetMatrix(h arena.Handle, m movie.Matrix) {
	if e, ok := s.lookup(h); ok {
		e.matrix = m
	}
}
