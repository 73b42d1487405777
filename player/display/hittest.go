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

// boundsOf returns the local bounds of a character definition. Sprites have
// no bounds of their own; their children are tested individually.
func (s *Store) boundsOf(id movie.CharacterID) (movie.Rect, bool) {
	switch c := s.lib[id].(type) {
	case movie.Shape:
		return c.Bounds, true
	case movie.Text:
		return c.Bounds, true
	case movie.Bitmap:
		return movie.Rect{MaxX: float64(c.Width), MaxY: float64(c.Height)}, true
	case movie.Button:
		return s.boundsOf(c.Character)
	}
	return movie.Rect{}, false
}

// ButtonAt returns the topmost live button whose bounds contain the stage
// point. Traversal order puts higher depths later, so the last hit wins.
func (s *Store) ButtonAt(pt movie.Point) (arena.Handle, bool) {
	var found arena.Handle = arena.Null
	s.buttonAt(s.root, movie.IdentityMatrix(), pt, &found)
	return found, !found.IsNull()
}

func (s *Store) buttonAt(h arena.Handle, m movie.Matrix, pt movie.Point, found *arena.Handle) {
	e, ok := s.lookup(h)
	if !ok || e.removed || !e.visible {
		return
	}

	m = m.Mul(e.matrix)

	switch e.kind {
	case KindClip:
		for _, child := range s.Children(h) {
			s.buttonAt(child, m, pt, found)
		}
	case KindButton:
		if b, ok := s.boundsOf(e.charID); ok && transformedContains(m, b, pt) {
			*found = h
		}
	}
}

// transformedContains tests the point against the axis-aligned box around
// the transformed corners of the rectangle. Exact for the translate and
// scale transforms placement tags use in practice; an over-approximation
// under rotation.
func transformedContains(m movie.Matrix, r movie.Rect, pt movie.Point) bool {
	corners := [4]movie.Point{
		m.Apply(movie.Point{X: r.MinX, Y: r.MinY}),
		m.Apply(movie.Point{X: r.MaxX, Y: r.MinY}),
		m.Apply(movie.Point{X: r.MinX, Y: r.MaxY}),
		m.Apply(movie.Point{X: r.MaxX, Y: r.MaxY}),
	}

	minX, maxX := corners[0].X, corners[0].X
	minY, maxY := corners[0].Y, corners[0].Y
	for _, c := range corners[1:] {
		if c.X < minX {
			minX = c.X
		}
		if c.X > maxX {
			maxX = c.X
		}
		if c.Y < minY {
			minY = c.Y
		}
		if c.Y > maxY {
			maxY = c.Y
		}
	}

	return pt.X >= minX && pt.X <= maxX && pt.Y >= minY && pt.Y <= maxY
}
