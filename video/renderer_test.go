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

package video_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/display"
	"github.com/glimmerproject/glimmer/test"
	"github.com/glimmerproject/glimmer/video"
)

var (
	white = movie.Color{R: 255, G: 255, B: 255, A: 255}
	red   = movie.Color{R: 255, A: 255}
)

func testDoc(chars ...movie.Character) *movie.Movie {
	mov := &movie.Movie{
		Width:           20,
		Height:          20,
		FrameRate:       12,
		BackgroundColor: white,
		Characters:      make(map[movie.CharacterID]movie.Character),
	}
	for _, c := range chars {
		mov.Characters[c.CharacterID()] = c
	}
	return mov
}

func pixelAt(r *video.Renderer, x, y int) movie.Color {
	w, _ := r.Size()
	i := (y*w + x) * 4
	px := r.Pixels()
	return movie.Color{R: px[i], G: px[i+1], B: px[i+2], A: px[i+3]}
}

func node(id movie.CharacterID, kind display.Kind, m movie.Matrix) display.RenderNode {
	return display.RenderNode{
		Kind:           kind,
		Character:      id,
		Matrix:         m,
		ColorTransform: movie.IdentityColorTransform(),
	}
}

func TestFillSquare(t *testing.T) {
	shape := movie.Shape{
		ID:     1,
		Bounds: movie.Rect{MaxX: 10, MaxY: 10},
		Fills: []movie.FilledPolygon{{
			Color: red,
			Points: []movie.Point{
				{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
			},
		}},
	}

	r := video.NewRenderer(testDoc(shape))
	err := r.Render([]display.RenderNode{
		node(1, display.KindShape, movie.TranslateMatrix(5, 5)),
	})
	test.ExpectedSuccess(t, err)

	// inside the translated square
	test.Equate(t, pixelAt(r, 10, 10) == red, true)
	test.Equate(t, pixelAt(r, 5, 5) == red, true)
	test.Equate(t, pixelAt(r, 14, 14) == red, true)

	// outside
	test.Equate(t, pixelAt(r, 4, 10) == white, true)
	test.Equate(t, pixelAt(r, 10, 4) == white, true)
	test.Equate(t, pixelAt(r, 16, 16) == white, true)
}

func TestEvenOddRule(t *testing.T) {
	// a square with a square hole, expressed as a single self-overlapping
	// polygon list: outer then inner
	shape := movie.Shape{
		ID:     1,
		Bounds: movie.Rect{MaxX: 12, MaxY: 12},
		Fills: []movie.FilledPolygon{{
			Color: red,
			Points: []movie.Point{
				{X: 0, Y: 0}, {X: 12, Y: 0}, {X: 12, Y: 12}, {X: 0, Y: 12},
				{X: 0, Y: 0},
				{X: 4, Y: 4}, {X: 8, Y: 4}, {X: 8, Y: 8}, {X: 4, Y: 8},
				{X: 4, Y: 4},
			},
		}},
	}

	r := video.NewRenderer(testDoc(shape))
	err := r.Render([]display.RenderNode{
		node(1, display.KindShape, movie.IdentityMatrix()),
	})
	test.ExpectedSuccess(t, err)

	test.Equate(t, pixelAt(r, 2, 6) == red, true)
	test.Equate(t, pixelAt(r, 10, 6) == red, true)

	// the hole shows the background
	test.Equate(t, pixelAt(r, 6, 6) == white, true)
}

func TestBitmapTransform(t *testing.T) {
	// a 2x2 bitmap scaled by 4
	bm := movie.Bitmap{
		ID:     1,
		Width:  2,
		Height: 2,
		Pixels: []movie.Color{
			red, white,
			white, red,
		},
	}

	r := video.NewRenderer(testDoc(bm))
	err := r.Render([]display.RenderNode{
		node(1, display.KindBitmap, movie.Matrix{A: 4, D: 4}),
	})
	test.ExpectedSuccess(t, err)

	test.Equate(t, pixelAt(r, 1, 1) == red, true)
	test.Equate(t, pixelAt(r, 6, 1) == white, true)
	test.Equate(t, pixelAt(r, 6, 6) == red, true)
}

func TestColorTransformApplied(t *testing.T) {
	shape := movie.Shape{
		ID:     1,
		Bounds: movie.Rect{MaxX: 4, MaxY: 4},
		Fills: []movie.FilledPolygon{{
			Color: red,
			Points: []movie.Point{
				{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
			},
		}},
	}

	n := node(1, display.KindShape, movie.IdentityMatrix())
	n.ColorTransform.RMult = 0
	n.ColorTransform.GAdd = 255

	r := video.NewRenderer(testDoc(shape))
	test.ExpectedSuccess(t, r.Render([]display.RenderNode{n}))

	test.Equate(t, pixelAt(r, 2, 2) == movie.Color{G: 255, A: 255}, true)
}

func TestTextDrawsBounds(t *testing.T) {
	txt := movie.Text{
		ID:      1,
		Bounds:  movie.Rect{MaxX: 8, MaxY: 4},
		Color:   red,
		Content: "hello",
		Height:  4,
	}

	r := video.NewRenderer(testDoc(txt))
	err := r.Render([]display.RenderNode{
		node(1, display.KindText, movie.TranslateMatrix(2, 2)),
	})
	test.ExpectedSuccess(t, err)

	test.Equate(t, pixelAt(r, 5, 4) == red, true)
	test.Equate(t, pixelAt(r, 1, 1) == white, true)
}
