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

// Package video rasterises frame snapshots into an RGBA framebuffer. It is
// a deliberately simple software renderer: scanline polygon fill with
// even-odd winding, nearest neighbour bitmap sampling, text drawn as its
// bounding box. Hosts upload the framebuffer to whatever display system
// they use; the rasteriser knows nothing about them.
package video

import (
	"math"

	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/display"
)

// bytes per pixel in the framebuffer
const pixelDepth = 4

// Renderer is an implementation of the player.PixelRenderer interface that
// draws into an in-memory RGBA framebuffer.
type Renderer struct {
	width      int
	height     int
	background movie.Color

	lib map[movie.CharacterID]movie.Character

	// RGBA, row-major, width*height*pixelDepth bytes
	pixels []byte
}

// NewRenderer is the preferred method of initialisation for the Renderer
// type. Dimensions and background color come from the movie header.
func NewRenderer(mov *movie.Movie) *Renderer {
	r := &Renderer{
		width:      mov.Width,
		height:     mov.Height,
		background: mov.BackgroundColor,
		lib:        mov.Characters,
		pixels:     make([]byte, mov.Width*mov.Height*pixelDepth),
	}
	return r
}

// Pixels returns the framebuffer of the most recent frame.
func (r *Renderer) Pixels() []byte {
	return r.pixels
}

// Size returns the framebuffer dimensions.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// Render implements the player.PixelRenderer interface.
func (r *Renderer) Render(nodes []display.RenderNode) error {
	r.clear()

	for _, n := range nodes {
		switch n.Kind {
		case display.KindShape:
			if c, ok := r.lib[n.Character].(movie.Shape); ok {
				for _, fill := range c.Fills {
					r.fillPolygon(n.Matrix, fill.Points, n.ColorTransform.Apply(fill.Color))
				}
			}
		case display.KindText:
			if c, ok := r.lib[n.Character].(movie.Text); ok {
				r.fillRect(n.Matrix, c.Bounds, n.ColorTransform.Apply(c.Color))
			}
		case display.KindBitmap:
			if c, ok := r.lib[n.Character].(movie.Bitmap); ok {
				r.drawBitmap(n.Matrix, n.ColorTransform, c)
			}
		}
	}

	return nil
}

// EndRendering implements the player.PixelRenderer interface.
func (r *Renderer) EndRendering() error {
	return nil
}

func (r *Renderer) clear() {
	for i := 0; i < len(r.pixels); i += pixelDepth {
		r.pixels[i] = r.background.R
		r.pixels[i+1] = r.background.G
		r.pixels[i+2] = r.background.B
		r.pixels[i+3] = 255
	}
}

// blend composites a straight-alpha color over the framebuffer pixel.
func (r *Renderer) blend(x, y int, c movie.Color) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height || c.A == 0 {
		return
	}

	i := (y*r.width + x) * pixelDepth
	a := int(c.A)
	ia := 255 - a

	r.pixels[i] = uint8((int(c.R)*a + int(r.pixels[i])*ia) / 255)
	r.pixels[i+1] = uint8((int(c.G)*a + int(r.pixels[i+1])*ia) / 255)
	r.pixels[i+2] = uint8((int(c.B)*a + int(r.pixels[i+2])*ia) / 255)
	r.pixels[i+3] = 255
}

// fillPolygon rasterises one closed polygon with the even-odd rule. Sample
// points are pixel centers.
func (r *Renderer) fillPolygon(m movie.Matrix, points []movie.Point, c movie.Color) {
	if len(points) < 3 {
		return
	}

	pts := make([]movie.Point, len(points))
	minY, maxY := math.Inf(1), math.Inf(-1)
	for i, p := range points {
		pts[i] = m.Apply(p)
		minY = math.Min(minY, pts[i].Y)
		maxY = math.Max(maxY, pts[i].Y)
	}

	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > r.height {
		y1 = r.height
	}

	var xs []float64
	for y := y0; y < y1; y++ {
		sy := float64(y) + 0.5

		xs = xs[:0]
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			if (a.Y <= sy) == (b.Y <= sy) {
				continue
			}
			xs = append(xs, a.X+(sy-a.Y)/(b.Y-a.Y)*(b.X-a.X))
		}

		// insertion sort. crossing counts are tiny
		for i := 1; i < len(xs); i++ {
			for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
				xs[j], xs[j-1] = xs[j-1], xs[j]
			}
		}

		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i] - 0.5))
			x1 := int(math.Floor(xs[i+1] - 0.5))
			for x := x0; x <= x1; x++ {
				r.blend(x, y, c)
			}
		}
	}
}

func (r *Renderer) fillRect(m movie.Matrix, b movie.Rect, c movie.Color) {
	r.fillPolygon(m, []movie.Point{
		{X: b.MinX, Y: b.MinY},
		{X: b.MaxX, Y: b.MinY},
		{X: b.MaxX, Y: b.MaxY},
		{X: b.MinX, Y: b.MaxY},
	}, c)
}

// drawBitmap samples the bitmap through the inverse transform, nearest
// neighbour.
func (r *Renderer) drawBitmap(m movie.Matrix, cx movie.ColorTransform, bm movie.Bitmap) {
	inv, ok := invert(m)
	if !ok {
		// the transform collapses the bitmap to nothing
		return
	}

	// stage-space bounding box of the transformed bitmap
	corners := [4]movie.Point{
		m.Apply(movie.Point{}),
		m.Apply(movie.Point{X: float64(bm.Width)}),
		m.Apply(movie.Point{Y: float64(bm.Height)}),
		m.Apply(movie.Point{X: float64(bm.Width), Y: float64(bm.Height)}),
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range corners {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	y0, y1 := clampInt(int(math.Floor(minY)), 0, r.height), clampInt(int(math.Ceil(maxY)), 0, r.height)
	x0, x1 := clampInt(int(math.Floor(minX)), 0, r.width), clampInt(int(math.Ceil(maxX)), 0, r.width)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			src := inv.Apply(movie.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5})
			sx, sy := int(src.X), int(src.Y)
			if src.X < 0 || src.Y < 0 || sx >= bm.Width || sy >= bm.Height {
				continue
			}
			r.blend(x, y, cx.Apply(bm.Pixels[sy*bm.Width+sx]))
		}
	}
}

func invert(m movie.Matrix) (movie.Matrix, bool) {
	det := m.A*m.D - m.B*m.C
	if det == 0 {
		return movie.Matrix{}, false
	}
	id := 1 / det
	return movie.Matrix{
		A:  m.D * id,
		B:  -m.B * id,
		C:  -m.C * id,
		D:  m.A * id,
		TX: (m.C*m.TY - m.D*m.TX) * id,
		TY: (m.B*m.TX - m.A*m.TY) * id,
	}, true
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
