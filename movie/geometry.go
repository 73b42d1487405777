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

package movie

// Point in stage coordinates.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Color with straight (not premultiplied) alpha.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Matrix is a 2D affine transform.
//
//	| A  C  TX |
//	| B  D  TY |
type Matrix struct {
	A  float64
	B  float64
	C  float64
	D  float64
	TX float64
	TY float64
}

// IdentityMatrix returns the do-nothing transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// TranslateMatrix returns a transform that only moves.
func TranslateMatrix(x, y float64) Matrix {
	return Matrix{A: 1, D: 1, TX: x, TY: y}
}

// Mul returns the concatenation of m with n. The result transforms a point
// first by n and then by m - parent transforms go on the left.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A:  m.A*n.A + m.C*n.B,
		B:  m.B*n.A + m.D*n.B,
		C:  m.A*n.C + m.C*n.D,
		D:  m.B*n.C + m.D*n.D,
		TX: m.A*n.TX + m.C*n.TY + m.TX,
		TY: m.B*n.TX + m.D*n.TY + m.TY,
	}
}

// Apply the transform to a point.
func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.TX,
		Y: m.B*p.X + m.D*p.Y + m.TY,
	}
}

// ColorTransform adjusts the color of a display object. Each channel is
// multiplied by the Mult term and then offset by the Add term, clamping to
// the valid range.
type ColorTransform struct {
	RMult float64
	GMult float64
	BMult float64
	AMult float64
	RAdd  float64
	GAdd  float64
	BAdd  float64
	AAdd  float64
}

// IdentityColorTransform returns the do-nothing color transform.
func IdentityColorTransform() ColorTransform {
	return ColorTransform{RMult: 1, GMult: 1, BMult: 1, AMult: 1}
}

// Mul returns the concatenation of c with d, with c being the parent
// transform.
func (c ColorTransform) Mul(d ColorTransform) ColorTransform {
	return ColorTransform{
		RMult: c.RMult * d.RMult,
		GMult: c.GMult * d.GMult,
		BMult: c.BMult * d.BMult,
		AMult: c.AMult * d.AMult,
		RAdd:  c.RMult*d.RAdd + c.RAdd,
		GAdd:  c.GMult*d.GAdd + c.GAdd,
		BAdd:  c.BMult*d.BAdd + c.BAdd,
		AAdd:  c.AMult*d.AAdd + c.AAdd,
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Apply the color transform to a color.
func (c ColorTransform) Apply(col Color) Color {
	return Color{
		R: clampChannel(float64(col.R)*c.RMult + c.RAdd),
		G: clampChannel(float64(col.G)*c.GMult + c.GAdd),
		B: clampChannel(float64(col.B)*c.BMult + c.BAdd),
		A: clampChannel(float64(col.A)*c.AMult + c.AAdd),
	}
}
