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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/glimmerproject/glimmer/player/display"
)

// Video is an implementation of the player.PixelRenderer interface. It
// folds every frame snapshot into a running SHA-1 value and displays
// nothing.
//
// Frames are chained: the previous digest value is hashed along with the
// new frame's data, so the final hash fingerprints the whole sequence of
// frames, not just the last one.
type Video struct {
	digest [sha1.Size]byte
	buffer []byte
	frames int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo() *Video {
	return &Video{}
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// Frames returns the number of frames hashed since creation.
func (dig *Video) Frames() int {
	return dig.frames
}

// Render implements the player.PixelRenderer interface.
func (dig *Video) Render(nodes []display.RenderNode) error {
	// previous digest at the head of the buffer chains the frames
	dig.buffer = dig.buffer[:0]
	dig.buffer = append(dig.buffer, dig.digest[:]...)

	for _, n := range nodes {
		dig.buffer = append(dig.buffer, byte(n.Kind))
		dig.buffer = appendUint16(dig.buffer, uint16(n.Character))
		for _, f := range []float64{
			n.Matrix.A, n.Matrix.B, n.Matrix.C, n.Matrix.D,
			n.Matrix.TX, n.Matrix.TY,
			n.ColorTransform.RMult, n.ColorTransform.GMult,
			n.ColorTransform.BMult, n.ColorTransform.AMult,
			n.ColorTransform.RAdd, n.ColorTransform.GAdd,
			n.ColorTransform.BAdd, n.ColorTransform.AAdd,
		} {
			dig.buffer = appendFloat(dig.buffer, f)
		}
	}

	dig.digest = sha1.Sum(dig.buffer)
	dig.frames++
	return nil
}

// EndRendering implements the player.PixelRenderer interface.
func (dig *Video) EndRendering() error {
	return nil
}

func appendUint16(b []byte, v uint16) []byte {
	var s [2]byte
	binary.LittleEndian.PutUint16(s[:], v)
	return append(b, s[:]...)
}

func appendFloat(b []byte, f float64) []byte {
	var s [8]byte
	binary.LittleEndian.PutUint64(s[:], math.Float64bits(f))
	return append(b, s[:]...)
}
