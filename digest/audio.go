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

	"github.com/glimmerproject/glimmer/player/audio"
)

// Audio is an implementation of the audio.Mixer interface. It hashes the
// sample stream and plays nothing.
type Audio struct {
	digest [sha1.Size]byte
	buffer []byte
}

// check that the interface is implemented fully
var _ audio.Mixer = (*Audio)(nil)

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	return &Audio{}
}

// Hash implements the Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
}

// SetAudio implements the audio.Mixer interface. Each tick's samples are
// chained with the previous digest value, as with the video digest.
func (dig *Audio) SetAudio(samples []int16) error {
	dig.buffer = dig.buffer[:0]
	dig.buffer = append(dig.buffer, dig.digest[:]...)

	var s [2]byte
	for _, v := range samples {
		binary.LittleEndian.PutUint16(s[:], uint16(v))
		dig.buffer = append(dig.buffer, s[:]...)
	}

	dig.digest = sha1.Sum(dig.buffer)
	return nil
}

// EndMixing implements the audio.Mixer interface.
func (dig *Audio) EndMixing() error {
	return nil
}
