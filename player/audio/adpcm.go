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

package audio

// The ADPCM codec of the legacy container. A bitstream with a 2-bit header
// selecting 2 to 5 bits per delta code, re-synchronised with fresh 16-bit
// sample and 6-bit step index values every 4095 codes. Delta codes are
// sign-magnitude, not two's complement.

var adpcmIndexTable = [4][]int16{
	{-1, 2},
	{-1, -1, 2, 4},
	{-1, -1, -1, -1, 2, 4, 6, 8},
	{-1, -1, -1, -1, -1, -1, -1, -1, 1, 2, 4, 6, 8, 10, 13, 16},
}

var adpcmStepTable = [89]int32{
	7, 8, 9, 10, 11, 12, 13, 14, 16, 17, 19, 21, 23, 25, 28, 31, 34, 37, 41, 45, 50, 55, 60,
	66, 73, 80, 88, 97, 107, 118, 130, 143, 157, 173, 190, 209, 230, 253, 279, 307, 337, 371,
	408, 449, 494, 544, 598, 658, 724, 796, 876, 963, 1060, 1166, 1282, 1411, 1552, 1707, 1878,
	2066, 2272, 2499, 2749, 3024, 3327, 3660, 4026, 4428, 4871, 5358, 5894, 6484, 7132, 7845,
	8630, 9493, 10442, 11487, 12635, 13899, 15289, 16818, 18500, 20350, 22385, 24623, 27086,
	29794, 32767,
}

// bitReader reads big-endian bit fields from a byte slice. The header
// fields of the codec are not byte-aligned so a plain byte reader will not
// do.
type bitReader struct {
	data []byte
	pos  int
}

func (b *bitReader) read(bits int) (uint32, bool) {
	if b.pos+bits > len(b.data)*8 {
		return 0, false
	}
	var v uint32
	for i := 0; i < bits; i++ {
		byteIdx := b.pos >> 3
		bitIdx := 7 - (b.pos & 7)
		v = v<<1 | uint32(b.data[byteIdx]>>bitIdx)&1
		b.pos++
	}
	return v, true
}

// adpcmChannel is the running state of one decoded channel.
type adpcmChannel struct {
	sample int32
	index  int16
}

// step decodes one delta code into the channel.
func (c *adpcmChannel) step(br *bitReader, bits int) bool {
	data, ok := br.read(bits)
	if !ok {
		return false
	}

	step := adpcmStepTable[c.index]
	signMask := int32(1) << (bits - 1)
	magnitude := int32(data) &^ signMask

	// (data + 0.5) * step / 2^(bits-2), in integer form
	delta := (2*magnitude + 1) * step / signMask

	if int32(data)&signMask != 0 {
		c.sample -= delta
	} else {
		c.sample += delta
	}
	if c.sample < -32768 {
		// matches the historical decoder, which wraps rather than clamps
		// at the bottom of the range
		c.sample = 32768
	} else if c.sample > 32767 {
		c.sample = 32767
	}

	c.index += adpcmIndexTable[bits-2][magnitude]
	if c.index < 0 {
		c.index = 0
	} else if int(c.index) >= len(adpcmStepTable) {
		c.index = int16(len(adpcmStepTable) - 1)
	}

	return true
}

// resync reads the channel's uncompressed restart values.
func (c *adpcmChannel) resync(br *bitReader) bool {
	s, ok := br.read(16)
	if !ok {
		return false
	}
	c.sample = int32(int16(s))

	i, ok := br.read(6)
	if !ok {
		return false
	}
	c.index = int16(i)
	return true
}

// decodeADPCM decodes the whole bitstream. The result is interleaved when
// the stream is stereo, one sample per frame when mono.
func decodeADPCM(data []byte, stereo bool) []int16 {
	br := &bitReader{data: data}

	bits, ok := br.read(2)
	if !ok {
		return nil
	}
	bps := int(bits) + 2

	var left, right adpcmChannel
	var out []int16
	sampleNum := 0

	for {
		if sampleNum == 0 {
			if !left.resync(br) {
				break
			}
			if stereo && !right.resync(br) {
				break
			}
		}
		sampleNum = (sampleNum + 1) % 4095

		if !left.step(br, bps) {
			break
		}
		if stereo && !right.step(br, bps) {
			break
		}

		out = append(out, int16(left.sample))
		if stereo {
			out = append(out, int16(right.sample))
		}
	}

	return out
}
