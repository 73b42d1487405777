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

package audio_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/audio"
	"github.com/glimmerproject/glimmer/test"
)

func TestDecodePCM(t *testing.T) {
	// two little-endian mono samples: 1 and -2
	clip, err := audio.Decode(movie.Sound{
		Format:     movie.SoundFormatPCM,
		SampleRate: 44100,
		Data:       []byte{0x01, 0x00, 0xFE, 0xFF},
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, clip.Rate, 44100)

	// mono widens to stereo
	test.Equate(t, clip.Frames(), 2)
	test.Equate(t, int(clip.Samples[0]), 1)
	test.Equate(t, int(clip.Samples[1]), 1)
	test.Equate(t, int(clip.Samples[2]), -2)
	test.Equate(t, int(clip.Samples[3]), -2)
}

func TestDecodeADPCM(t *testing.T) {
	// hand-assembled bitstream. 2-bit header selects 2 bits per code; the
	// initial sample (0) and step index (0) follow, then the four codes
	// 00 01 10 11 packed into the final byte.
	//
	// worked by hand against the step and index tables:
	//   code 00: delta (2*0+1)*7/2  = 3   sample 3    index 0
	//   code 01: delta (2*1+1)*7/2  = 10  sample 13   index 2
	//   code 10: delta (2*0+1)*9/2  = 4   sample 9    index 1
	//   code 11: delta (2*1+1)*8/2  = 12  sample -3   index 3
	clip, err := audio.Decode(movie.Sound{
		Format:     movie.SoundFormatADPCM,
		SampleRate: 22050,
		Data:       []byte{0x00, 0x00, 0x00, 0x1B},
	})
	test.ExpectedSuccess(t, err)
	test.Equate(t, clip.Rate, 22050)
	test.Equate(t, clip.Frames(), 4)

	expected := []int16{3, 13, 9, -3}
	for i, want := range expected {
		test.Equate(t, int(clip.Samples[i*2]), int(want))
		test.Equate(t, int(clip.Samples[i*2+1]), int(want))
	}
}

// captureMixer records every buffer pushed to it.
type captureMixer struct {
	buffers [][]int16
	ended   bool
}

func (c *captureMixer) SetAudio(samples []int16) error {
	c.buffers = append(c.buffers, samples)
	return nil
}

func (c *captureMixer) EndMixing() error {
	c.ended = true
	return nil
}

// pcmSound builds a mono PCM sound at the mixer's output rate, so the
// samples arrive unresampled.
func pcmSound(id movie.CharacterID, samples []int16) movie.Sound {
	data := make([]byte, len(samples)*2)
	for i, s := range samples {
		data[i*2] = byte(uint16(s))
		data[i*2+1] = byte(uint16(s) >> 8)
	}
	return movie.Sound{
		ID:         id,
		Format:     movie.SoundFormatPCM,
		SampleRate: audio.OutputRate,
		Data:       data,
	}
}

func TestTrackerMix(t *testing.T) {
	lib := map[movie.CharacterID]movie.Character{
		1: pcmSound(1, []int16{100, 200, 300}),
	}
	tr := audio.NewTracker(lib, 60)
	mix := &captureMixer{}
	tr.AddMixer(mix)

	tr.Trigger(movie.StartSound{ID: 1})
	test.Equate(t, tr.Active(), 1)

	test.ExpectedSuccess(t, tr.Mix())
	test.Equate(t, len(mix.buffers), 1)

	// 44100 / 60 frames of stereo output
	buf := mix.buffers[0]
	test.Equate(t, len(buf), (audio.OutputRate/60)*2)

	// the three clip frames, then silence
	test.Equate(t, int(buf[0]), 100)
	test.Equate(t, int(buf[1]), 100)
	test.Equate(t, int(buf[2]), 200)
	test.Equate(t, int(buf[4]), 300)
	test.Equate(t, int(buf[6]), 0)

	// the voice played out its single loop
	test.Equate(t, tr.Active(), 0)
}

func TestTrackerMixesVoicesAdditively(t *testing.T) {
	lib := map[movie.CharacterID]movie.Character{
		1: pcmSound(1, []int16{100}),
		2: pcmSound(2, []int16{25}),
	}
	tr := audio.NewTracker(lib, 60)
	mix := &captureMixer{}
	tr.AddMixer(mix)

	tr.Trigger(movie.StartSound{ID: 1})
	tr.Trigger(movie.StartSound{ID: 2})

	test.ExpectedSuccess(t, tr.Mix())
	test.Equate(t, int(mix.buffers[0][0]), 125)
}

func TestTrackerStop(t *testing.T) {
	lib := map[movie.CharacterID]movie.Character{
		1: pcmSound(1, []int16{100, 100, 100}),
	}
	tr := audio.NewTracker(lib, 60)

	// looping keeps the voice alive across ticks until stopped
	tr.Trigger(movie.StartSound{ID: 1, Loops: 1000000})
	test.ExpectedSuccess(t, tr.Mix())
	test.Equate(t, tr.Active(), 1)

	tr.Trigger(movie.StartSound{ID: 1, Stop: true})
	test.Equate(t, tr.Active(), 0)
}

func TestTrackerEnd(t *testing.T) {
	tr := audio.NewTracker(nil, 60)
	mix := &captureMixer{}
	tr.AddMixer(mix)

	test.ExpectedSuccess(t, tr.End())
	test.Equate(t, mix.ended, true)
}
