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

import (
	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/logger"
	"github.com/glimmerproject/glimmer/movie"
)

// OutputRate is the sample rate of the mixed output.
const OutputRate = 44100

// Mixer implementations work with the mixed sample stream; most probably
// playing it. An example of a Mixer that does not play sound but otherwise
// works with it is the digest.Audio type.
type Mixer interface {
	// SetAudio receives one tick's worth of interleaved stereo samples.
	SetAudio(samples []int16) error

	// EndMixing is called once when the player shuts down. The Mixer should
	// be considered unusable afterwards.
	EndMixing() error
}

// voice is one playing instance of a sound.
type voice struct {
	id   movie.CharacterID
	clip Clip

	// frame position within the clip, fixed-point against OutputRate
	pos   int
	loops int
}

// Tracker turns sound triggers into a mixed stereo stream, one buffer per
// tick.
type Tracker struct {
	lib       map[movie.CharacterID]movie.Character
	frameRate float64

	decoded map[movie.CharacterID]Clip
	voices  []*voice
	mixers  []Mixer

	// fractional carry of samples-per-tick, so that any frame rate
	// averages out exactly over time
	carry float64
}

// NewTracker is the preferred method of initialisation for the Tracker
// type.
func NewTracker(lib map[movie.CharacterID]movie.Character, frameRate float64) *Tracker {
	return &Tracker{
		lib:       lib,
		frameRate: frameRate,
		decoded:   make(map[movie.CharacterID]Clip),
	}
}

// AddMixer registers an (additional) implementation of Mixer.
func (tr *Tracker) AddMixer(m Mixer) {
	tr.mixers = append(tr.mixers, m)
}

// Trigger handles a start-sound control tag. A stop tag silences every
// playing instance of the sound; a start tag adds a new instance alongside
// any already playing. A sound that fails to decode logs and is dropped
// rather than failing the tick.
func (tr *Tracker) Trigger(tag movie.StartSound) {
	if tag.Stop {
		kept := tr.voices[:0]
		for _, v := range tr.voices {
			if v.id != tag.ID {
				kept = append(kept, v)
			}
		}
		tr.voices = kept
		return
	}

	clip, ok := tr.decoded[tag.ID]
	if !ok {
		snd, isSound := tr.lib[tag.ID].(movie.Sound)
		if !isSound {
			logger.Logf(logger.Allow, "audio", "start of character %d which is not a sound", tag.ID)
			return
		}
		var err error
		clip, err = Decode(snd)
		if err != nil {
			logger.Logf(logger.Allow, "audio", "%v", err)
			return
		}
		tr.decoded[tag.ID] = clip
	}

	if clip.Rate <= 0 || clip.Frames() == 0 {
		return
	}

	loops := tag.Loops
	if loops < 1 {
		loops = 1
	}
	tr.voices = append(tr.voices, &voice{id: tag.ID, clip: clip, loops: loops})
}

// Active returns the number of currently playing voices.
func (tr *Tracker) Active() int {
	return len(tr.voices)
}

// Mix produces one tick of output and pushes it to every mixer. Voices
// that reach the end of their final loop are retired.
func (tr *Tracker) Mix() error {
	exact := float64(OutputRate)/tr.frameRate + tr.carry
	frames := int(exact)
	tr.carry = exact - float64(frames)

	buf := make([]int16, frames*2)

	for i := 0; i < frames; i++ {
		var l, r int32
		for _, v := range tr.voices {
			fl, fr := v.frame()
			l += int32(fl)
			r += int32(fr)
			v.advance()
		}
		buf[i*2] = clamp16(l)
		buf[i*2+1] = clamp16(r)
	}

	kept := tr.voices[:0]
	for _, v := range tr.voices {
		if v.loops > 0 {
			kept = append(kept, v)
		}
	}
	tr.voices = kept

	for _, m := range tr.mixers {
		if err := m.SetAudio(buf); err != nil {
			return curated.Errorf("audio: %v", err)
		}
	}
	return nil
}

// End retires all voices and concludes every mixer.
func (tr *Tracker) End() error {
	tr.voices = nil
	for _, m := range tr.mixers {
		if err := m.EndMixing(); err != nil {
			return curated.Errorf("audio: %v", err)
		}
	}
	return nil
}

// frame returns the voice's current stereo frame.
func (v *voice) frame() (int16, int16) {
	if v.loops <= 0 {
		return 0, 0
	}
	// nearest-neighbour resample from the clip's rate to the output rate.
	// integer arithmetic keeps it deterministic
	idx := v.pos * v.clip.Rate / OutputRate
	if idx >= v.clip.Frames() {
		return 0, 0
	}
	return v.clip.Samples[idx*2], v.clip.Samples[idx*2+1]
}

func (v *voice) advance() {
	if v.loops <= 0 {
		return
	}
	v.pos++
	if v.pos*v.clip.Rate/OutputRate >= v.clip.Frames() {
		v.pos = 0
		v.loops--
	}
}

func clamp16(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
