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

// Package sdlaudio plays the player's audio output using SDL's queueing
// audio API. One tick's worth of samples arrives per SetAudio() call and is
// appended to the device queue as-is; SDL handles the actual playback.
package sdlaudio

import (
	"encoding/binary"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/player/audio"
)

// if the device queue grows beyond this many bytes we are running faster
// than real time (fps cap off, most likely) and further samples are dropped
// rather than queued. half a second of 16bit stereo at the output rate.
const maxQueuedBytes = audio.OutputRate * 2 * 2 / 2

// Audio is an implementation of the audio.Mixer interface that outputs
// sound through SDL.
type Audio struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec

	buffer []byte
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() (*Audio, error) {
	aud := &Audio{}

	spec := &sdl.AudioSpec{
		Freq:     audio.OutputRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: 2,
		Samples:  1024,
	}

	var err error
	var actualSpec sdl.AudioSpec

	aud.id, err = sdl.OpenAudioDevice("", false, spec, &actualSpec, 0)
	if err != nil {
		return nil, curated.Errorf("sdlaudio: %v", err)
	}
	aud.spec = actualSpec

	sdl.PauseAudioDevice(aud.id, false)

	return aud, nil
}

// SetAudio implements the audio.Mixer interface.
func (aud *Audio) SetAudio(samples []int16) error {
	if sdl.GetQueuedAudioSize(aud.id) > maxQueuedBytes {
		return nil
	}

	if cap(aud.buffer) < len(samples)*2 {
		aud.buffer = make([]byte, len(samples)*2)
	}
	aud.buffer = aud.buffer[:len(samples)*2]

	for i, s := range samples {
		binary.LittleEndian.PutUint16(aud.buffer[i*2:], uint16(s))
	}

	if err := sdl.QueueAudio(aud.id, aud.buffer); err != nil {
		return curated.Errorf("sdlaudio: %v", err)
	}
	return nil
}

// EndMixing implements the audio.Mixer interface.
func (aud *Audio) EndMixing() error {
	sdl.CloseAudioDevice(aud.id)
	return nil
}
