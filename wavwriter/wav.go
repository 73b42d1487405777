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

// Package wavwriter allows writing of the player's audio output to disk as a
// WAV file. Note that audio data is buffered in memory in its entirety and
// written to disk when mixing ends. It is therefore probably only suitable
// for testing purposes.
package wavwriter

import (
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/logger"
	playeraudio "github.com/glimmerproject/glimmer/player/audio"
)

// WavWriter implements the audio.Mixer interface.
type WavWriter struct {
	filename string
	buffer   []int
}

// NewWavWriter is the preferred method of initialisation for the WavWriter
// type.
func NewWavWriter(filename string) (*WavWriter, error) {
	aw := &WavWriter{
		filename: filename,
		buffer:   make([]int, 0),
	}
	return aw, nil
}

// SetAudio implements the audio.Mixer interface.
func (aw *WavWriter) SetAudio(samples []int16) error {
	for _, s := range samples {
		aw.buffer = append(aw.buffer, int(s))
	}
	return nil
}

// EndMixing implements the audio.Mixer interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, playeraudio.OutputRate, 16, 2, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  playeraudio.OutputRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	logger.Logf(logger.Allow, "wavwriter", "audio written to %s", aw.filename)
	return nil
}
