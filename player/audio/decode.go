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
	"bytes"
	"io"

	"github.com/hajimehoshi/go-mp3"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie"
)

// Sentinel error patterns for sound decoding.
const (
	UnsupportedFormat = "audio: unsupported sound format (%s)"
	DecodeFailure     = "audio: %s decode: %v"
)

// Clip is a fully decoded sound: interleaved stereo 16-bit PCM at the
// clip's own sample rate. Mono sources are widened to stereo on decode so
// the mixer has only one case to deal with.
type Clip struct {
	Rate    int
	Samples []int16
}

// Frames returns the number of stereo sample frames in the clip.
func (c Clip) Frames() int {
	return len(c.Samples) / 2
}

// Decode converts a sound definition to PCM.
func Decode(snd movie.Sound) (Clip, error) {
	switch snd.Format {
	case movie.SoundFormatPCM:
		return decodePCM(snd), nil

	case movie.SoundFormatADPCM:
		samples := decodeADPCM(snd.Data, snd.Stereo)
		if !snd.Stereo {
			samples = widen(samples)
		}
		return Clip{Rate: snd.SampleRate, Samples: samples}, nil

	case movie.SoundFormatMP3:
		return decodeMP3(snd)
	}

	return Clip{}, curated.Errorf(UnsupportedFormat, snd.Format)
}

// decodePCM interprets the data as little-endian signed 16-bit samples.
func decodePCM(snd movie.Sound) Clip {
	n := len(snd.Data) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(uint16(snd.Data[i*2]) | uint16(snd.Data[i*2+1])<<8)
	}
	if !snd.Stereo {
		samples = widen(samples)
	}
	return Clip{Rate: snd.SampleRate, Samples: samples}
}

// decodeMP3 decompresses through the mp3 package, which always produces
// interleaved stereo 16-bit little-endian output.
func decodeMP3(snd movie.Sound) (Clip, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(snd.Data))
	if err != nil {
		return Clip{}, curated.Errorf(DecodeFailure, "mp3", err)
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return Clip{}, curated.Errorf(DecodeFailure, "mp3", err)
	}

	n := len(raw) / 2
	samples := make([]int16, n)
	for i := 0; i < n; i++ {
		samples[i] = int16(uint16(raw[i*2]) | uint16(raw[i*2+1])<<8)
	}

	return Clip{Rate: dec.SampleRate(), Samples: samples}, nil
}

// widen duplicates mono samples into interleaved stereo.
func widen(mono []int16) []int16 {
	stereo := make([]int16, len(mono)*2)
	for i, s := range mono {
		stereo[i*2] = s
		stereo[i*2+1] = s
	}
	return stereo
}
