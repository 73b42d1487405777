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

// Package playmode runs a movie in a desktop window without any debugging
// features: an SDL window showing the stage, SDL audio, and input forwarded
// to the player. The loop is held to the movie's authored frame rate unless
// the fps cap is turned off.
package playmode

import (
	"os"
	"os/signal"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/gui/sdlaudio"
	"github.com/glimmerproject/glimmer/gui/sdlplay"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/performance/limiter"
	"github.com/glimmerproject/glimmer/player"
	"github.com/glimmerproject/glimmer/userinput"
	"github.com/glimmerproject/glimmer/wavwriter"
)

// Sentinel error pattern for playmode failures.
const PlayError = "playmode: %v"

// Options for the Play() function.
type Options struct {
	// window scaling factor
	Scale float32

	// hold the loop to the movie's frame rate
	FpsCap bool

	// also write audio to the named WAV file, when not empty
	WavFile string
}

// Play sets the movie running in a desktop window. The function returns
// when the window is closed, the process is interrupted, or the player
// fails.
func Play(mov *movie.Movie, opts Options) error {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}

	events := make(chan userinput.Event, 32)

	scr, err := sdlplay.NewSdlPlay(mov, opts.Scale, events)
	if err != nil {
		return curated.Errorf(PlayError, err)
	}

	aud, err := sdlaudio.NewAudio()
	if err != nil {
		return curated.Errorf(PlayError, err)
	}

	p := player.NewPlayer()
	p.AddRenderer(scr)
	p.AddMixer(aud)

	if opts.WavFile != "" {
		aw, err := wavwriter.NewWavWriter(opts.WavFile)
		if err != nil {
			return curated.Errorf(PlayError, err)
		}
		p.AddMixer(aw)
	}

	if err := p.Load(mov); err != nil {
		return err
	}

	lmtr := limiter.NewFPSLimiter(mov.FrameRate)

	// make sure the deferred shutdown runs even when ctrl-c is pressed
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	done := false
	for !done {
		scr.Service()

		// handle everything the service pass queued before advancing
		pending := true
		for pending && !done {
			select {
			case <-intChan:
				done = true
			case ev := <-events:
				quit, err := userinput.HandleUserInput(ev, p)
				if err != nil {
					return curated.Errorf(PlayError, err)
				}
				done = quit
			default:
				pending = false
			}
		}
		if done {
			break
		}

		if opts.FpsCap {
			lmtr.Wait()
		}

		if err := p.AdvanceFrame(); err != nil {
			return err
		}
	}

	return p.End()
}
