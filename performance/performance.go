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

// Package performance measures the emulation performance of the player. The
// movie runs headless, output going to digest renderers, for a fixed wall
// clock duration; the result is the achieved frame rate against the movie's
// authored rate. CPU and memory profiles can be captured at the same time.
package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/digest"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player"
)

// Check the performance of the player using the supplied movie.
//
// The movie runs for the specified duration. If profile is true, cpu and
// memory profiles are written to the working directory.
func Check(output io.Writer, mov *movie.Movie, duration string, profile bool) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	p := player.NewPlayer()
	vid := digest.NewVideo()
	aud := digest.NewAudio()
	p.AddRenderer(vid)
	p.AddMixer(aud)

	if err := p.Load(mov); err != nil {
		return err
	}

	run := func() error {
		startFrame := p.Frame()
		start := time.Now()
		end := start.Add(dur)

		for time.Now().Before(end) {
			if err := p.AdvanceFrame(); err != nil {
				return err
			}
		}

		elapsed := time.Since(start).Seconds()
		frames := p.Frame() - startFrame

		fps, accuracy := CalcFPS(mov, frames, elapsed)
		output.Write([]byte(fmt.Sprintf("%.2f fps (%d frames in %.2fs) %.1f%%\n",
			fps, frames, elapsed, accuracy)))
		output.Write([]byte(fmt.Sprintf("video digest: %s\n", vid.Hash())))
		output.Write([]byte(fmt.Sprintf("audio digest: %s\n", aud.Hash())))

		return nil
	}

	if profile {
		err = profileRun("performance", run)
	} else {
		err = run()
	}
	if err != nil {
		return err
	}

	return p.End()
}

// CalcFPS takes a number of frames and a duration in seconds and returns the
// frames per second and the accuracy of that value as a percentage of the
// movie's authored frame rate.
func CalcFPS(mov *movie.Movie, numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	accuracy = 100 * fps / mov.FrameRate
	return fps, accuracy
}
