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

// Package limiter provides a rough and ready way of limiting events to a
// fixed rate. Used to hold playback at the movie's frame rate.
//
//	lmtr := limiter.NewFPSLimiter(12.0)
//	for {
//		lmtr.Wait()
//		player.AdvanceFrame()
//	}
package limiter

import (
	"time"
)

// FpsLimiter triggers at a fixed number of events per second. It is a rough
// mechanism, only any good when base performance is well above the required
// rate - which for this emulator it always is.
type FpsLimiter struct {
	secondsPerFrame time.Duration
	tick            chan bool
}

// NewFPSLimiter is the preferred method of initialisation for the FpsLimiter
// type.
func NewFPSLimiter(framesPerSecond float64) *FpsLimiter {
	lim := &FpsLimiter{
		secondsPerFrame: time.Duration(float64(time.Second) / framesPerSecond),
		tick:            make(chan bool),
	}

	go func() {
		// correct drift by adjusting the sleep against real elapsed time
		adjusted := lim.secondsPerFrame
		t := time.Now()
		for {
			lim.tick <- true
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - lim.secondsPerFrame
			t = nt
		}
	}()

	return lim
}

// Wait blocks until the next trigger.
func (lim *FpsLimiter) Wait() {
	<-lim.tick
}
