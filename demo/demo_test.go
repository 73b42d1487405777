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

package demo_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/demo"
	"github.com/glimmerproject/glimmer/digest"
	"github.com/glimmerproject/glimmer/player"
	"github.com/glimmerproject/glimmer/test"
)

func TestDemoValidates(t *testing.T) {
	test.ExpectedSuccess(t, demo.Movie().Validate())
}

func TestDemoRuns(t *testing.T) {
	p := player.NewPlayer()
	vid := digest.NewVideo()
	p.AddRenderer(vid)
	p.AddMixer(digest.NewAudio())

	test.ExpectedSuccess(t, p.Load(demo.Movie()))

	// two full passes of the four frame timeline
	for i := 0; i < 8; i++ {
		test.ExpectedSuccess(t, p.AdvanceFrame())
	}

	test.Equate(t, vid.Hash() != "", true)
	test.Equate(t, vid.Frames(), 9)
}
