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

package movie_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/test"
)

func minimalMovie() *movie.Movie {
	return &movie.Movie{
		Width: 100, Height: 100,
		FrameRate:  12,
		Characters: map[movie.CharacterID]movie.Character{},
		Frames:     []movie.Frame{{}},
	}
}

func TestEmptyMovie(t *testing.T) {
	m := &movie.Movie{FrameRate: 12}
	test.ExpectedSuccess(t, curated.Is(m.Validate(), movie.NoFrames))

	m = minimalMovie()
	m.FrameRate = 0
	test.ExpectedSuccess(t, curated.Is(m.Validate(), movie.BadFrameRate))

	test.ExpectedSuccess(t, minimalMovie().Validate())
}

func TestUndefinedCharacter(t *testing.T) {
	m := minimalMovie()
	m.Frames = []movie.Frame{{Tags: []movie.ControlTag{
		movie.PlaceObject{Depth: 1, HasCharacter: true, ID: 99},
	}}}
	test.ExpectedSuccess(t, curated.Is(m.Validate(), movie.UndefinedCharacter))
}

func TestSoundIsNotPlaceable(t *testing.T) {
	m := minimalMovie()
	m.Characters[1] = movie.Sound{ID: 1}
	m.Frames = []movie.Frame{{Tags: []movie.ControlTag{
		movie.PlaceObject{Depth: 1, HasCharacter: true, ID: 1},
	}}}
	test.ExpectedSuccess(t, curated.Is(m.Validate(), movie.NotPlaceable))

	// but it can be started as a sound
	m.Frames = []movie.Frame{{Tags: []movie.ControlTag{
		movie.StartSound{ID: 1},
	}}}
	test.ExpectedSuccess(t, m.Validate())
}

func TestBadScriptFailsLoad(t *testing.T) {
	m := minimalMovie()
	m.Frames = []movie.Frame{{Tags: []movie.ControlTag{
		movie.DoAction{Script: &action.Script{Instructions: []action.Instruction{
			{Op: action.Jump, Int: 1000},
		}}},
	}}}
	err := m.Validate()
	test.ExpectedFailure(t, err)
	test.ExpectedSuccess(t, curated.Is(err, action.InvalidBranch))
}

func TestSpriteCycle(t *testing.T) {
	m := minimalMovie()

	// sprite 1 places sprite 2 which places sprite 1 again
	m.Characters[1] = movie.Sprite{ID: 1, Frames: []movie.Frame{{Tags: []movie.ControlTag{
		movie.PlaceObject{Depth: 1, HasCharacter: true, ID: 2},
	}}}}
	m.Characters[2] = movie.Sprite{ID: 2, Frames: []movie.Frame{{Tags: []movie.ControlTag{
		movie.PlaceObject{Depth: 1, HasCharacter: true, ID: 1},
	}}}}

	test.ExpectedSuccess(t, curated.Is(m.Validate(), movie.SpriteCycle))
}
