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

package disassembly_test

import (
	"strings"
	"testing"

	"github.com/glimmerproject/glimmer/disassembly"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/test"
)

func TestWrite(t *testing.T) {
	mov := &movie.Movie{
		Width:     550,
		Height:    400,
		FrameRate: 12,
		Characters: map[movie.CharacterID]movie.Character{
			1: movie.Shape{ID: 1},
			5: movie.Button{
				ID:        5,
				Character: 1,
				OnPress: &action.Script{Instructions: []action.Instruction{
					{Op: action.PushString, Str: "pressed"},
					{Op: action.Trace},
				}},
			},
		},
		Frames: []movie.Frame{
			{Tags: []movie.ControlTag{
				movie.DoAction{Script: &action.Script{Instructions: []action.Instruction{
					{Op: action.PushNumber, Number: 42},
					{Op: action.Jump, Int: 2},
				}}},
			}},
		},
	}

	b := &strings.Builder{}
	test.ExpectedSuccess(t, disassembly.Write(b, mov))
	out := b.String()

	test.Equate(t, strings.Contains(out, "main timeline frame 1"), true)
	test.Equate(t, strings.Contains(out, "PUSHN"), true)
	test.Equate(t, strings.Contains(out, "42"), true)
	test.Equate(t, strings.Contains(out, "JMP"), true)
	test.Equate(t, strings.Contains(out, "-> 2"), true)
	test.Equate(t, strings.Contains(out, "button 5 onPress"), true)
	test.Equate(t, strings.Contains(out, "\"pressed\""), true)
}
