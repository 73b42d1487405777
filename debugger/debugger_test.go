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

package debugger_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/debugger"
	"github.com/glimmerproject/glimmer/debugger/terminal"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/test"
)

// scriptedTerm feeds a fixed list of command lines to the debugger and
// collects everything it prints.
type scriptedTerm struct {
	lines   []string
	prompts []string
	output  strings.Builder
}

func (st *scriptedTerm) ReadLine(prompt string) (string, error) {
	st.prompts = append(st.prompts, prompt)
	if len(st.lines) == 0 {
		return "", curated.Errorf(terminal.UserInterrupt)
	}
	l := st.lines[0]
	st.lines = st.lines[1:]
	return l, nil
}

func (st *scriptedTerm) Print(format string, args ...interface{}) {
	st.output.WriteString(fmt.Sprintf(format, args...))
}

func (st *scriptedTerm) CleanUp() {}

func testMovie() *movie.Movie {
	return &movie.Movie{
		Title:     "debug fixture",
		Width:     100,
		Height:    100,
		FrameRate: 12,
		Characters: map[movie.CharacterID]movie.Character{
			1: movie.Shape{
				ID:     1,
				Bounds: movie.Rect{MaxX: 10, MaxY: 10},
				Fills: []movie.FilledPolygon{{
					Color:  movie.Color{R: 255, A: 255},
					Points: []movie.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}},
				}},
			},
		},
		Frames: []movie.Frame{
			{Tags: []movie.ControlTag{
				movie.PlaceObject{Depth: 1, HasCharacter: true, ID: 1, Name: "box"},
				movie.DoAction{Script: &action.Script{Instructions: []action.Instruction{
					{Op: action.PushString, Str: "tick"},
					{Op: action.Trace},
				}}},
			}},
			{}, {},
		},
	}
}

func TestCommandLoop(t *testing.T) {
	dbg, err := debugger.NewDebugger(testMovie())
	test.ExpectedSuccess(t, err)

	term := &scriptedTerm{lines: []string{
		"step", "STEP 2", "info", "list", "QUIT",
	}}
	test.ExpectedSuccess(t, dbg.Start(term))

	out := term.output.String()

	// one tick at load, one for STEP, two for STEP 2
	test.Equate(t, strings.Contains(out, "ticks: 4"), true)
	test.Equate(t, strings.Contains(out, "display nodes:"), true)
	test.Equate(t, strings.Contains(out, "PUSHS"), true)

	// prompt shows the tick count after the preceding command
	test.Equate(t, term.prompts[0], "[glimmer frame 1] ")
	test.Equate(t, term.prompts[2], "[glimmer frame 4] ")
}

func TestUnknownCommand(t *testing.T) {
	dbg, err := debugger.NewDebugger(testMovie())
	test.ExpectedSuccess(t, err)

	term := &scriptedTerm{lines: []string{"frobnicate"}}
	test.ExpectedSuccess(t, dbg.Start(term))
	test.Equate(t, strings.Contains(term.output.String(), "unknown command"), true)
}

func TestTreeToTerminal(t *testing.T) {
	dbg, err := debugger.NewDebugger(testMovie())
	test.ExpectedSuccess(t, err)

	term := &scriptedTerm{lines: []string{"tree"}}
	test.ExpectedSuccess(t, dbg.Start(term))

	// memviz emits a graphviz digraph of the treeNode mirror
	test.Equate(t, strings.Contains(term.output.String(), "digraph"), true)
	test.Equate(t, strings.Contains(term.output.String(), "box"), true)
}
