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

package modalflag_test

import (
	"testing"

	"github.com/glimmerproject/glimmer/modalflag"
	"github.com/glimmerproject/glimmer/test"
)

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"a", "b", "c"})

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))
	test.Equate(t, len(md.RemainingArgs()), 3)
	test.Equate(t, md.Mode(), "")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"movie.rec"})
	md.AddSubModes("RUN", "DISASM")

	p, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, int(p), int(modalflag.ParseContinue))

	// unrecognised argument selects the default sub-mode and the argument
	// remains available
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.GetArg(0), "movie.rec")
}

func TestSelectedSubMode(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"disasm", "movie.rec"})
	md.AddSubModes("RUN", "DISASM")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.Mode(), "DISASM")

	md.NewMode()
	md.NewArgs(md.RemainingArgs())
	_, err = md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, md.GetArg(0), "movie.rec")
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{}
	md.NewArgs([]string{"-frames", "10", "demo"})
	frames := md.AddInt("frames", -1, "run for specified number of frames")

	_, err := md.Parse()
	test.ExpectedSuccess(t, err)
	test.Equate(t, *frames, 10)
	test.Equate(t, md.GetArg(0), "demo")
}
