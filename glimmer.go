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

package main

import (
	"fmt"
	"os"

	"github.com/glimmerproject/glimmer/debugger"
	"github.com/glimmerproject/glimmer/debugger/terminal"
	"github.com/glimmerproject/glimmer/debugger/terminal/colorterm"
	"github.com/glimmerproject/glimmer/debugger/terminal/plainterm"
	"github.com/glimmerproject/glimmer/demo"
	"github.com/glimmerproject/glimmer/disassembly"
	"github.com/glimmerproject/glimmer/logger"
	"github.com/glimmerproject/glimmer/modalflag"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/performance"
	"github.com/glimmerproject/glimmer/playmode"
	"github.com/glimmerproject/glimmer/statsview"
	"github.com/glimmerproject/glimmer/version"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "DEBUG", "DISASM", "PERFORMANCE", "VERSION")

	logfile := md.AddBool("log", false, "echo the application log to stderr on exit")

	p, err := md.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(10)
	}
	if p == modalflag.ParseHelp {
		os.Exit(0)
	}

	switch md.Mode() {
	case "RUN":
		err = play(md)
	case "DEBUG":
		err = debug(md)
	case "DISASM":
		err = disasm(md)
	case "PERFORMANCE":
		err = perform(md)
	case "VERSION":
		fmt.Println("glimmer", version.Version)
	}

	if *logfile {
		logger.Write(os.Stderr)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(10)
	}
}

// the movie every mode operates on. the core consumes decoded record
// streams; until a container decoder front-end exists the built-in demo
// document is the one source of them
func document() *movie.Movie {
	return demo.Movie()
}

func play(md *modalflag.Modes) error {
	md.NewMode()
	scale := md.AddFloat64("scale", 1.0, "window scaling factor")
	fpscap := md.AddBool("fpscap", true, "hold the loop to the movie's frame rate")
	wav := md.AddString("wav", "", "also write audio to the named WAV file")

	p, err := md.Parse()
	if err != nil || p == modalflag.ParseHelp {
		return err
	}

	return playmode.Play(document(), playmode.Options{
		Scale:   float32(*scale),
		FpsCap:  *fpscap,
		WavFile: *wav,
	})
}

func debug(md *modalflag.Modes) error {
	md.NewMode()
	termType := md.AddString("term", "COLOR", "terminal type to use in debug mode: COLOR, PLAIN")

	p, err := md.Parse()
	if err != nil || p == modalflag.ParseHelp {
		return err
	}

	dbg, err := debugger.NewDebugger(document())
	if err != nil {
		return err
	}

	var term terminal.Terminal
	switch *termType {
	case "COLOR":
		term, err = colorterm.NewColorTerminal()
		if err != nil {
			// not a terminal worth coloring. fall back quietly
			term = plainterm.NewPlainTerminal()
		}
	default:
		term = plainterm.NewPlainTerminal()
	}

	return dbg.Start(term)
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	p, err := md.Parse()
	if err != nil || p == modalflag.ParseHelp {
		return err
	}

	return disassembly.Write(os.Stdout, document())
}

func perform(md *modalflag.Modes) error {
	md.NewMode()
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddBool("profile", false, "perform cpu and memory profiling")
	stats := md.AddBool("statsview", false, "run the statsview server")

	p, err := md.Parse()
	if err != nil || p == modalflag.ParseHelp {
		return err
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			fmt.Println("statsview not available in this build. build with the statsview tag")
		}
	}

	return performance.Check(os.Stdout, document(), *duration, *profile)
}
