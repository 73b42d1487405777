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

// Package debugger is a terminal driven, headless inspection tool for the
// player. The movie runs tick by tick under command control; between ticks
// the display graph, the object store and the frame digest can be examined.
package debugger

import (
	"strconv"
	"strings"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/debugger/terminal"
	"github.com/glimmerproject/glimmer/digest"
	"github.com/glimmerproject/glimmer/disassembly"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player"
)

// Sentinel error patterns for the debugger.
const (
	DebuggerError = "debugger: %v"
	UnknownCmd    = "debugger: unknown command: %s"
)

// Debugger wraps a headless player with a command loop.
type Debugger struct {
	mov  *movie.Movie
	ply  *player.Player
	vid  *digest.Video
	term terminal.Terminal
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type. The player is headless: the only renderer is a video digest, so
// STEP and RUN proceed as fast as the emulation allows.
func NewDebugger(mov *movie.Movie) (*Debugger, error) {
	dbg := &Debugger{
		mov: mov,
		ply: player.NewPlayer(),
		vid: digest.NewVideo(),
	}

	dbg.ply.AddRenderer(dbg.vid)
	dbg.ply.AddMixer(digest.NewAudio())

	if err := dbg.ply.Load(mov); err != nil {
		return nil, curated.Errorf(DebuggerError, err)
	}

	return dbg, nil
}

// Start the command loop. The loop ends on the QUIT command or when the
// terminal reports a user interrupt.
func (dbg *Debugger) Start(term terminal.Terminal) error {
	dbg.term = term
	defer term.CleanUp()

	for {
		input, err := term.ReadLine(dbg.prompt())
		if err != nil {
			if curated.Is(err, terminal.UserInterrupt) {
				return nil
			}
			return err
		}

		quit, err := dbg.parseCommand(input)
		if err != nil {
			term.Print("%v\n", err)
		}
		if quit {
			return nil
		}
	}
}

func (dbg *Debugger) prompt() string {
	return "[glimmer frame " + strconv.Itoa(dbg.ply.Frame()) + "] "
}

// parseCommand runs a single command line. The returned bool is true if the
// session should end.
func (dbg *Debugger) parseCommand(input string) (bool, error) {
	toks := strings.Fields(strings.ToUpper(input))
	if len(toks) == 0 {
		return false, nil
	}

	// arguments keep the original case. only the keyword is normalised
	args := strings.Fields(input)[1:]

	switch toks[0] {
	case "STEP":
		n := 1
		if len(args) > 0 {
			var err error
			n, err = strconv.Atoi(args[0])
			if err != nil {
				return false, curated.Errorf(DebuggerError, err)
			}
		}
		return false, dbg.step(n)

	case "RUN":
		if len(args) == 0 {
			return false, curated.Errorf(DebuggerError, "RUN requires a tick count")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return false, curated.Errorf(DebuggerError, err)
		}
		return false, dbg.step(n)

	case "LIST":
		return false, disassembly.Write(termWriter{dbg.term}, dbg.mov)

	case "TREE":
		fname := ""
		if len(args) > 0 {
			fname = args[0]
		}
		return false, dbg.tree(fname)

	case "INFO":
		dbg.info()
		return false, nil

	case "HELP":
		dbg.term.Print("STEP [n]  RUN n  LIST  TREE [file]  INFO  QUIT\n")
		return false, nil

	case "QUIT":
		return true, nil
	}

	return false, curated.Errorf(UnknownCmd, toks[0])
}

func (dbg *Debugger) step(n int) error {
	for i := 0; i < n; i++ {
		if err := dbg.ply.AdvanceFrame(); err != nil {
			return err
		}
	}
	return nil
}

func (dbg *Debugger) info() {
	d := dbg.ply.Display()
	o := dbg.ply.Objects()
	dbg.term.Print("movie: %s (%d timeline frames, %.2f fps)\n",
		dbg.mov.Title, len(dbg.mov.Frames), dbg.mov.FrameRate)
	dbg.term.Print("ticks: %d\n", dbg.ply.Frame())
	dbg.term.Print("display nodes: %d\n", d.Table().Live())
	dbg.term.Print("script objects: %d\n", o.Table().Live())
	dbg.term.Print("video digest: %s\n", dbg.vid.Hash())
}

// termWriter adapts the terminal for functions expecting an io.Writer.
type termWriter struct {
	term terminal.Terminal
}

func (w termWriter) Write(p []byte) (int, error) {
	w.term.Print("%s", string(p))
	return len(p), nil
}
