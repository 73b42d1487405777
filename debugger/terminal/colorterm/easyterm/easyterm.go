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

// Package easyterm is a wrapper for "github.com/pkg/term/termios". It wraps
// termios methods in functions with friendlier names and keeps hold of the
// attribute sets for the terminal modes the debugger switches between.
package easyterm

import (
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal is the main container for posix terminals. Usually embedded in
// other struct types.
type Terminal struct {
	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// Initialise the fields in the Terminal struct. The attribute set in place
// at this point is the one restored by CanonicalMode().
func (pt *Terminal) Initialise(inputFile, outputFile *os.File) error {
	if inputFile == nil || outputFile == nil {
		return fmt.Errorf("easyterm: terminal requires an input and an output file")
	}

	pt.input = inputFile
	pt.output = outputFile

	if err := termios.Tcgetattr(pt.input.Fd(), &pt.canAttr); err != nil {
		return fmt.Errorf("easyterm: %w", err)
	}

	pt.cbreakAttr = pt.canAttr
	termios.Cfmakecbreak(&pt.cbreakAttr)

	return nil
}

// CleanUp restores the terminal to canonical mode.
func (pt *Terminal) CleanUp() {
	pt.CanonicalMode()
}

// Print writes the formatted string to the output file.
func (pt *Terminal) Print(s string, a ...interface{}) {
	pt.output.WriteString(fmt.Sprintf(s, a...))
	pt.output.Sync()
}

// ReadKey returns the next key from the input file. Simplification: input
// is treated as one byte per key, which is fine for the command language
// the debugger actually speaks.
func (pt *Terminal) ReadKey() (rune, error) {
	b := make([]byte, 1)
	n, err := pt.input.Read(b)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("easyterm: no input")
	}
	return rune(b[0]), nil
}

// CanonicalMode puts terminal into normal, everyday canonical mode.
func (pt *Terminal) CanonicalMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.canAttr)
}

// CBreakMode puts terminal into cbreak mode, for unbuffered single key
// input.
func (pt *Terminal) CBreakMode() {
	termios.Tcsetattr(pt.input.Fd(), termios.TCSANOW, &pt.cbreakAttr)
}
