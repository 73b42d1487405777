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

// Package colorterm implements the terminal interface for ANSI terminals.
// Input is read in cbreak mode one key at a time, which allows line editing
// and ctrl-c detection without waiting for a newline.
package colorterm

import (
	"io"
	"os"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/debugger/terminal"
	"github.com/glimmerproject/glimmer/debugger/terminal/colorterm/easyterm"
)

// ANSI sequences used by the terminal. Kept to the sequences every ANSI
// terminal of the last few decades understands.
const (
	ansiBold  = "\033[1m"
	ansiReset = "\033[0m"
)

// control bytes received in cbreak mode
const (
	keyInterrupt = 0x03
	keyEOF       = 0x04
	keyBackspace = 0x08
	keyDelete    = 0x7f
)

// ColorTerminal is an implementation of the terminal.Terminal interface.
type ColorTerminal struct {
	easyterm.Terminal
}

// NewColorTerminal is the preferred method of initialisation for the
// ColorTerminal type.
func NewColorTerminal() (*ColorTerminal, error) {
	ct := &ColorTerminal{}
	if err := ct.Initialise(os.Stdin, os.Stdout); err != nil {
		return nil, curated.Errorf("colorterm: %v", err)
	}
	return ct, nil
}

// ReadLine implements the terminal.Terminal interface.
func (ct *ColorTerminal) ReadLine(prompt string) (string, error) {
	ct.CBreakMode()
	defer ct.CanonicalMode()

	ct.Print("%s%s%s", ansiBold, prompt, ansiReset)

	line := make([]rune, 0, 32)

	for {
		r, err := ct.ReadKey()
		if err != nil {
			if err == io.EOF {
				return "", curated.Errorf(terminal.UserInterrupt)
			}
			return "", curated.Errorf("colorterm: %v", err)
		}

		switch r {
		case keyInterrupt, keyEOF:
			ct.Print("\n")
			return "", curated.Errorf(terminal.UserInterrupt)

		case '\n', '\r':
			ct.Print("\n")
			return string(line), nil

		case keyBackspace, keyDelete:
			if len(line) > 0 {
				line = line[:len(line)-1]
				ct.Print("\b \b")
			}

		default:
			// unprintable input is dropped rather than echoed
			if r < 32 {
				continue
			}
			line = append(line, r)
			ct.Print("%c", r)
		}
	}
}
