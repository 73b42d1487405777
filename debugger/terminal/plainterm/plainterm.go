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

// Package plainterm implements the terminal interface in the simplest way
// possible: canonical stdin reads and unadorned stdout writes. Suitable for
// dumb terminals and for piping commands into the debugger.
package plainterm

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/debugger/terminal"
)

// PlainTerminal is an implementation of the terminal.Terminal interface.
type PlainTerminal struct {
	input  *bufio.Reader
	output io.Writer
}

// NewPlainTerminal is the preferred method of initialisation for the
// PlainTerminal type.
func NewPlainTerminal() *PlainTerminal {
	return &PlainTerminal{
		input:  bufio.NewReader(os.Stdin),
		output: os.Stdout,
	}
}

// ReadLine implements the terminal.Terminal interface.
func (pt *PlainTerminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(pt.output, prompt)

	s, err := pt.input.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return "", curated.Errorf(terminal.UserInterrupt)
		}
		return "", curated.Errorf("plainterm: %v", err)
	}

	return s, nil
}

// Print implements the terminal.Terminal interface.
func (pt *PlainTerminal) Print(format string, args ...interface{}) {
	fmt.Fprintf(pt.output, format, args...)
}

// CleanUp implements the terminal.Terminal interface.
func (pt *PlainTerminal) CleanUp() {
}
