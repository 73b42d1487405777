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

// Package terminal defines the operations required for command line
// interaction with the debugger. Implementations live in the sub-packages:
// plainterm for dumb terminals and IO redirection, colorterm for ANSI
// terminals.
package terminal

// Sentinel error pattern returned by ReadLine when the user interrupts the
// session (ctrl-c or EOF).
const UserInterrupt = "user interrupt"

// Terminal is the interface the debugger uses for all command line input
// and output.
type Terminal interface {
	// ReadLine presents the prompt and blocks until the user has entered a
	// complete line
	ReadLine(prompt string) (string, error)

	// Print the formatted string to the terminal
	Print(format string, args ...interface{})

	// CleanUp restores the terminal to the state it was found in
	CleanUp()
}
