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

// Package avm is the bytecode interpreter for movie scripts. The Machine
// type executes validated scripts against the shared object store: a stack
// machine with lexical scope chains, prototype-based objects, closures and
// structured exception handling.
//
// Errors during execution fall into two classes. A script-visible exception
// (an explicit throw, or a runtime error such as touching a removed display
// object) unwinds through any try regions on the way out and can be caught
// by the script. A resource limit (instruction budget, call depth) can not
// be caught: it unwinds unconditionally, Execute returns it, and the caller
// is expected to stop running scripts from the offending source.
//
// The interpreter never yields mid-script. A script runs to completion, to
// an uncaught exception or to a resource limit before control returns to
// the player, which is why the instruction budget exists at all.
package avm
