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

// Package action defines the decoded form of the scripting bytecode
// embedded in a movie, and validates it at load time.
//
// A Script is a flat sequence of instructions. Branch targets are
// instruction indices rather than byte offsets - the container decoder
// resolves offsets to indices when it builds these types. Validate()
// guarantees that every branch target and try-region boundary is within
// bounds so the interpreter in the avm package never has to range-check a
// jump at runtime. A script that fails validation fails the document load.
package action
