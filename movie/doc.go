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

// Package movie is the in-memory representation of a decoded multimedia
// document. It is the input to the player package.
//
// A Movie is an ordered sequence of frames. Each frame is an ordered
// sequence of control tags (place a character on the stage, remove one,
// trigger a script, start a sound). Characters are the reusable definitions
// the control tags refer to: shapes, sprites (nested timelines), text,
// buttons, bitmaps and sounds.
//
// The package deliberately knows nothing about the binary container format.
// Decoding the bits and bytes of a container file into these types is the
// job of a separate decoder; this package only defines the decoded form and
// validates it as a whole with the Validate() function. Validation failure
// rejects the entire document - there are no partial loads.
package movie
