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

// Package digest contains implementations of the player's PixelRenderer and
// audio Mixer interfaces such that a cryptographic hash is produced instead
// of a picture or a sound. The hash can be used to compare output from
// subsequent runs of the same movie - if a new hash differs from a
// previously recorded value then something has changed. This is the basis
// of the regression and performance modes.
//
// Note that the use of SHA-1 is fine for this application because this is
// not a cryptographic task.
package digest

// Digest implementations return a hash of everything they have been sent
// since the last reset.
type Digest interface {
	Hash() string
	ResetDigest()
}
