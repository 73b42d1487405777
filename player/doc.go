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

// Package player contains the emulated movie player. The Player type is the
// root of the emulation and the only type hosts need to deal with directly.
// It owns the display object graph, the script machine, the action queue and
// the audio tracker, and drives them all from AdvanceFrame().
//
// A tick proceeds in fixed phases: every timeline advances and runs its
// control tags; the action queue drains, running frame scripts and then
// input callbacks; the audio tracker mixes one tick of sound; unreachable
// objects are reclaimed; and the finished frame is pushed to every
// registered renderer. Scripts never run during timeline advancement and
// renderers never observe a half-advanced graph.
//
// The ticking is deterministic. Two players fed the same movie and the same
// input events produce identical frame snapshots and identical audio,
// tick for tick.
package player
