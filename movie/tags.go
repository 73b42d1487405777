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

package movie

import "github.com/glimmerproject/glimmer/movie/action"

// Depth is the stacking-order key of a display object. Unique among the
// children of one parent at any instant.
type Depth int

// ControlTag is one timeline instruction. Tags execute in file order within
// their frame.
type ControlTag interface {
	controlTag()
}

// Frame is the group of control tags between two frame-boundary markers in
// the container.
type Frame struct {
	Tags []ControlTag
}

// PlaceObject places a new character at a depth or modifies the object
// already there.
//
// With Move unset the tag places a new character, replacing any existing
// occupant of the depth. With Move set and no character ID the tag adjusts
// the existing occupant in place. Whenever the character ID names the same
// character already at the depth, Move or not, the occupant is likewise
// adjusted in place rather than replaced - replacing it would spuriously
// re-run its initialisation, notably when a looping timeline re-runs a
// frame's placement tags.
type PlaceObject struct {
	Depth        Depth
	HasCharacter bool
	ID           CharacterID
	Move         bool

	Name string

	HasMatrix bool
	Matrix    Matrix

	HasColorTransform bool
	ColorTransform    ColorTransform
}

func (t PlaceObject) controlTag() {}

// RemoveObject removes the display object at a depth. Removal is logical
// detachment; the object's storage is reclaimed later by the arena.
type RemoveObject struct {
	Depth Depth
}

func (t RemoveObject) controlTag() {}

// DoAction attaches a script to the frame. The script does not run during
// control tag processing - it is queued and runs when the action queue
// drains, after every timeline has advanced.
type DoAction struct {
	Script *action.Script
}

func (t DoAction) controlTag() {}

// StartSound starts or stops an event sound.
type StartSound struct {
	ID    CharacterID
	Loops int
	Stop  bool
}

func (t StartSound) controlTag() {}
