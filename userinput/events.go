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

package userinput

// Event is the interface for all userinput events.
type Event interface{}

// EventQuit is sent when the host window is closed or the user otherwise
// asks to leave.
type EventQuit struct{}

// EventMouseMotion is sent when the pointer moves. Coordinates are in stage
// space, not window space - the host converts before sending.
type EventMouseMotion struct {
	X float64
	Y float64
}

// MouseButton identifies which button an EventMouseButton refers to.
type MouseButton int

// List of valid MouseButton values.
const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
)

// EventMouseButton is sent on button press and release.
type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X      float64
	Y      float64
}

// KeyMod identifies modifier keys held during an EventKeyboard.
type KeyMod int

// List of valid KeyMod values.
const (
	KeyModNone KeyMod = iota
	KeyModShift
	KeyModCtrl
	KeyModAlt
)

// EventKeyboard is sent on key press and release.
type EventKeyboard struct {
	Key  string
	Down bool
	Mod  KeyMod
}
