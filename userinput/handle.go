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

// HandleInput conceptualises input data being sent to the player. The
// player queues the resulting script callbacks; they run when the action
// queue next drains, never immediately.
type HandleInput interface {
	HandleMouseMotion(x, y float64) error
	HandleMouseButton(x, y float64, down bool) error
	HandleKey(key string, down bool) error
}

// HandleUserInput forwards an event to the player. The boolean return value
// is true if the event was a quit request.
func HandleUserInput(ev Event, handle HandleInput) (bool, error) {
	switch ev := ev.(type) {
	case EventQuit:
		return true, nil
	case EventMouseMotion:
		return false, handle.HandleMouseMotion(ev.X, ev.Y)
	case EventMouseButton:
		if ev.Button == MouseButtonLeft {
			return false, handle.HandleMouseButton(ev.X, ev.Y, ev.Down)
		}
	case EventKeyboard:
		return false, handle.HandleKey(ev.Key, ev.Down)
	}
	return false, nil
}
