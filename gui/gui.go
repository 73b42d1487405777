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

// Package gui defines the interface between the player loop and a windowed
// host. Implementations live in the sub-packages; the player itself never
// imports them.
package gui

// GUI is implemented by windowed hosts. In addition to this interface a
// host is expected to implement player.PixelRenderer, receiving the frame
// snapshots it is to display.
type GUI interface {
	// Service translates pending host window events into userinput events.
	// It must be called regularly, between player ticks, and only ever from
	// the main thread.
	Service()
}
