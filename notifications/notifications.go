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

package notifications

// Notice describes events inside the player that a host may want to present
// to the user. Notices are informational; the player has already taken
// whatever action the event required.
type Notice string

// List of defined notifications.
const (
	// a movie has been loaded and validated
	NotifyMovieLoaded Notice = "NotifyMovieLoaded"

	// a script raised an exception that no try region caught. the rest of
	// that tick's queued scripts were discarded
	NotifyUncaughtException Notice = "NotifyUncaughtException"

	// a script exhausted its instruction budget
	NotifyScriptTimeout Notice = "NotifyScriptTimeout"

	// script execution has been disabled for the rest of the session,
	// following a resource limit error
	NotifyScriptDisabled Notice = "NotifyScriptDisabled"
)

// Notify is used for direct communication between the player and the host.
type Notify interface {
	Notify(notice Notice) error
}
