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

// Package object implements the script object model: arena-owned objects
// with named properties, single-parent prototype chains and optional native
// backings.
//
// Property reads walk the prototype chain to a bounded depth. The bound
// exists because content can point an object's prototype at itself (or at a
// longer cycle) and lookup must terminate with a script-visible exception
// rather than looping forever.
//
// Property writes always land on the object itself, never on a prototype,
// unless the name is claimed by the object's native backing. A native
// backing is how a display object exposes its position, visibility and so
// on: the backing's getter/setter pair is consulted before the ordinary
// property map. When the underlying display object has been removed from
// the graph the backing reports itself detached and every scripted access
// becomes a detached-object error - never undefined behaviour.
//
// Objects are reclaimed only by the arena's mark and sweep pass, driven by
// the player at the end of a tick. Reference cycles between objects are
// broken by the arena, not by reference counting.
package object
