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

// Package display implements the display object graph: the arena-owned,
// depth-ordered tree of renderable and scriptable nodes that the timeline
// and the virtual machine both operate on.
//
// Each node lives in an arena slot and refers to its parent and children by
// handle - a child holds a back-reference to its parent but does not keep
// it alive. Depth values are unique among the live children of one parent
// at any instant. Placement at an occupied depth replaces the occupant
// unless the placement is a move of the same character already there, in
// which case the occupant is adjusted in place (replacing it would
// re-trigger its initialisation for no reason).
//
// Removal is logical: the node is marked removed and its script binding's
// native backing reports itself detached, but the node's storage survives
// until the player's end-of-tick compaction pass. This is what makes
// "remove while iterating" safe - traversal never observes a half-removed
// structure, and outstanding script references observe a detached object
// rather than a dangling pointer.
//
// Traversal order is depth-ascending among siblings and depth-first into
// children. Rendering, structural event dispatch and timeline advancement
// all use the same order, which is what makes output deterministic for a
// given input.
package display
