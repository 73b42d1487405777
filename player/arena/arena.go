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

// Package arena provides generation-tagged slot tables. Script objects and
// display objects are stored in arenas and referred to by Handle everywhere
// else - the VM operand stack, closures, the display list, host-exposed
// references. A Handle is an (index, generation) pair; when a slot is
// reclaimed its generation is bumped, so a stale Handle fails the
// generation check instead of silently aliasing whatever reuses the slot.
//
// The Table owns only the bookkeeping. The actual storage lives with the
// client package as a slice aligned with the table's slots, grown in step
// with Len().
//
// Reclamation is a mark and sweep pass over the table, run by the player at
// the end of a tick - never from inside the interpreter loop. A slot swept
// while weak references are registered against it (host-exposed handles) is
// invalidated immediately but not reused until the last weak reference is
// released.
package arena

// Handle is a non-owning reference to an arena slot. The zero value is the
// null handle and never refers to a live slot.
type Handle struct {
	idx uint32
	gen uint32
}

// Null is the handle that refers to nothing.
var Null = Handle{}

// IsNull is true if the handle is the null handle.
func (h Handle) IsNull() bool {
	return h.gen == 0
}

// Table is the bookkeeping for one arena: generation counters, liveness,
// mark bits, weak reference counts and the free list.
type Table struct {
	gens  []uint32
	alive []bool
	marks []bool
	weaks []uint32

	// slots that have been swept but cannot be reused until their weak
	// count drops to zero
	limbo []bool

	free []uint32
	live int
}

// NewTable is the preferred method of initialisation for the Table type.
func NewTable() *Table {
	return &Table{}
}

// Len returns the number of slots ever allocated, live or not. Client
// storage slices must be at least this long.
func (t *Table) Len() int {
	return len(t.gens)
}

// Live returns the number of currently live slots.
func (t *Table) Live() int {
	return t.live
}

// Alloc reserves a slot and returns its handle.
func (t *Table) Alloc() Handle {
	var idx uint32

	if len(t.free) > 0 {
		idx = t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
	} else {
		idx = uint32(len(t.gens))
		t.gens = append(t.gens, 1)
		t.alive = append(t.alive, false)
		t.marks = append(t.marks, false)
		t.weaks = append(t.weaks, 0)
		t.limbo = append(t.limbo, false)
	}

	t.alive[idx] = true
	t.marks[idx] = false
	t.live++

	return Handle{idx: idx, gen: t.gens[idx]}
}

// Check returns true if the handle refers to a live slot of the current
// generation.
func (t *Table) Check(h Handle) bool {
	if h.gen == 0 || int(h.idx) >= len(t.gens) {
		return false
	}
	return t.alive[h.idx] && t.gens[h.idx] == h.gen
}

// Index returns the slot index for a handle, for use with client storage.
// The second return value is false if the handle is stale or null.
func (t *Table) Index(h Handle) (int, bool) {
	if !t.Check(h) {
		return 0, false
	}
	return int(h.idx), true
}

// Acquire registers a weak reference against the handle's slot. The slot
// will not be reused, even after being swept, while weak references remain.
// Returns false if the handle is already stale.
func (t *Table) Acquire(h Handle) bool {
	if !t.Check(h) {
		return false
	}
	t.weaks[h.idx]++
	return true
}

// Release a weak reference previously registered with Acquire(). Safe to
// call after the slot has been swept - that is the case the weak count
// exists for.
func (t *Table) Release(h Handle) {
	if h.gen == 0 || int(h.idx) >= len(t.gens) {
		return
	}

	// the slot cannot have been reused while our weak reference was
	// registered, so the index is still ours even if the generation has
	// moved on
	if t.weaks[h.idx] == 0 {
		return
	}
	t.weaks[h.idx]--

	if t.weaks[h.idx] == 0 && t.limbo[h.idx] {
		t.limbo[h.idx] = false
		t.free = append(t.free, h.idx)
	}
}

// ClearMarks prepares the table for a mark and sweep pass.
func (t *Table) ClearMarks() {
	for i := range t.marks {
		t.marks[i] = false
	}
}

// Mark a slot as reachable. Returns true if the slot was newly marked -
// the caller uses this to cut off traversal of reference cycles.
func (t *Table) Mark(h Handle) bool {
	if !t.Check(h) {
		return false
	}
	if t.marks[h.idx] {
		return false
	}
	t.marks[h.idx] = true
	return true
}

// Sweep reclaims every live slot that was not marked since the last
// ClearMarks(). The onFree callback gives the client the chance to zero its
// aligned storage. Returns the number of slots reclaimed.
func (t *Table) Sweep(onFree func(idx int)) int {
	count := 0

	for idx := range t.gens {
		if !t.alive[idx] || t.marks[idx] {
			continue
		}

		t.alive[idx] = false
		t.gens[idx]++
		if t.gens[idx] == 0 {
			// generation wrapped. skip the null generation
			t.gens[idx] = 1
		}
		t.live--

		if t.weaks[idx] == 0 {
			t.free = append(t.free, uint32(idx))
		} else {
			t.limbo[idx] = true
		}

		if onFree != nil {
			onFree(idx)
		}
		count++
	}

	return count
}
