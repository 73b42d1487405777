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

package object

import "github.com/glimmerproject/glimmer/player/arena"

// MarkReachable marks the object and everything reachable from it:
// property values, the prototype link and captured closure scopes. The
// traversal is an explicit worklist so that arbitrarily deep object graphs
// cannot overflow the Go stack, and the mark bits themselves cut off
// reference cycles.
func (s *Store) MarkReachable(h arena.Handle) {
	work := []arena.Handle{h}

	for len(work) > 0 {
		cur := work[len(work)-1]
		work = work[:len(work)-1]

		if !s.table.Mark(cur) {
			// already marked, stale or null
			continue
		}

		idx, _ := s.table.Index(cur)
		e := &s.objects[idx]

		for _, v := range e.props {
			if v.IsObject() {
				work = append(work, v.ObjectHandle())
			}
		}

		if !e.proto.IsNull() {
			work = append(work, e.proto)
		}

		if e.fn != nil {
			work = append(work, e.fn.Scope...)
		}
	}
}

// Sweep reclaims every object not marked since the last ClearMarks() on the
// table. Returns the number of objects reclaimed.
func (s *Store) Sweep() int {
	return s.table.Sweep(func(idx int) {
		s.objects[idx] = entry{}
	})
}
