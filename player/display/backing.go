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

package display

import (
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/values"
)

// backing is the native side of a display object's script binding. The
// property names are those of the emulated dialect.
type backing struct {
	store *Store
	node  arena.Handle
}

// Detached implements the object.NativeBacking interface. True from the
// moment the display object is removed from the graph - possibly before
// its storage is reclaimed.
func (b *backing) Detached() bool {
	e, ok := b.store.lookup(b.node)
	return !ok || e.removed
}

// NativeGet implements the object.NativeBacking interface.
func (b *backing) NativeGet(name string) (values.Value, bool) {
	e, ok := b.store.lookup(b.node)
	if !ok {
		return values.Undefined(), false
	}

	switch name {
	case "_x":
		return values.Number(e.matrix.TX), true
	case "_y":
		return values.Number(e.matrix.TY), true
	case "_visible":
		return values.Boolean(e.visible), true
	case "_alpha":
		return values.Number(e.cxform.AMult * 100), true
	case "_name":
		return values.String(e.name), true
	case "_parent":
		if p, ok := b.store.lookup(e.parent); ok {
			return values.Object(p.binding), true
		}
		return values.Undefined(), true
	case "_currentframe":
		if e.clip != nil {
			// script frame numbers are one-based
			return values.Number(float64(e.clip.cursor + 1)), true
		}
	case "_totalframes":
		if e.clip != nil {
			return values.Number(float64(len(e.clip.frames))), true
		}
	}

	return values.Undefined(), false
}

// NativeSet implements the object.NativeBacking interface.
func (b *backing) NativeSet(name string, v values.Value) bool {
	e, ok := b.store.lookup(b.node)
	if !ok {
		return false
	}

	switch name {
	case "_x":
		e.matrix.TX = v.ToNumber()
		return true
	case "_y":
		e.matrix.TY = v.ToNumber()
		return true
	case "_visible":
		e.visible = v.ToBoolean()
		return true
	case "_alpha":
		e.cxform.AMult = v.ToNumber() / 100
		return true
	case "_name":
		e.name = v.ToString()
		return true
	case "_currentframe", "_totalframes", "_parent":
		// read-only. the write is swallowed, not an error
		return true
	}

	return false
}
