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

import (
	"sort"
	"strconv"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/values"
)

// Sentinel error patterns for the object model. Both are script-visible
// runtime exceptions, not load errors.
const (
	DetachedObject = "detached object: %s"
	PrototypeLimit = "prototype chain too deep (limit %d)"
)

// MaxPrototypeDepth is the longest prototype chain lookup will follow
// before raising an exception. Guards against content that points an
// object's prototype at itself.
const MaxPrototypeDepth = 256

// NativeBacking connects a script object to something outside the object
// model, most importantly a display object. The backing's getter/setter
// pair is consulted before the object's own property map.
type NativeBacking interface {
	// NativeGet returns the value of a native property. The second return
	// value is false if the backing does not claim the name.
	NativeGet(name string) (values.Value, bool)

	// NativeSet stores a native property, returning false if the backing
	// does not claim the name.
	NativeSet(name string, v values.Value) bool

	// Detached is true once the native side has been invalidated. All
	// scripted access to a detached backing raises an error.
	Detached() bool
}

// NativeFunc is a builtin function implementation.
type NativeFunc func(this arena.Handle, args []values.Value) (values.Value, error)

// Function is the callable payload of a function object. Either Body or
// Native is set, never both.
type Function struct {
	Name   string
	Params []string
	Body   *action.Script

	// scope chain captured at definition time, outermost first
	Scope []arena.Handle

	Native NativeFunc
}

type entry struct {
	props   map[string]values.Value
	proto   arena.Handle
	fn      *Function
	native  NativeBacking
	isArray bool
	length  int
}

// Store is the arena of script objects.
type Store struct {
	table   *arena.Table
	objects []entry
}

// NewStore is the preferred method of initialisation for the Store type.
func NewStore() *Store {
	return &Store{
		table: arena.NewTable(),
	}
}

// Table exposes the underlying arena bookkeeping. Used by the player for
// the compaction pass and for host-held weak references.
func (s *Store) Table() *arena.Table {
	return s.table
}

func (s *Store) alloc() (arena.Handle, *entry) {
	h := s.table.Alloc()
	for len(s.objects) < s.table.Len() {
		s.objects = append(s.objects, entry{})
	}
	idx, _ := s.table.Index(h)
	s.objects[idx] = entry{props: make(map[string]values.Value)}
	return h, &s.objects[idx]
}

// NewObject creates an empty object with the given prototype. The null
// handle is an acceptable prototype.
func (s *Store) NewObject(proto arena.Handle) arena.Handle {
	h, e := s.alloc()
	e.proto = proto
	return h
}

// NewArray creates an array object. Arrays are objects whose integer-named
// properties maintain a length.
func (s *Store) NewArray(proto arena.Handle) arena.Handle {
	h, e := s.alloc()
	e.proto = proto
	e.isArray = true
	return h
}

// NewFunction creates a function object.
func (s *Store) NewFunction(fn *Function, proto arena.Handle) arena.Handle {
	h, e := s.alloc()
	e.proto = proto
	e.fn = fn
	return h
}

// Bind attaches a native backing to an object.
func (s *Store) Bind(h arena.Handle, native NativeBacking) {
	if idx, ok := s.table.Index(h); ok {
		s.objects[idx].native = native
	}
}

// FunctionOf returns the callable payload of a function object.
func (s *Store) FunctionOf(h arena.Handle) (*Function, bool) {
	idx, ok := s.table.Index(h)
	if !ok || s.objects[idx].fn == nil {
		return nil, false
	}
	return s.objects[idx].fn, true
}

// NativeOf returns the native backing of an object, if any.
func (s *Store) NativeOf(h arena.Handle) (NativeBacking, bool) {
	idx, ok := s.table.Index(h)
	if !ok || s.objects[idx].native == nil {
		return nil, false
	}
	return s.objects[idx].native, true
}

// Prototype returns the object's prototype handle.
func (s *Store) Prototype(h arena.Handle) arena.Handle {
	idx, ok := s.table.Index(h)
	if !ok {
		return arena.Null
	}
	return s.objects[idx].proto
}

// SetPrototype changes the object's prototype. Creating a cycle is allowed
// here; lookup depth limiting is what keeps it safe.
func (s *Store) SetPrototype(h arena.Handle, proto arena.Handle) {
	if idx, ok := s.table.Index(h); ok {
		s.objects[idx].proto = proto
	}
}

// normalizeName canonicalises array-like index names so that "01" and "1"
// address the same property.
func normalizeName(name string) string {
	if name == "" {
		return name
	}
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return name
	}
	return strconv.FormatUint(n, 10)
}

// GetProperty resolves a property read, walking the prototype chain to at
// most MaxPrototypeDepth links. A miss resolves to undefined; a stale
// handle or detached native backing raises a detached-object error; an
// overlong (cyclic) prototype chain raises a depth error.
func (s *Store) GetProperty(h arena.Handle, name string) (values.Value, error) {
	name = normalizeName(name)

	cur := h
	for depth := 0; depth < MaxPrototypeDepth; depth++ {
		idx, ok := s.table.Index(cur)
		if !ok {
			if depth == 0 {
				return values.Undefined(), curated.Errorf(DetachedObject, "property read: "+name)
			}
			// a stale prototype link ends the chain
			return values.Undefined(), nil
		}
		e := &s.objects[idx]

		if e.native != nil {
			if e.native.Detached() {
				return values.Undefined(), curated.Errorf(DetachedObject, "property read: "+name)
			}
			if v, ok := e.native.NativeGet(name); ok {
				return v, nil
			}
		}

		if e.isArray && name == "length" {
			return values.Number(float64(e.length)), nil
		}

		if v, ok := e.props[name]; ok {
			return v, nil
		}

		if e.proto.IsNull() {
			return values.Undefined(), nil
		}
		cur = e.proto
	}

	return values.Undefined(), curated.Errorf(PrototypeLimit, MaxPrototypeDepth)
}

// SetProperty resolves a property write. Writes always land on the object
// itself, never on a prototype, unless the name is claimed by the native
// backing.
func (s *Store) SetProperty(h arena.Handle, name string, v values.Value) error {
	name = normalizeName(name)

	idx, ok := s.table.Index(h)
	if !ok {
		return curated.Errorf(DetachedObject, "property write: "+name)
	}
	e := &s.objects[idx]

	if e.native != nil {
		if e.native.Detached() {
			return curated.Errorf(DetachedObject, "property write: "+name)
		}
		if e.native.NativeSet(name, v) {
			return nil
		}
	}

	if e.isArray {
		if name == "length" {
			n := int(v.ToNumber())
			if n >= 0 {
				// shrinking drops the truncated elements
				for i := n; i < e.length; i++ {
					delete(e.props, strconv.Itoa(i))
				}
				e.length = n
			}
			return nil
		}
		if n, err := strconv.ParseUint(name, 10, 32); err == nil {
			if int(n) >= e.length {
				e.length = int(n) + 1
			}
		}
	}

	e.props[name] = v
	return nil
}

// DeleteProperty removes an own property. Deleting a property the object
// does not own is not an error.
func (s *Store) DeleteProperty(h arena.Handle, name string) error {
	name = normalizeName(name)

	idx, ok := s.table.Index(h)
	if !ok {
		return curated.Errorf(DetachedObject, "property delete: "+name)
	}
	delete(s.objects[idx].props, name)
	return nil
}

// HasOwnProperty reports whether the object itself (not a prototype) holds
// the named property.
func (s *Store) HasOwnProperty(h arena.Handle, name string) bool {
	name = normalizeName(name)
	idx, ok := s.table.Index(h)
	if !ok {
		return false
	}
	_, ok = s.objects[idx].props[name]
	return ok
}

// OwnNames returns the object's own property names in sorted order. Sorted
// because map iteration order would otherwise leak nondeterminism into
// anything that enumerates.
func (s *Store) OwnNames(h arena.Handle) []string {
	idx, ok := s.table.Index(h)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(s.objects[idx].props))
	for n := range s.objects[idx].props {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsArray reports whether the object was created as an array.
func (s *Store) IsArray(h arena.Handle) bool {
	idx, ok := s.table.Index(h)
	return ok && s.objects[idx].isArray
}

// ArrayLength returns the length of an array object, or zero for anything
// else.
func (s *Store) ArrayLength(h arena.Handle) int {
	idx, ok := s.table.Index(h)
	if !ok || !s.objects[idx].isArray {
		return 0
	}
	return s.objects[idx].length
}
