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
	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/object"
)

// Sentinel error patterns for display list operations.
const (
	StaleHandle      = "display list: stale handle"
	NotAClip         = "display list: not a movie clip"
	UnknownCharacter = "display list: unknown character (%d)"
)

// Kind enumerates the display object variants.
type Kind int

// List of valid Kind values.
const (
	KindShape Kind = iota
	KindClip
	KindText
	KindButton
	KindBitmap
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindClip:
		return "clip"
	case KindText:
		return "text"
	case KindButton:
		return "button"
	case KindBitmap:
		return "bitmap"
	}
	return "unknown"
}

// clipState is the timeline-facing state of a movie clip node.
type clipState struct {
	frames  []movie.Frame
	cursor  int
	playing bool

	// depth-indexed children. entries for removed nodes linger until the
	// compaction pass
	children map[movie.Depth]arena.Handle
}

type node struct {
	kind    Kind
	charID  movie.CharacterID
	name    string
	depth   movie.Depth
	parent  arena.Handle
	matrix  movie.Matrix
	cxform  movie.ColorTransform
	visible bool
	removed bool

	// handle into the object store for the node's script binding
	binding arena.Handle

	clip *clipState
}

// Store is the arena of display objects.
type Store struct {
	table *arena.Table
	nodes []node

	objects *object.Store
	lib     map[movie.CharacterID]movie.Character

	// prototypes for script bindings, per node kind. installed by the
	// player before any node is created
	clipProto   arena.Handle
	buttonProto arena.Handle
	plainProto  arena.Handle

	root arena.Handle
}

// NewStore is the preferred method of initialisation for the Store type.
// The object store is where script bindings for display objects live.
func NewStore(objects *object.Store) *Store {
	return &Store{
		table:   arena.NewTable(),
		objects: objects,
		lib:     make(map[movie.CharacterID]movie.Character),
	}
}

// Table exposes the underlying arena bookkeeping.
func (s *Store) Table() *arena.Table {
	return s.table
}

// SetLibrary installs the character definitions that placement tags refer
// to.
func (s *Store) SetLibrary(lib map[movie.CharacterID]movie.Character) {
	s.lib = lib
}

// SetPrototypes installs the prototype objects handed to new script
// bindings.
func (s *Store) SetPrototypes(clip, button, plain arena.Handle) {
	s.clipProto = clip
	s.buttonProto = button
	s.plainProto = plain
}

func (s *Store) alloc() (arena.Handle, *node) {
	h := s.table.Alloc()
	for len(s.nodes) < s.table.Len() {
		s.nodes = append(s.nodes, node{})
	}
	idx, _ := s.table.Index(h)
	s.nodes[idx] = node{
		matrix:  movie.IdentityMatrix(),
		cxform:  movie.IdentityColorTransform(),
		visible: true,
	}
	return h, &s.nodes[idx]
}

func (s *Store) lookup(h arena.Handle) (*node, bool) {
	idx, ok := s.table.Index(h)
	if !ok {
		return nil, false
	}
	return &s.nodes[idx], true
}

// NewRoot creates the root movie clip for the main timeline. The root has
// no parent and is never removed.
func (s *Store) NewRoot(frames []movie.Frame) arena.Handle {
	h, e := s.alloc()
	e.kind = KindClip
	e.name = "_root"
	e.clip = &clipState{
		frames:   frames,
		cursor:   -1,
		playing:  true,
		children: make(map[movie.Depth]arena.Handle),
	}
	e.binding = s.objects.NewObject(s.clipProto)
	s.objects.Bind(e.binding, &backing{store: s, node: h})
	s.root = h
	return h
}

// Root returns the root clip.
func (s *Store) Root() arena.Handle {
	return s.root
}

// newNode creates an unparented node for a character definition.
func (s *Store) newNode(id movie.CharacterID) (arena.Handle, error) {
	c, ok := s.lib[id]
	if !ok {
		return arena.Null, curated.Errorf(UnknownCharacter, id)
	}

	h, e := s.alloc()
	e.charID = id

	proto := s.plainProto
	switch c := c.(type) {
	case movie.Sprite:
		e.kind = KindClip
		e.clip = &clipState{
			frames:   c.Frames,
			cursor:   -1,
			playing:  true,
			children: make(map[movie.Depth]arena.Handle),
		}
		proto = s.clipProto
	case movie.Shape:
		e.kind = KindShape
	case movie.Text:
		e.kind = KindText
	case movie.Button:
		e.kind = KindButton
		proto = s.buttonProto
	case movie.Bitmap:
		e.kind = KindBitmap
	}

	e.binding = s.objects.NewObject(proto)
	s.objects.Bind(e.binding, &backing{store: s, node: h})

	return h, nil
}

// occupant returns the live child at a depth, ignoring logically removed
// entries.
func (s *Store) occupant(c *clipState, depth movie.Depth) (arena.Handle, *node, bool) {
	h, ok := c.children[depth]
	if !ok {
		return arena.Null, nil, false
	}
	e, ok := s.lookup(h)
	if !ok || e.removed {
		return arena.Null, nil, false
	}
	return h, e, true
}

// PlaceChild executes a placement tag against a parent clip. The returned
// handle is the placed or adjusted node; the null handle with a nil error
// means the tag had nothing to do (a move of an empty depth).
//
// The caller is responsible for running the first frame of a newly placed
// sprite - placement is purely structural.
func (s *Store) PlaceChild(parent arena.Handle, tag movie.PlaceObject) (arena.Handle, error) {
	p, ok := s.lookup(parent)
	if !ok {
		return arena.Null, curated.Errorf(StaleHandle)
	}
	if p.clip == nil {
		return arena.Null, curated.Errorf(NotAClip)
	}

	cur, curNode, occupied := s.occupant(p.clip, tag.Depth)

	// a placement naming the occupant's own character (or a characterless
	// move) mutates the occupant in place. replacing it would spuriously
	// re-run its initialisation, notably when a looping timeline re-runs a
	// frame's placement tags
	adjust := occupied && tag.HasCharacter && curNode.charID == tag.ID
	adjust = adjust || (occupied && tag.Move && !tag.HasCharacter)
	if adjust {
		if tag.HasMatrix {
			curNode.matrix = tag.Matrix
		}
		if tag.HasColorTransform {
			curNode.cxform = tag.ColorTransform
		}
		if tag.Name != "" {
			curNode.name = tag.Name
		}
		return cur, nil
	}

	if !tag.HasCharacter {
		// nothing to place and nothing to move
		return arena.Null, nil
	}

	// the existing occupant, if any, is replaced. its binding observes the
	// detachment immediately
	if occupied {
		s.detach(cur)
	}

	h, err := s.newNode(tag.ID)
	if err != nil {
		return arena.Null, err
	}

	e, _ := s.lookup(h)
	e.parent = parent
	e.depth = tag.Depth
	e.name = tag.Name
	if tag.HasMatrix {
		e.matrix = tag.Matrix
	}
	if tag.HasColorTransform {
		e.cxform = tag.ColorTransform
	}

	p.clip.children[tag.Depth] = h

	return h, nil
}

// RemoveChild logically removes the child at a depth. Removing an empty
// depth is not an error. The node's script binding is detached immediately;
// the storage is reclaimed by the next compaction pass.
func (s *Store) RemoveChild(parent arena.Handle, depth movie.Depth) error {
	p, ok := s.lookup(parent)
	if !ok {
		return curated.Errorf(StaleHandle)
	}
	if p.clip == nil {
		return curated.Errorf(NotAClip)
	}

	h, _, occupied := s.occupant(p.clip, depth)
	if !occupied {
		return nil
	}

	s.detach(h)
	return nil
}

// detach marks the node and its whole subtree as removed.
func (s *Store) detach(h arena.Handle) {
	e, ok := s.lookup(h)
	if !ok || e.removed {
		return
	}
	e.removed = true

	if e.clip != nil {
		for _, child := range e.clip.children {
			s.detach(child)
		}
	}
}

// SwapDepths exchanges the children at two depths. If only one depth is
// occupied the occupant moves to the other depth. Depth uniqueness holds
// throughout.
func (s *Store) SwapDepths(parent arena.Handle, a, b movie.Depth) error {
	if a == b {
		return nil
	}

	p, ok := s.lookup(parent)
	if !ok {
		return curated.Errorf(StaleHandle)
	}
	if p.clip == nil {
		return curated.Errorf(NotAClip)
	}

	ha, na, aOK := s.occupant(p.clip, a)
	hb, nb, bOK := s.occupant(p.clip, b)

	switch {
	case aOK && bOK:
		p.clip.children[a] = hb
		p.clip.children[b] = ha
		na.depth = b
		nb.depth = a
	case aOK:
		delete(p.clip.children, a)
		p.clip.children[b] = ha
		na.depth = b
	case bOK:
		delete(p.clip.children, b)
		p.clip.children[a] = hb
		nb.depth = a
	}

	return nil
}

// FindByName returns the live child with the given name. Children are
// searched in depth order so the result is deterministic even if names
// collide.
func (s *Store) FindByName(parent arena.Handle, name string) (arena.Handle, bool) {
	for _, h := range s.Children(parent) {
		if e, ok := s.lookup(h); ok && e.name == name {
			return h, true
		}
	}
	return arena.Null, false
}
