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

package debugger

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/player/arena"
)

// treeNode is a pointer-linked mirror of one display node, built solely so
// memviz can walk the graph. Handles are resolved to labels at build time.
type treeNode struct {
	Label    string
	Children []*treeNode
}

func (dbg *Debugger) buildTree(h arena.Handle) *treeNode {
	d := dbg.ply.Display()

	kind, _ := d.KindOf(h)
	label := kind.String()
	if name := d.NameOf(h); name != "" {
		label = fmt.Sprintf("%s %q", label, name)
	}
	if id := d.CharacterOf(h); id != 0 {
		label = fmt.Sprintf("%s (char %d)", label, id)
	}
	if d.IsClip(h) {
		label = fmt.Sprintf("%s frame %d", label, d.Cursor(h)+1)
	}

	n := &treeNode{Label: label}
	for _, c := range d.Children(h) {
		child := dbg.buildTree(c)
		child.Label = fmt.Sprintf("depth %d: %s", d.DepthOf(c), child.Label)
		n.Children = append(n.Children, child)
	}

	return n
}

// tree writes a graphviz rendering of the display graph, to the named file
// or to the terminal. Render with dot: dot -Tsvg -o tree.svg <file>
func (dbg *Debugger) tree(fname string) error {
	root := dbg.buildTree(dbg.ply.Display().Root())

	if fname == "" {
		memviz.Map(termWriter{dbg.term}, root)
		return nil
	}

	f, err := os.Create(fname)
	if err != nil {
		return curated.Errorf(DebuggerError, err)
	}
	defer f.Close()

	memviz.Map(f, root)
	dbg.term.Print("display graph written to %s\n", fname)

	return nil
}
