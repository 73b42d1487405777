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

// Package disassembly produces a human readable listing of every script in
// a movie: main timeline frame actions, sprite frame actions and button
// handlers. Function bodies defined inside a script are listed indented
// below the defining instruction.
package disassembly

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/movie/action"
)

// Sentinel error pattern for disassembly failures.
const DisasmError = "disassembly: %v"

// Write the disassembly of every script in the movie to output.
func Write(output io.Writer, mov *movie.Movie) error {
	w := &writer{output: output}

	w.frames("main timeline", mov.Frames)

	// character iteration in ID order for a stable listing
	ids := make([]int, 0, len(mov.Characters))
	for id := range mov.Characters {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	for _, id := range ids {
		switch c := mov.Characters[movie.CharacterID(id)].(type) {
		case movie.Sprite:
			w.frames(fmt.Sprintf("sprite %d", id), c.Frames)
		case movie.Button:
			if c.OnPress != nil {
				w.header(fmt.Sprintf("button %d onPress", id))
				w.script(c.OnPress, 0)
			}
		}
	}

	return w.err
}

type writer struct {
	output io.Writer
	err    error
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	if _, err := fmt.Fprintf(w.output, format, args...); err != nil {
		w.err = curated.Errorf(DisasmError, err)
	}
}

func (w *writer) header(title string) {
	w.printf("\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func (w *writer) frames(title string, frames []movie.Frame) {
	for i, f := range frames {
		for _, tag := range f.Tags {
			if act, ok := tag.(movie.DoAction); ok {
				w.header(fmt.Sprintf("%s frame %d", title, i+1))
				w.script(act.Script, 0)
			}
		}
	}
}

func (w *writer) script(s *action.Script, depth int) {
	indent := strings.Repeat("\t", depth)

	for i, ins := range s.Instructions {
		w.printf("%s%3d  %-9s%s\n", indent, i, ins.Op, operand(ins))

		if ins.Op == action.DefineFunction {
			w.script(ins.Script, depth+1)
		}
	}
}

// operand formats the operand fields that apply to the instruction.
func operand(ins action.Instruction) string {
	switch ins.Op {
	case action.PushNumber:
		return fmt.Sprintf("%g", ins.Number)
	case action.PushString:
		return fmt.Sprintf("%q", ins.Str)
	case action.PushBool:
		return fmt.Sprintf("%v", ins.Bool)
	case action.Jump, action.If:
		return fmt.Sprintf("-> %d", ins.Int)
	case action.InitObject, action.InitArray, action.CallFunction, action.CallMethod:
		return fmt.Sprintf("n=%d", ins.Int)
	case action.DefineFunction:
		name := ins.Str
		if name == "" {
			name = "(anonymous)"
		}
		return fmt.Sprintf("%s(%s)", name, strings.Join(ins.Params, ", "))
	case action.Try:
		if ins.Try == nil {
			return ""
		}
		var parts []string
		if ins.Try.HasCatch {
			parts = append(parts, fmt.Sprintf("catch %q -> %d", ins.Try.CatchVar, ins.Try.CatchTarget))
		}
		if ins.Try.HasFinally {
			parts = append(parts, fmt.Sprintf("finally -> %d", ins.Try.FinallyTarget))
		}
		parts = append(parts, fmt.Sprintf("end -> %d", ins.Try.EndTarget))
		return strings.Join(parts, ", ")
	}
	return ""
}
