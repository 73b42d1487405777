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

package player

import (
	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/object"
	"github.com/glimmerproject/glimmer/player/values"
)

// buildPrototypes creates the prototype objects handed to display object
// bindings: movie clips get the timeline control methods, buttons and the
// other node kinds get plain objects. All of them chain to the machine's
// object prototype so hasOwnProperty and friends keep working.
func (p *Player) buildPrototypes() (clip, button, plain arena.Handle) {
	plain = p.machine.PlainPrototype()

	clip = p.objects.NewObject(plain)
	button = p.objects.NewObject(plain)

	p.clipMethod(clip, "play", func(node arena.Handle, args []values.Value) (values.Value, error) {
		p.display.SetPlaying(node, true)
		return values.Undefined(), nil
	})

	p.clipMethod(clip, "stop", func(node arena.Handle, args []values.Value) (values.Value, error) {
		p.display.SetPlaying(node, false)
		return values.Undefined(), nil
	})

	// script-facing frame numbers are one-based
	p.clipMethod(clip, "gotoAndPlay", func(node arena.Handle, args []values.Value) (values.Value, error) {
		return values.Undefined(), p.timeline.Goto(node, scriptFrame(args), true)
	})

	p.clipMethod(clip, "gotoAndStop", func(node arena.Handle, args []values.Value) (values.Value, error) {
		return values.Undefined(), p.timeline.Goto(node, scriptFrame(args), false)
	})

	p.clipMethod(clip, "nextFrame", func(node arena.Handle, args []values.Value) (values.Value, error) {
		return values.Undefined(), p.timeline.Goto(node, p.display.Cursor(node)+1, false)
	})

	p.clipMethod(clip, "prevFrame", func(node arena.Handle, args []values.Value) (values.Value, error) {
		return values.Undefined(), p.timeline.Goto(node, p.display.Cursor(node)-1, false)
	})

	p.clipMethod(clip, "swapDepths", func(node arena.Handle, args []values.Value) (values.Value, error) {
		if len(args) == 0 {
			return values.Undefined(), nil
		}
		parent := p.display.ParentOf(node)
		if parent.IsNull() {
			// the root clip has no parent and no depth to swap
			return values.Undefined(), nil
		}
		target := movie.Depth(args[0].ToNumber())
		return values.Undefined(), p.display.SwapDepths(parent, p.display.DepthOf(node), target)
	})

	return clip, button, plain
}

// clipMethod installs a native method that resolves its this binding to a
// display node before running. Calling it on a removed clip (or anything
// that is not a clip binding) raises a catchable script exception.
func (p *Player) clipMethod(proto arena.Handle, name string,
	fn func(node arena.Handle, args []values.Value) (values.Value, error)) {

	native := p.machine.NewNative(name, func(this arena.Handle, args []values.Value) (values.Value, error) {
		node, ok := p.display.NodeFor(this)
		if !ok || !p.display.Alive(node) {
			return values.Undefined(), curated.Errorf(object.DetachedObject, name)
		}
		return fn(node, args)
	})

	// installation cannot fail on a fresh prototype object
	_ = p.objects.SetProperty(proto, name, values.Object(native))
}

// scriptFrame converts a one-based script frame argument to a zero-based
// cursor position. A missing or unconvertible argument lands on frame zero
// after the timeline clamps it.
func scriptFrame(args []values.Value) int {
	if len(args) == 0 {
		return 0
	}
	return int(args[0].ToNumber()) - 1
}
