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
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/queue"
	"github.com/glimmerproject/glimmer/player/values"
)

// The functions in this file implement the userinput.HandleInput interface.
// Input never runs scripts directly. Callbacks are queued at input priority
// and run when the action queue next drains, after that tick's frame
// scripts.

// HandleMouseMotion implements the userinput.HandleInput interface.
func (p *Player) HandleMouseMotion(x, y float64) error {
	if p.movie == nil {
		return nil
	}

	p.setMousePosition(x, y)
	p.queueCallback(p.rootBinding(), "onMouseMove")
	return nil
}

// HandleMouseButton implements the userinput.HandleInput interface.
func (p *Player) HandleMouseButton(x, y float64, down bool) error {
	if p.movie == nil {
		return nil
	}

	p.setMousePosition(x, y)

	btn, ok := p.display.ButtonAt(movie.Point{X: x, Y: y})
	if !ok {
		return nil
	}

	if down {
		// the button's authored press handler, then any handler a script
		// assigned to the binding
		if c, ok := p.movie.Character(p.display.CharacterOf(btn)); ok {
			if b, ok := c.(movie.Button); ok && b.OnPress != nil {
				p.queue.Enqueue(queue.PriorityInput, queue.Entry{
					Clip:   btn,
					Script: b.OnPress,
				})
			}
		}
		p.queueCallback(p.display.Binding(btn), "onPress")
	} else {
		p.queueCallback(p.display.Binding(btn), "onRelease")
	}

	return nil
}

// HandleKey implements the userinput.HandleInput interface. Key handlers
// are looked up on the root clip's binding.
func (p *Player) HandleKey(key string, down bool) error {
	if p.movie == nil {
		return nil
	}

	name := "onKeyUp"
	if down {
		name = "onKeyDown"
	}
	p.queueCallback(p.rootBinding(), name)
	return nil
}

func (p *Player) rootBinding() arena.Handle {
	return p.display.Binding(p.display.Root())
}

func (p *Player) setMousePosition(x, y float64) {
	g := p.machine.Globals()
	_ = p.objects.SetProperty(g, "_xmouse", values.Number(x))
	_ = p.objects.SetProperty(g, "_ymouse", values.Number(y))
}

// queueCallback queues the named member function of the owner object, if
// one is assigned. Anything that is not a function object is ignored.
func (p *Player) queueCallback(owner arena.Handle, name string) {
	v, err := p.objects.GetProperty(owner, name)
	if err != nil || !v.IsObject() {
		return
	}

	fn := v.ObjectHandle()
	if _, ok := p.objects.FunctionOf(fn); !ok {
		return
	}

	p.queue.Enqueue(queue.PriorityInput, queue.Entry{
		This:     owner,
		Callback: fn,
	})
}
