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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/glimmerproject/glimmer/userinput"
)

func setupService() {
	// MOUSEMOTION events fill up the event queue pretty quickly and we only
	// want one value per frame, which we can get with a single call to
	// GetMouseState()
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)
}

// Service implements the gui.GUI interface.
//
// MUST ONLY be called from the main thread.
func (scr *SdlPlay) Service() {
	// loop until there are no more events to retrieve. servicing just one
	// event per call is not enough; queued events would take one frame or
	// longer to resolve
	done := false
	for !done {
		// timing out straight away if there's nothing pending
		ev := sdl.WaitEventTimeout(1)

		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			scr.events <- userinput.EventQuit{}

		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				break
			}

			mod := userinput.KeyModNone
			state := sdl.GetModState()
			if state&(sdl.KMOD_LALT|sdl.KMOD_RALT) != 0 {
				mod = userinput.KeyModAlt
			} else if state&(sdl.KMOD_LSHIFT|sdl.KMOD_RSHIFT) != 0 {
				mod = userinput.KeyModShift
			} else if state&(sdl.KMOD_LCTRL|sdl.KMOD_RCTRL) != 0 {
				mod = userinput.KeyModCtrl
			}

			scr.events <- userinput.EventKeyboard{
				Key:  sdl.GetKeyName(ev.Keysym.Sym),
				Mod:  mod,
				Down: ev.Type == sdl.KEYDOWN,
			}

		case *sdl.MouseButtonEvent:
			button := userinput.MouseButtonLeft
			if ev.Button == sdl.BUTTON_RIGHT {
				button = userinput.MouseButtonRight
			}

			x, y := scr.toStage(ev.X, ev.Y)
			scr.events <- userinput.EventMouseButton{
				Button: button,
				Down:   ev.Type == sdl.MOUSEBUTTONDOWN,
				X:      x,
				Y:      y,
			}

		case nil:
			// WaitEventTimeout has timed out, meaning the queue is empty
			done = true
		}
	}

	// one motion event per service call at most
	mx, my, _ := sdl.GetMouseState()
	if mx != scr.mouseX || my != scr.mouseY {
		scr.mouseX = mx
		scr.mouseY = my
		x, y := scr.toStage(mx, my)
		scr.events <- userinput.EventMouseMotion{X: x, Y: y}
	}
}
