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

// Package sdlplay is a simple SDL implementation of the player.PixelRenderer
// interface. Rasterisation is done in software by the video package; this
// package only uploads the finished framebuffer to a streaming texture and
// translates SDL window events into userinput events.
package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/glimmerproject/glimmer/curated"
	"github.com/glimmerproject/glimmer/gui"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/player"
	"github.com/glimmerproject/glimmer/player/display"
	"github.com/glimmerproject/glimmer/userinput"
	"github.com/glimmerproject/glimmer/video"
)

// Sentinel error pattern for all SDL failures.
const SDL = "sdl: %v"

const pixelDepth = 4

// the host contract, in both its halves
var _ gui.GUI = (*SdlPlay)(nil)
var _ player.PixelRenderer = (*SdlPlay)(nil)

// SdlPlay is a simple SDL implementation of the player.PixelRenderer
// interface.
type SdlPlay struct {
	raster *video.Renderer

	// connects Service() with the player loop
	events chan<- userinput.Event

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width  int32
	height int32
	scale  float32

	// last mouse position seen by Service(), in window coordinates. used to
	// suppress duplicate motion events
	mouseX int32
	mouseY int32
}

// NewSdlPlay is the preferred method of initialisation for the SdlPlay type.
func NewSdlPlay(mov *movie.Movie, scale float32, events chan<- userinput.Event) (*SdlPlay, error) {
	scr := &SdlPlay{
		raster: video.NewRenderer(mov),
		events: events,
		width:  int32(mov.Width),
		height: int32(mov.Height),
		scale:  scale,
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	var err error

	scr.window, err = sdl.CreateWindow(mov.Title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(float32(scr.width)*scale), int32(float32(scr.height)*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	scr.renderer, err = sdl.CreateRenderer(scr.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	// texture is the same size as the stage. the renderer scales it to the
	// window
	scr.texture, err = scr.renderer.CreateTexture(uint32(sdl.PIXELFORMAT_ABGR8888),
		int(sdl.TEXTUREACCESS_STREAMING), scr.width, scr.height)
	if err != nil {
		return nil, curated.Errorf(SDL, err)
	}

	setupService()

	return scr, nil
}

// Render implements the player.PixelRenderer interface.
func (scr *SdlPlay) Render(nodes []display.RenderNode) error {
	if err := scr.raster.Render(nodes); err != nil {
		return err
	}

	if err := scr.texture.Update(nil, scr.raster.Pixels(), int(scr.width)*pixelDepth); err != nil {
		return curated.Errorf(SDL, err)
	}
	if err := scr.renderer.Copy(scr.texture, nil, nil); err != nil {
		return curated.Errorf(SDL, err)
	}
	scr.renderer.Present()

	return nil
}

// EndRendering implements the player.PixelRenderer interface.
func (scr *SdlPlay) EndRendering() error {
	scr.texture.Destroy()
	scr.renderer.Destroy()
	scr.window.Destroy()
	sdl.Quit()
	return nil
}

// toStage converts window coordinates to stage coordinates.
func (scr *SdlPlay) toStage(x, y int32) (float64, float64) {
	return float64(x) / float64(scr.scale), float64(y) / float64(scr.scale)
}
