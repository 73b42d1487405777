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

// Package timeline advances movie clip playback. On every tick each playing
// clip moves its frame cursor forward (wrapping at the end of its frame
// list) and runs the control tags of the new frame in file order.
//
// Control tag processing is structural only. Scripts attached to a frame are
// handed to the Effects sink to be queued and run after every timeline has
// advanced; sound triggers likewise. The one scripted exception is a newly
// instantiated sprite, which runs the tags of its first frame immediately so
// it is never visible in an unconstructed state.
package timeline

import (
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/display"
)

// Effects receives the non-structural side effects of control tag
// processing. Implemented by the player.
type Effects interface {
	// EnqueueFrameScript queues a frame script for the clip. The script does
	// not run until the action queue drains.
	EnqueueFrameScript(clip arena.Handle, script *action.Script)

	// StartSound triggers or stops an event sound.
	StartSound(tag movie.StartSound)
}

// Timeline advances the clips of one display graph.
type Timeline struct {
	display *display.Store
	effects Effects
}

// NewTimeline is the preferred method of initialisation for the Timeline
// type.
func NewTimeline(d *display.Store, e Effects) *Timeline {
	return &Timeline{display: d, effects: e}
}

// AdvanceAll performs one tick of timeline playback. The set of clips to
// advance is decided before any of them run: clips instantiated by this
// tick's control tags wait until the next tick (their first frame has
// already run at instantiation), and clips removed by an earlier clip's tags
// are skipped.
func (tl *Timeline) AdvanceAll() error {
	var clips []arena.Handle
	tl.display.Walk(tl.display.Root(), func(h arena.Handle) {
		if tl.display.IsClip(h) {
			clips = append(clips, h)
		}
	})

	for _, h := range clips {
		if !tl.display.Alive(h) || !tl.display.Playing(h) {
			continue
		}
		if err := tl.Advance(h); err != nil {
			return err
		}
	}

	return nil
}

// Advance moves the clip's cursor to the next frame, wrapping at the end of
// the frame list, and runs the new frame's tags. A clip with no frames is
// left alone.
func (tl *Timeline) Advance(clip arena.Handle) error {
	n := tl.display.FrameCount(clip)
	if n == 0 {
		return nil
	}

	next := tl.display.Cursor(clip) + 1
	if next >= n {
		next = 0
	}
	tl.display.SetCursor(clip, next)

	return tl.RunFrame(clip, next)
}

// Goto moves the clip's cursor directly to a frame and runs only that
// frame's tags. Frames between the old and new cursor positions are not
// visited. The play argument decides the clip's play state afterwards.
func (tl *Timeline) Goto(clip arena.Handle, frame int, play bool) error {
	n := tl.display.FrameCount(clip)
	if n == 0 {
		return nil
	}
	if frame < 0 {
		frame = 0
	}
	if frame >= n {
		frame = n - 1
	}

	tl.display.SetCursor(clip, frame)
	tl.display.SetPlaying(clip, play)

	return tl.RunFrame(clip, frame)
}

// RunFrame executes one frame's control tags in file order. A removal tag in
// the middle of the frame does not abort the remaining tags, even when it
// removes the clip whose frame is running.
func (tl *Timeline) RunFrame(clip arena.Handle, frame int) error {
	for _, tag := range tl.display.FrameTags(clip, frame) {
		switch tag := tag.(type) {
		case movie.PlaceObject:
			h, err := tl.display.PlaceChild(clip, tag)
			if err != nil {
				return err
			}
			// a freshly created sprite has never had its cursor set. an
			// adjusted-in-place occupant has
			if !h.IsNull() && tl.display.IsClip(h) && tl.display.Cursor(h) < 0 {
				if err := tl.instantiate(h); err != nil {
					return err
				}
			}

		case movie.RemoveObject:
			if err := tl.display.RemoveChild(clip, tag.Depth); err != nil {
				return err
			}

		case movie.DoAction:
			tl.effects.EnqueueFrameScript(clip, tag.Script)

		case movie.StartSound:
			tl.effects.StartSound(tag)
		}
	}

	return nil
}

// instantiate runs the first frame of a newly placed sprite.
func (tl *Timeline) instantiate(clip arena.Handle) error {
	if tl.display.FrameCount(clip) == 0 {
		return nil
	}
	tl.display.SetCursor(clip, 0)
	return tl.RunFrame(clip, 0)
}
