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
	"github.com/glimmerproject/glimmer/logger"
	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/notifications"
	"github.com/glimmerproject/glimmer/player/arena"
	"github.com/glimmerproject/glimmer/player/audio"
	"github.com/glimmerproject/glimmer/player/avm"
	"github.com/glimmerproject/glimmer/player/display"
	"github.com/glimmerproject/glimmer/player/object"
	"github.com/glimmerproject/glimmer/player/queue"
	"github.com/glimmerproject/glimmer/player/timeline"
	"github.com/glimmerproject/glimmer/player/values"
)

// Sentinel error patterns for the player.
const (
	NoMovie     = "player: no movie loaded"
	RenderError = "player: render: %v"
)

// PixelRenderer implementations will be updated with the drawable state of
// the stage at the end of every tick. The snapshot is frozen; implementations
// may keep it across ticks without it changing underneath them.
type PixelRenderer interface {
	Render(nodes []display.RenderNode) error

	// EndRendering is called when the player is stopping
	EndRendering() error
}

// Player is the root of the emulation.
type Player struct {
	movie *movie.Movie

	objects  *object.Store
	display  *display.Store
	machine  *avm.Machine
	timeline *timeline.Timeline
	queue    *queue.Queue
	tracker  *audio.Tracker

	renderers []PixelRenderer
	notify    notifications.Notify

	// mixers registered before a movie is loaded, replayed onto each new
	// tracker. the tracker is rebuilt by Load() but mixer registration is a
	// host concern and must survive it
	mixers []audio.Mixer

	// frame counts completed ticks, not timeline position. timelines loop;
	// this does not
	frame int
}

// NewPlayer is the preferred method of initialisation for the Player type.
// The player is inert until a movie is loaded.
func NewPlayer() *Player {
	return &Player{}
}

// Load validates the movie and builds the play state for it: the object
// store, the display graph with its root clip, the script machine and the
// audio tracker. The first frame of the main timeline runs to completion,
// including its frame scripts, so the player is showing frame one when Load
// returns.
//
// Loading a second movie discards the first entirely.
func (p *Player) Load(mov *movie.Movie) error {
	if err := mov.Validate(); err != nil {
		return err
	}

	p.movie = mov
	p.frame = 0

	p.objects = object.NewStore()
	p.machine = avm.NewMachine(p.objects)
	p.display = display.NewStore(p.objects)
	p.display.SetLibrary(mov.Characters)
	p.display.SetPrototypes(p.buildPrototypes())
	p.timeline = timeline.NewTimeline(p.display, p)
	p.queue = queue.NewQueue()

	p.tracker = audio.NewTracker(mov.Characters, mov.FrameRate)
	for _, m := range p.mixers {
		p.tracker.AddMixer(m)
	}

	root := p.display.NewRoot(mov.Frames)
	if err := p.objects.SetProperty(p.machine.Globals(), "_root",
		values.Object(p.display.Binding(root))); err != nil {
		return err
	}

	// the first frame runs at load time, the way a freshly placed sprite
	// runs its first frame at placement time
	p.display.SetCursor(root, 0)
	if err := p.timeline.RunFrame(root, 0); err != nil {
		return err
	}
	if err := p.drain(); err != nil {
		return err
	}
	if err := p.endTick(); err != nil {
		return err
	}

	logger.Logf(logger.Allow, "player", "loaded %s (%d frames, %.2f fps)",
		mov.Title, len(mov.Frames), mov.FrameRate)
	p.notifyHost(notifications.NotifyMovieLoaded)

	return nil
}

// Movie returns the currently loaded movie, or nil.
func (p *Player) Movie() *movie.Movie {
	return p.movie
}

// Frame returns the number of completed ticks since Load().
func (p *Player) Frame() int {
	return p.frame
}

// Display exposes the display graph for inspection. Nil until a movie has
// been loaded.
func (p *Player) Display() *display.Store {
	return p.display
}

// Objects exposes the script object store for inspection. Nil until a movie
// has been loaded.
func (p *Player) Objects() *object.Store {
	return p.objects
}

// AddRenderer registers an implementation of the PixelRenderer interface.
func (p *Player) AddRenderer(r PixelRenderer) {
	p.renderers = append(p.renderers, r)
}

// AddMixer registers an implementation of the audio.Mixer interface.
func (p *Player) AddMixer(m audio.Mixer) {
	p.mixers = append(p.mixers, m)
	if p.tracker != nil {
		p.tracker.AddMixer(m)
	}
}

// SetNotify attaches the host's notification channel.
func (p *Player) SetNotify(n notifications.Notify) {
	p.notify = n
}

func (p *Player) notifyHost(notice notifications.Notice) {
	if p.notify == nil {
		return
	}
	if err := p.notify.Notify(notice); err != nil {
		logger.Logf(logger.Allow, "player", "notify: %v", err)
	}
}

// AdvanceFrame performs one tick of the emulation: timelines advance, the
// action queue drains, audio mixes, unreachable objects are reclaimed and
// the finished frame goes to every registered renderer.
//
// Script failure does not fail the tick. An uncaught exception discards the
// rest of the tick's queued scripts; a resource limit error additionally
// disables scripting for the session. In both cases the display graph stays
// valid and the tick completes.
func (p *Player) AdvanceFrame() error {
	if p.movie == nil {
		return curated.Errorf(NoMovie)
	}

	if err := p.timeline.AdvanceAll(); err != nil {
		return err
	}
	if err := p.drain(); err != nil {
		return err
	}
	return p.endTick()
}

// EnqueueFrameScript implements the timeline.Effects interface.
func (p *Player) EnqueueFrameScript(clip arena.Handle, script *action.Script) {
	p.queue.Enqueue(queue.PriorityFrame, queue.Entry{Clip: clip, Script: script})
}

// StartSound implements the timeline.Effects interface.
func (p *Player) StartSound(tag movie.StartSound) {
	p.tracker.Trigger(tag)
}

// drain runs every queued script. Script errors are absorbed here: the
// player logs and notifies but the tick carries on.
func (p *Player) drain() error {
	err := p.queue.Drain(func(e queue.Entry) error {
		if p.machine.Disabled() {
			return nil
		}

		if !e.Callback.IsNull() {
			_, err := p.machine.Call(e.Callback, e.This, nil)
			return err
		}

		this := e.This
		if !e.Clip.IsNull() {
			if !p.display.Alive(e.Clip) {
				// the clip was removed after its script was queued
				return nil
			}
			this = p.display.Binding(e.Clip)
		}

		_, err := p.machine.Execute(e.Script, this)
		return err
	})

	if err == nil {
		return nil
	}

	switch {
	case curated.Is(err, avm.UncaughtException):
		logger.Logf(logger.Allow, "player", "%v", err)
		p.notifyHost(notifications.NotifyUncaughtException)
	case curated.Is(err, avm.ScriptTimeout):
		logger.Logf(logger.Allow, "player", "%v", err)
		p.notifyHost(notifications.NotifyScriptTimeout)
		p.notifyHost(notifications.NotifyScriptDisabled)
	case curated.Is(err, avm.StackOverflow):
		logger.Logf(logger.Allow, "player", "%v", err)
		p.notifyHost(notifications.NotifyScriptDisabled)
	case curated.Is(err, avm.MachineDisabled):
		// queued work after the machine was disabled. nothing to report
	default:
		return err
	}

	return nil
}

// endTick finishes the tick: audio, reclamation, render.
func (p *Player) endTick() error {
	if err := p.tracker.Mix(); err != nil {
		return err
	}

	p.compact()

	snap := p.display.Snapshot()
	for _, r := range p.renderers {
		if err := r.Render(snap); err != nil {
			return curated.Errorf(RenderError, err)
		}
	}

	p.frame++
	return nil
}

// compact reclaims display nodes removed from the graph and script objects
// no longer reachable from any root. Runs once per tick, after the queue has
// drained, so no script can observe an object in mid-reclamation.
func (p *Player) compact() {
	p.objects.Table().ClearMarks()
	p.display.Table().ClearMarks()

	p.display.MarkReachable(p.display.Root(), p.objects.MarkReachable)
	for _, h := range p.machine.Roots() {
		p.objects.MarkReachable(h)
	}

	p.display.Compact()
	p.objects.Sweep()
}

// End cleanly shuts down the player's outputs.
func (p *Player) End() error {
	var rerr error
	for _, r := range p.renderers {
		if err := r.EndRendering(); err != nil && rerr == nil {
			rerr = err
		}
	}
	if p.tracker != nil {
		if err := p.tracker.End(); err != nil && rerr == nil {
			rerr = err
		}
	}
	return rerr
}
