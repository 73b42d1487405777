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

// Package queue holds the scripts waiting to run in the current tick.
// Scripts never run during timeline advancement - they are queued and run
// when the player drains the queue, which keeps structural mutation and
// script execution in separate phases.
//
// The queue has two priority classes. Frame scripts always run before input
// callbacks queued in the same tick, regardless of arrival order. Within one
// class, order of arrival is order of execution. A script that enqueues
// further work during the drain joins the same drain pass.
package queue

import (
	"github.com/glimmerproject/glimmer/movie/action"
	"github.com/glimmerproject/glimmer/player/arena"
)

// Priority is the scheduling class of a queue entry.
type Priority int

// Frame scripts run before input callbacks within one drain pass.
const (
	PriorityFrame Priority = iota
	PriorityInput
)

// Entry is one pending script execution. The clip handle is the display
// object that provides the script's this binding; it may be stale by the
// time the entry runs, in which case the script runs with no this binding
// at all (the clip was removed between queueing and draining).
type Entry struct {
	Clip   arena.Handle
	Script *action.Script

	// this value for callbacks that were queued against a plain object
	// rather than a display clip
	This arena.Handle

	// function object to call instead of a raw script. used for input
	// callbacks defined as member functions
	Callback arena.Handle
}

// Queue is the pending work for the current tick.
type Queue struct {
	frame []Entry
	input []Entry
}

// NewQueue is the preferred method of initialisation for the Queue type.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends an entry to its priority class.
func (q *Queue) Enqueue(p Priority, e Entry) {
	switch p {
	case PriorityFrame:
		q.frame = append(q.frame, e)
	case PriorityInput:
		q.input = append(q.input, e)
	}
}

// Len returns the number of pending entries over both classes.
func (q *Queue) Len() int {
	return len(q.frame) + len(q.input)
}

// Drain runs every pending entry through the run callback. Entries enqueued
// by the callback join this drain pass, frame scripts always ahead of
// pending input callbacks. The first error stops the drain and discards
// everything still pending - an erroring script forfeits the rest of the
// tick's queue.
func (q *Queue) Drain(run func(Entry) error) error {
	for {
		var e Entry

		switch {
		case len(q.frame) > 0:
			e = q.frame[0]
			q.frame = q.frame[1:]
		case len(q.input) > 0:
			e = q.input[0]
			q.input = q.input[1:]
		default:
			return nil
		}

		if err := run(e); err != nil {
			q.Clear()
			return err
		}
	}
}

// Clear discards all pending entries.
func (q *Queue) Clear() {
	q.frame = q.frame[:0]
	q.input = q.input[:0]
}
