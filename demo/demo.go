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

// Package demo builds the built-in demonstration document. The player core
// consumes decoded record streams; producing one from a container file is
// the job of an external decoder. The demo document stands in for that
// decoder's output and exercises every character variant, the timeline, the
// script machine and the audio tracker.
package demo

import (
	"encoding/binary"
	"math"

	"github.com/glimmerproject/glimmer/movie"
	"github.com/glimmerproject/glimmer/movie/action"
)

// character ids of the demo document
const (
	charBackdrop movie.CharacterID = iota + 1
	charDiamond
	charSpinner
	charCaption
	charButtonFace
	charButton
	charBeep
)

// Movie returns the demonstration document. The returned movie validates
// cleanly and loops forever: four main timeline frames with a nested
// spinner clip, a clickable button that restarts the loop, a frame script
// and an event sound.
func Movie() *movie.Movie {
	return &movie.Movie{
		Title:           "glimmer demo",
		Width:           320,
		Height:          240,
		FrameRate:       12,
		BackgroundColor: movie.Color{R: 24, G: 24, B: 32, A: 255},
		Characters: map[movie.CharacterID]movie.Character{
			charBackdrop:   backdrop(),
			charDiamond:    diamond(),
			charSpinner:    spinner(),
			charCaption:    caption(),
			charButtonFace: buttonFace(),
			charButton:     button(),
			charBeep:       beep(),
		},
		Frames: frames(),
	}
}

func backdrop() movie.Shape {
	return movie.Shape{
		ID:     charBackdrop,
		Bounds: movie.Rect{MaxX: 120, MaxY: 120},
		Fills: []movie.FilledPolygon{{
			Color: movie.Color{R: 208, G: 112, B: 48, A: 255},
			Points: []movie.Point{
				{X: 0, Y: 0}, {X: 120, Y: 0}, {X: 120, Y: 120}, {X: 0, Y: 120},
			},
		}},
	}
}

func diamond() movie.Shape {
	return movie.Shape{
		ID:     charDiamond,
		Bounds: movie.Rect{MinX: -20, MinY: -20, MaxX: 20, MaxY: 20},
		Fills: []movie.FilledPolygon{{
			Color: movie.Color{R: 64, G: 128, B: 240, A: 255},
			Points: []movie.Point{
				{X: 0, Y: -20}, {X: 20, Y: 0}, {X: 0, Y: 20}, {X: -20, Y: 0},
			},
		}},
	}
}

// spinner is a two frame clip that bounces the diamond between two
// positions. Nested timelines advance with the main timeline so the bounce
// runs regardless of what the main timeline is doing.
func spinner() movie.Sprite {
	return movie.Sprite{
		ID: charSpinner,
		Frames: []movie.Frame{
			{Tags: []movie.ControlTag{
				movie.PlaceObject{
					Depth: 1, HasCharacter: true, ID: charDiamond,
					HasMatrix: true, Matrix: movie.TranslateMatrix(0, 0),
				},
			}},
			{Tags: []movie.ControlTag{
				movie.PlaceObject{
					Depth: 1, Move: true,
					HasMatrix: true, Matrix: movie.TranslateMatrix(0, 24),
				},
			}},
		},
	}
}

func caption() movie.Text {
	return movie.Text{
		ID:      charCaption,
		Bounds:  movie.Rect{MaxX: 200, MaxY: 16},
		Color:   movie.Color{R: 230, G: 230, B: 230, A: 255},
		Content: "glimmer demo. click the green square",
		Height:  12,
	}
}

func buttonFace() movie.Shape {
	return movie.Shape{
		ID:     charButtonFace,
		Bounds: movie.Rect{MaxX: 48, MaxY: 48},
		Fills: []movie.FilledPolygon{{
			Color: movie.Color{R: 64, G: 192, B: 96, A: 255},
			Points: []movie.Point{
				{X: 0, Y: 0}, {X: 48, Y: 0}, {X: 48, Y: 48}, {X: 0, Y: 48},
			},
		}},
	}
}

// button restarts the main timeline from frame one when pressed.
func button() movie.Button {
	return movie.Button{
		ID:        charButton,
		Character: charButtonFace,
		OnPress: &action.Script{Instructions: []action.Instruction{
			{Op: action.PushString, Str: "restart"},
			{Op: action.Trace},
			{Op: action.PushNumber, Number: 1},
			{Op: action.PushString, Str: "_root"},
			{Op: action.GetVariable},
			{Op: action.PushString, Str: "gotoAndPlay"},
			{Op: action.CallMethod, Int: 1},
			{Op: action.Pop},
		}},
	}
}

// beep is a quarter second 440Hz square wave, stored as uncompressed PCM
// the way a container decoder would deliver it.
func beep() movie.Sound {
	const (
		rate     = 22050
		duration = rate / 4
		freq     = 440.0
	)

	data := make([]byte, duration*2)
	for i := 0; i < duration; i++ {
		var sample int16 = 6000
		if math.Mod(float64(i)*freq/rate, 1.0) >= 0.5 {
			sample = -6000
		}
		binary.LittleEndian.PutUint16(data[i*2:], uint16(sample))
	}

	return movie.Sound{
		ID:          charBeep,
		Format:      movie.SoundFormatPCM,
		SampleRate:  rate,
		Stereo:      false,
		SampleCount: duration,
		Data:        data,
	}
}

// tickScript counts main timeline loops in the global "loops" variable.
// First frame of the first pass defines the counter; later passes increment
// it. typeof distinguishes the two.
func tickScript() *action.Script {
	return &action.Script{Instructions: []action.Instruction{
		// skip the initialisation once the counter exists
		{Op: action.PushString, Str: "loops"},
		{Op: action.GetVariable},
		{Op: action.TypeOf},
		{Op: action.PushString, Str: "number"},
		{Op: action.Equals},
		{Op: action.If, Int: 9},
		// loops = 0
		{Op: action.PushString, Str: "loops"},
		{Op: action.PushNumber, Number: 0},
		{Op: action.SetVariable},
		// loops = loops + 1
		{Op: action.PushString, Str: "loops"},
		{Op: action.PushString, Str: "loops"},
		{Op: action.GetVariable},
		{Op: action.PushNumber, Number: 1},
		{Op: action.Add},
		{Op: action.SetVariable},
	}}
}

func frames() []movie.Frame {
	return []movie.Frame{
		{Tags: []movie.ControlTag{
			movie.PlaceObject{
				Depth: 1, HasCharacter: true, ID: charBackdrop,
				HasMatrix: true, Matrix: movie.TranslateMatrix(100, 60),
			},
			movie.PlaceObject{
				Depth: 2, HasCharacter: true, ID: charSpinner, Name: "spinner",
				HasMatrix: true, Matrix: movie.TranslateMatrix(160, 90),
			},
			movie.PlaceObject{
				Depth: 3, HasCharacter: true, ID: charButton, Name: "restart",
				HasMatrix: true, Matrix: movie.TranslateMatrix(136, 170),
			},
			movie.PlaceObject{
				Depth: 4, HasCharacter: true, ID: charCaption,
				HasMatrix: true, Matrix: movie.TranslateMatrix(60, 16),
			},
			movie.DoAction{Script: tickScript()},
		}},
		{Tags: []movie.ControlTag{
			movie.PlaceObject{
				Depth: 1, Move: true,
				HasMatrix: true, Matrix: movie.TranslateMatrix(110, 70),
			},
		}},
		{Tags: []movie.ControlTag{
			movie.StartSound{ID: charBeep},
		}},
		{Tags: []movie.ControlTag{
			movie.PlaceObject{
				Depth: 1, Move: true,
				HasMatrix: true, Matrix: movie.TranslateMatrix(100, 60),
			},
		}},
	}
}
