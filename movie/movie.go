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

package movie

import (
	"github.com/glimmerproject/glimmer/curated"
)

// Sentinel error patterns for document validation.
const (
	NoFrames           = "load error: movie has no frames"
	BadFrameRate       = "load error: invalid frame rate (%v)"
	UndefinedCharacter = "load error: reference to undefined character (%d)"
	NotPlaceable       = "load error: character (%d) cannot be placed on the stage"
	NotASound          = "load error: character (%d) is not a sound"
	MissingScript      = "load error: action tag without a script"
	SpriteCycle        = "load error: sprite (%d) places itself"
)

// Movie is a complete decoded document.
type Movie struct {
	Title string

	// stage dimensions in pixels
	Width  int
	Height int

	FrameRate       float64
	BackgroundColor Color

	Characters map[CharacterID]Character

	// the main timeline
	Frames []Frame
}

// Character returns the named character definition.
func (m *Movie) Character(id CharacterID) (Character, bool) {
	c, ok := m.Characters[id]
	return c, ok
}

// Validate the whole document. Any failure rejects the document - the
// player never sees a partially valid movie.
//
// Checks: the movie has at least one frame and a positive frame rate; every
// character referenced by a control tag is defined and of a kind the tag
// can accept; every script (frame actions, button handlers) passes
// action.Script.Validate(); no sprite places itself, directly or through
// other sprites.
func (m *Movie) Validate() error {
	if len(m.Frames) == 0 {
		return curated.Errorf(NoFrames)
	}
	if m.FrameRate <= 0 {
		return curated.Errorf(BadFrameRate, m.FrameRate)
	}

	if err := m.validateFrames(m.Frames); err != nil {
		return err
	}

	for id, c := range m.Characters {
		switch c := c.(type) {
		case Sprite:
			if err := m.validateFrames(c.Frames); err != nil {
				return err
			}
			if m.spriteReaches(c, id, make(map[CharacterID]bool)) {
				return curated.Errorf(SpriteCycle, id)
			}
		case Button:
			if _, ok := m.Characters[c.Character]; !ok {
				return curated.Errorf(UndefinedCharacter, c.Character)
			}
			if c.OnPress != nil {
				if err := c.OnPress.Validate(); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

func (m *Movie) validateFrames(frames []Frame) error {
	for _, f := range frames {
		for _, tag := range f.Tags {
			switch tag := tag.(type) {
			case PlaceObject:
				if !tag.HasCharacter {
					continue
				}
				c, ok := m.Characters[tag.ID]
				if !ok {
					return curated.Errorf(UndefinedCharacter, tag.ID)
				}
				if _, isSound := c.(Sound); isSound {
					return curated.Errorf(NotPlaceable, tag.ID)
				}
			case DoAction:
				if tag.Script == nil {
					return curated.Errorf(MissingScript)
				}
				if err := tag.Script.Validate(); err != nil {
					return err
				}
			case StartSound:
				c, ok := m.Characters[tag.ID]
				if !ok {
					return curated.Errorf(UndefinedCharacter, tag.ID)
				}
				if _, isSound := c.(Sound); !isSound {
					return curated.Errorf(NotASound, tag.ID)
				}
			}
		}
	}
	return nil
}

// spriteReaches reports whether placing the sprite eventually places the
// target sprite again. A sprite that reaches itself would instantiate
// forever.
func (m *Movie) spriteReaches(s Sprite, target CharacterID, visited map[CharacterID]bool) bool {
	for _, f := range s.Frames {
		for _, tag := range f.Tags {
			place, ok := tag.(PlaceObject)
			if !ok || !place.HasCharacter {
				continue
			}
			if place.ID == target {
				return true
			}
			if visited[place.ID] {
				continue
			}
			visited[place.ID] = true
			if nested, ok := m.Characters[place.ID].(Sprite); ok {
				if m.spriteReaches(nested, target, visited) {
					return true
				}
			}
		}
	}
	return false
}
