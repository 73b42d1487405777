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

import "github.com/glimmerproject/glimmer/movie/action"

// CharacterID identifies a character definition within one movie. IDs are
// assigned by the container decoder and are unique within the document.
type CharacterID uint16

// Character is any definition that control tags can refer to by ID.
type Character interface {
	CharacterID() CharacterID
}

// Shape is a vector drawing: one or more filled closed polygons in the
// shape's own coordinate space.
type Shape struct {
	ID     CharacterID
	Bounds Rect
	Fills  []FilledPolygon
}

// FilledPolygon is a solid-color closed polygon. The final point connects
// back to the first.
type FilledPolygon struct {
	Color  Color
	Points []Point
}

func (c Shape) CharacterID() CharacterID { return c.ID }

// Sprite is a character with its own timeline. Placing a sprite creates a
// movie clip in the display object graph.
type Sprite struct {
	ID     CharacterID
	Frames []Frame
}

func (c Sprite) CharacterID() CharacterID { return c.ID }

// Text is a static text character. Glyph outlines are not modelled; the
// renderer decides how to draw the content.
type Text struct {
	ID      CharacterID
	Bounds  Rect
	Color   Color
	Content string
	Height  float64
}

func (c Text) CharacterID() CharacterID { return c.ID }

// Button shows another character and reacts to user input with a script.
type Button struct {
	ID        CharacterID
	Character CharacterID
	OnPress   *action.Script
}

func (c Button) CharacterID() CharacterID { return c.ID }

// Bitmap is a raster character. Pixels are stored row-major.
type Bitmap struct {
	ID     CharacterID
	Width  int
	Height int
	Pixels []Color
}

func (c Bitmap) CharacterID() CharacterID { return c.ID }

// SoundFormat is the compression format of a Sound's data.
type SoundFormat int

// List of supported sound formats.
const (
	SoundFormatPCM SoundFormat = iota
	SoundFormatADPCM
	SoundFormatMP3
)

func (f SoundFormat) String() string {
	switch f {
	case SoundFormatPCM:
		return "pcm"
	case SoundFormatADPCM:
		return "adpcm"
	case SoundFormatMP3:
		return "mp3"
	}
	return "unknown"
}

// Sound is an event sound definition. Data is in the named format; decoding
// happens in the audio package when the sound is first triggered.
type Sound struct {
	ID          CharacterID
	Format      SoundFormat
	SampleRate  int
	Stereo      bool
	SampleCount int
	Data        []byte
}

func (c Sound) CharacterID() CharacterID { return c.ID }
