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

// Package audio decodes and mixes event sounds. The Tracker collects sound
// triggers during a tick and produces one tick's worth of mixed stereo PCM,
// which is pushed to every registered Mixer. The tracker itself makes no
// sound; a Mixer implementation (the SDL host, the WAV writer, the audio
// digest) is what the samples are for.
//
// Sounds decode lazily on first trigger and the decoded PCM is cached
// against the character id. Decoding and mixing use integer arithmetic
// throughout so that identical movies produce identical sample streams on
// every platform.
package audio
