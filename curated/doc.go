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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. It takes a
// formatting pattern and placeholder values, like the Errorf() function in
// the fmt package, and returns an error. The pattern is what distinguishes
// one family of curated errors from another.
//
// The Is() function checks whether an error was created by Errorf() with a
// specific pattern:
//
//	e := curated.Errorf("player: no movie attached")
//
//	if curated.Is(e, "player: no movie attached") {
//		fmt.Println("true")
//	}
//
// The Has() function is similar but checks whether the pattern occurs
// anywhere in the error chain, rather than only at the head. The IsAny()
// function answers whether the error is curated at all - useful for deciding
// whether an error is an expected runtime condition or something more
// serious.
//
// The Error() function implementation normalises the error chain, removing
// duplicate adjacent parts. Parts are separated by the sub-string ": ", as
// suggested on p239 of "The Go Programming Language" (Donovan, Kernighan).
//
// Sentinel patterns should be stored as const strings in the package that
// raises them, suitably named and commented. Packages elsewhere in this
// project declare their sentinels near the top of the file that uses them.
package curated
