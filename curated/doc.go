// This file is part of Xenia.
//
// Xenia is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Xenia is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Xenia.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Errors are created with the Errorf() function. Like fmt.Errorf() it takes
// a formatting pattern and placeholder values, but the pattern is retained
// and can be matched against later with the Is() and Has() functions:
//
//	e := curated.Errorf("vfs: %v", err)
//
//	if curated.Is(e, "vfs: %v") {
//		...
//	}
//
// Is() matches the outermost pattern only. Has() matches a pattern anywhere
// in the chain of curated errors. IsAny() answers whether an error was
// created by this package at all - or put another way, whether the error is
// an "expected" error that some part of the emulator knows how to present to
// the user.
//
// The Error() function normalises the message chain, removing adjacent
// duplicate parts. This keeps deeply wrapped errors readable when they are
// logged or placed in a dialog.
package curated
