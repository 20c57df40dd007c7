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

// Package ui defines the emulator's view of the display surface. The
// concrete implementation is in the sdlui package; the interface exists so
// that the emulator core never depends on a specific windowing backend and
// so that tests can substitute their own surface.
package ui

// Surface is the display surface the emulator renders to and presents
// dialogs on. The surface is owned by one host thread (for SDL, the main
// thread); work that touches the surface must run on that thread.
type Surface interface {
	// Post a function to the surface's owning thread and return without
	// waiting for it to run.
	Post(f func())

	// PostSynchronous posts a function to the surface's owning thread and
	// blocks until it has completed. The round-trip gives a total
	// ordering between the caller and the posted work.
	PostSynchronous(f func())

	// ShowMessageBox presents a blocking notice to the user. Must only be
	// called from the surface's owning thread.
	ShowMessageBox(title string, message string)
}
