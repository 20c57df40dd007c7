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

//go:build assertions
// +build assertions

package test

// the main goroutine always has an ID of one. the main goroutine is locked
// to the main thread by the runtime, and by our own runtime.LockOSThread()
// in the main() function, so goroutine identity is a good stand-in for
// thread identity.
const mainGoroutineID = 1

// AssertMainThread will panic if the calling function is not being run from
// the main thread.
func AssertMainThread() {
	if GoroutineID() != mainGoroutineID {
		panic("not in main thread")
	}
}

// AssertNonMainThread will panic if the calling function is being run from
// the main thread.
func AssertNonMainThread() {
	if GoroutineID() == mainGoroutineID {
		panic("in main thread")
	}
}
