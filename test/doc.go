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

// Package test contains helper functions for the testing of the emulator.
//
// The Expect functions test a value for success or failure conditions
// suitable for the value's type. The Demand functions perform the same tests
// but end the test immediately on failure. Demanding is useful when later
// parts of the test cannot proceed meaningfully if the condition does not
// hold.
//
// The AssertMainThread() and AssertNonMainThread() functions are active when
// the "assertions" build tag is present. They are useful for checking the
// thread discipline around SDL, which requires that window functions are
// only ever called from the main thread.
package test
