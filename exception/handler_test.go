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

package exception_test

import (
	"testing"

	"github.com/lalalaring/xenia/exception"
	"github.com/lalalaring/xenia/test"
)

func TestDispatchOrder(t *testing.T) {
	var sequence []string

	a := func(ex *exception.Exception) bool {
		sequence = append(sequence, "a")
		return false
	}
	b := func(ex *exception.Exception) bool {
		sequence = append(sequence, "b")
		return true
	}
	c := func(ex *exception.Exception) bool {
		sequence = append(sequence, "c")
		return true
	}

	ownerA, ownerB, ownerC := new(int), new(int), new(int)
	exception.Install(a, ownerA)
	exception.Install(b, ownerB)
	exception.Install(c, ownerC)
	defer exception.Uninstall(ownerA)
	defer exception.Uninstall(ownerB)
	defer exception.Uninstall(ownerC)

	// handlers run in installation order. dispatch stops at the first
	// handler that claims the fault
	test.ExpectSuccess(t, exception.Dispatch(&exception.Exception{PC: 0x1000}))
	test.DemandEquality(t, len(sequence), 2)
	test.ExpectEquality(t, sequence[0], "a")
	test.ExpectEquality(t, sequence[1], "b")
}

func TestDispatchUnclaimed(t *testing.T) {
	owner := new(int)
	exception.Install(func(ex *exception.Exception) bool { return false }, owner)
	defer exception.Uninstall(owner)

	test.ExpectFailure(t, exception.Dispatch(&exception.Exception{PC: 0x2000}))
}

func TestUninstall(t *testing.T) {
	ct := 0
	owner := new(int)
	exception.Install(func(ex *exception.Exception) bool {
		ct++
		return true
	}, owner)

	test.ExpectSuccess(t, exception.Dispatch(&exception.Exception{}))
	test.ExpectEquality(t, ct, 1)

	exception.Uninstall(owner)
	test.ExpectFailure(t, exception.Dispatch(&exception.Exception{}))
	test.ExpectEquality(t, ct, 1)
}
