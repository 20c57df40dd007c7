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

// Package exception is the process-wide interception point for hardware
// faults raised by guest code. The processor converts host faults into
// Exception values and dispatches them through the chain of installed
// handlers, on the faulting thread, with that thread frozen at the fault
// point until dispatch returns.
package exception

import "fmt"

// Exception represents one hardware fault raised inside compiled guest
// code. The exception is only valid for the duration of a handler call; it
// must not be retained.
type Exception struct {
	// the faulting program counter
	PC uint64

	// identity of the faulting thread. see GoroutineID() in the test
	// package for the derivation
	ThreadID uint64

	// the fault description reported by the host
	Detail string
}

func (ex Exception) String() string {
	return fmt.Sprintf("fault at %#08x (thread %d): %s", ex.PC, ex.ThreadID, ex.Detail)
}
