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

package emulator

import (
	"fmt"

	"github.com/lalalaring/xenia/exception"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/logger"
)

// onHostException is the process-wide fault callback, registered in Setup()
// and invoked on the faulting thread with that thread frozen at the fault
// point. The decision is three-way: the emulator's own debugger, a foreign
// debugger on the host process, or guest-crash containment.
func (e *Emulator) onHostException(ex *exception.Exception) bool {
	// an attached session of the emulator's own debugger owns every fault
	if e.debugger != nil && e.debugger.IsAttached() {
		return e.debugger.OnUnhandledException(ex)
	}

	// with no session of our own, a foreign debugger attached to the host
	// process takes precedence
	if exception.IsDebuggerAttached() {
		return false
	}

	// a fault outside the guest code region is an emulator bug, not a
	// guest crash. let the host's default crash path take it
	if e.processor == nil || !e.processor.CodeCache().Contains(ex.PC) {
		return false
	}

	return e.containGuestCrash(ex)
}

// containGuestCrash freezes the guest rather than letting the process die.
// Every suspendable guest thread except the faulting one is suspended, the
// user is shown a blocking notice, and finally the faulting thread parks
// itself. The function is not expected to return; the faulting thread
// stays parked until external intervention.
func (e *Emulator) containGuestCrash(ex *exception.Exception) bool {
	// serialise against other faulting threads. acquired directly: a
	// second faulting thread blocks here until the first has finished
	// suspending
	release := kernel.AcquireGlobalCritical()

	logger.Logf("emulator", "guest crash: %v", ex)

	current := e.kernelState.CurrentThread()
	for _, th := range e.kernelState.ObjectTable().Threads() {
		if th == current || !th.CanDebuggerSuspend() {
			continue
		}
		th.Suspend()
	}

	e.crashNotice.Do(func() {
		e.surface.PostSynchronous(func() {
			e.surface.ShowMessageBox("Guest crash",
				fmt.Sprintf("The guest program has crashed:\n\n%v\n\nThe emulator has paused itself.", ex))
		})
	})

	release()

	if current != nil {
		if !current.CanDebuggerSuspend() {
			assertUnreachable("containment of a thread without the suspend capability")
		}
		// parks immediately. only external intervention resumes us
		current.Suspend()
	}

	assertUnreachable("containment returned to the faulting context")
	return true
}
