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

package kernel

import (
	"sync"

	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/test"
)

// Thread is a guest thread backed by a host goroutine.
//
// Suspension is cooperative: a Suspend() request takes effect when the
// thread next reaches a safepoint. A thread suspending itself parks
// immediately and does not return from Suspend() until resumed from another
// thread.
type Thread struct {
	st     *State
	name   string
	handle Handle
	entry  func() uint64

	// whether a debugger (or the crash containment path) may suspend this
	// thread. host-service threads run with this unset
	canDebuggerSuspend bool

	crit sync.Mutex
	cond *sync.Cond

	// number of outstanding suspend requests. the thread is suspended
	// while this is above zero
	suspendCount int

	// true while the goroutine is parked at a safepoint
	parked bool

	// closed when the thread's entry function returns
	done     chan struct{}
	exitCode uint64
}

// NewThread creates a guest thread in the kernel state and adds it to the
// object table. The thread does not run until Start() is called.
func (st *State) NewThread(name string, canDebuggerSuspend bool, entry func() uint64) *Thread {
	t := &Thread{
		st:                 st,
		name:               name,
		entry:              entry,
		canDebuggerSuspend: canDebuggerSuspend,
		done:               make(chan struct{}),
	}
	t.cond = sync.NewCond(&t.crit)
	t.handle = st.table.Add(t)
	return t
}

// Handle implements the Object interface.
func (t *Thread) Handle() Handle {
	return t.handle
}

// Name implements the Object interface.
func (t *Thread) Name() string {
	return t.name
}

// Type implements the Object interface.
func (t *Thread) Type() ObjectType {
	return ObjectTypeThread
}

// CanDebuggerSuspend returns true if the thread may be suspended by a
// debugger or by the crash containment path.
func (t *Thread) CanDebuggerSuspend() bool {
	return t.canDebuggerSuspend
}

// Start the thread's goroutine.
func (t *Thread) Start() {
	go func() {
		id := test.GoroutineID()
		t.st.registerThread(id, t)
		defer t.st.unregisterThread(id)
		defer close(t.done)

		t.exitCode = t.entry()
	}()
}

// Join blocks until the thread's entry function has returned, and returns
// the thread's exit code.
func (t *Thread) Join() uint64 {
	<-t.done
	return t.exitCode
}

// Suspend the thread. When called from a different thread the suspension
// takes effect at the target's next safepoint; when called from the thread
// itself the calling goroutine parks immediately and Suspend() does not
// return until the thread is resumed.
func (t *Thread) Suspend() {
	t.crit.Lock()
	t.suspendCount++
	t.crit.Unlock()

	logger.Logf("kernel", "suspending thread %s", t.name)

	if t.st.CurrentThread() == t {
		t.Safepoint()
	}
}

// Resume the thread, undoing one previous Suspend().
func (t *Thread) Resume() {
	t.crit.Lock()
	defer t.crit.Unlock()

	if t.suspendCount > 0 {
		t.suspendCount--
	}
	if t.suspendCount == 0 {
		t.cond.Broadcast()
	}
}

// Suspended returns true if the thread has an outstanding suspend request.
// The thread's goroutine may not have parked yet; see Parked().
func (t *Thread) Suspended() bool {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.suspendCount > 0
}

// Parked returns true if the thread's goroutine is parked at a safepoint.
func (t *Thread) Parked() bool {
	t.crit.Lock()
	defer t.crit.Unlock()
	return t.parked
}

// Safepoint parks the calling goroutine while the thread has outstanding
// suspend requests. Guest execution loops call this between units of work.
// Must only be called from the thread's own goroutine.
func (t *Thread) Safepoint() {
	t.crit.Lock()
	defer t.crit.Unlock()

	for t.suspendCount > 0 {
		t.parked = true
		t.cond.Wait()
	}
	t.parked = false
}
