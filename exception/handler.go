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

package exception

import "sync"

// Handler is called for a fault raised in guest code. It returns true if
// the fault was handled and execution may continue, or false to pass the
// fault to the next handler in the chain.
type Handler func(*Exception) bool

// one entry in the handler chain. the owner value identifies the installer
// so that Uninstall() can find the entry again.
type installedHandler struct {
	handler Handler
	owner   any
}

var crit sync.Mutex
var handlers []installedHandler

// Install a handler at the end of the process-wide handler chain. The owner
// value identifies the installation for a later call to Uninstall(). A
// handler must only be installed once per owner.
func Install(handler Handler, owner any) {
	crit.Lock()
	defer crit.Unlock()
	handlers = append(handlers, installedHandler{handler: handler, owner: owner})
}

// Uninstall the handler previously installed by owner.
func Uninstall(owner any) {
	crit.Lock()
	defer crit.Unlock()
	for i := range handlers {
		if handlers[i].owner == owner {
			handlers = append(handlers[:i], handlers[i+1:]...)
			return
		}
	}
}

// Dispatch an exception through the handler chain in installation order.
// Returns true as soon as a handler claims the fault. A false return means
// no handler claimed it and the host's default crash path should take over.
//
// Dispatch is called on the faulting thread. Handlers may never return (the
// guest-crash containment path suspends the faulting thread).
func Dispatch(ex *Exception) bool {
	crit.Lock()
	chain := make([]installedHandler, len(handlers))
	copy(chain, handlers)
	crit.Unlock()

	// the chain is walked outside of the critical section. a handler may
	// block indefinitely and must not hold up Install/Uninstall on other
	// threads
	for _, h := range chain {
		if h.handler(ex) {
			return true
		}
	}
	return false
}
