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

import "sync"

// the process-wide critical region. serialises decisions that affect every
// guest thread at once, such as the suspend-everyone step of crash
// containment.
var globalCritical sync.Mutex

// AcquireGlobalCritical locks the process-wide critical region, blocking
// until it is available. The returned function releases it.
func AcquireGlobalCritical() func() {
	globalCritical.Lock()
	return globalCritical.Unlock
}
