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

//go:build linux
// +build linux

package exception

import (
	"bytes"
	"os"
)

// IsDebuggerAttached returns true if a foreign debugger (gdb, delve, strace,
// etc.) is attached to the host process.
//
// A non-zero TracerPid in /proc/self/status indicates an attached tracer.
func IsDebuggerAttached() bool {
	status, err := os.ReadFile("/proc/self/status")
	if err != nil {
		return false
	}

	i := bytes.Index(status, []byte("TracerPid:"))
	if i == -1 {
		return false
	}

	f := bytes.Fields(status[i:])
	if len(f) < 2 {
		return false
	}

	return !bytes.Equal(f[1], []byte("0"))
}
