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

package threading

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// EnableAffinityConfiguration widens the process's CPU mask to all logical
// processors. Must be called before any thread affinity requests are made.
func EnableAffinityConfiguration() error {
	var set unix.CPUSet
	for i := 0; i < runtime.NumCPU(); i++ {
		set.Set(i)
	}

	// pid 0 is the calling process
	return unix.SchedSetaffinity(0, &set)
}
