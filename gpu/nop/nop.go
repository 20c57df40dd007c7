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

// Package nop is a graphics system that renders nothing. Useful for
// headless runs and for tests that need a graphics system but no display.
package nop

import (
	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/ui"
	"github.com/lalalaring/xenia/xstatus"
)

// System is the do-nothing graphics system.
type System struct {
}

// NewSystem is the preferred method of initialisation for the System type.
func NewSystem() *System {
	return &System{}
}

// Setup implements the gpu.System interface.
func (sys *System) Setup(proc *cpu.Processor, st *kernel.State, surface ui.Surface) xstatus.Status {
	return xstatus.Success
}

// Shutdown implements the gpu.System interface.
func (sys *System) Shutdown() {
}
