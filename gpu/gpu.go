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

// Package gpu defines the graphics system at its interface boundary. The
// command processor internals belong to the backend packages (sdlgl, nop).
package gpu

import (
	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/ui"
	"github.com/lalalaring/xenia/xstatus"
)

// System is an emulated graphics system. Instances are produced by the
// graphics factory supplied to the emulator's Setup().
type System interface {
	// Setup the graphics system. Needs the processor, the kernel state
	// and the display surface.
	Setup(proc *cpu.Processor, st *kernel.State, surface ui.Surface) xstatus.Status

	// Shutdown gracefully. Called before the system is released so that
	// in-flight work can quiesce.
	Shutdown()
}
