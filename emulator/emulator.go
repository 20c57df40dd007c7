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
	"os"
	"sync"

	"github.com/lalalaring/xenia/apu"
	"github.com/lalalaring/xenia/clock"
	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/debugger"
	"github.com/lalalaring/xenia/exception"
	"github.com/lalalaring/xenia/gpu"
	"github.com/lalalaring/xenia/hid"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/kernel/xam"
	"github.com/lalalaring/xenia/kernel/xboxkrnl"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/memory"
	"github.com/lalalaring/xenia/prefs"
	"github.com/lalalaring/xenia/statsview"
	"github.com/lalalaring/xenia/threading"
	"github.com/lalalaring/xenia/ui"
	"github.com/lalalaring/xenia/vfs"
	"github.com/lalalaring/xenia/xstatus"
)

// AudioFactory produces the audio system during Setup(). A nil factory is
// the supported no-audio mode; a non-nil factory returning nil is a
// not-implemented failure.
type AudioFactory func(proc *cpu.Processor) apu.System

// GraphicsFactory produces the graphics system during Setup(). Unlike
// audio, graphics is required.
type GraphicsFactory func() gpu.System

// InputDriverFactory produces the input drivers during Setup(). May be nil.
type InputDriverFactory func(surface ui.Surface) []hid.Driver

// Emulator owns every subsystem of the emulation. Create instances with
// NewEmulator().
type Emulator struct {
	prefs   *prefs.Preferences
	surface ui.Surface

	memory      *memory.Memory
	exports     *cpu.ExportResolver
	debugger    *debugger.Debugger
	processor   *cpu.Processor
	audio       apu.System
	graphics    gpu.System
	input       *hid.System
	fileSystem  *vfs.VirtualFileSystem
	kernelState *kernel.State

	// the crash notice is presented at most once per process, however many
	// guest threads fault. a later faulting thread blocks on the global
	// critical region held by the first containment and never reaches its
	// own dialog, so once-per-process and once-per-fault are observably
	// the same thing
	crashNotice sync.Once

	closed bool
}

// NewEmulator is the preferred method of initialisation for the Emulator
// type. A nil prefs argument selects the defaults.
func NewEmulator(prf *prefs.Preferences) *Emulator {
	if prf == nil {
		prf = prefs.NewPreferences()
	}
	return &Emulator{prefs: prf}
}

// Setup constructs every subsystem in dependency order. Failure anywhere
// aborts immediately; whatever subset was constructed is torn down by
// Close() in the usual reversed order, there is no partial rollback here.
func (e *Emulator) Setup(surface ui.Surface, audioFactory AudioFactory,
	graphicsFactory GraphicsFactory, inputDriverFactory InputDriverFactory) xstatus.Status {

	e.surface = surface

	// global timing state. the tick frequency is the hardware constant;
	// the guest time origin is now; the scalar dilates all guest-visible
	// time
	clock.SetGuestTickFrequency(clock.TickFrequency)
	clock.SetGuestSystemTimeBase(clock.QueryHostSystemTime())
	clock.SetGuestTimeScalar(e.prefs.TimeScalar)

	// required before any later thread-affinity requests
	if err := threading.EnableAffinityConfiguration(); err != nil {
		logger.Logf("emulator", "affinity: %v", err)
	}

	e.memory = memory.NewMemory()
	if err := e.memory.Initialize(); err != nil {
		logger.Logf("emulator", "%v", err)
		return xstatus.Unsuccessful
	}

	e.exports = cpu.NewExportResolver()

	// the debugger must exist before the processor so that the processor
	// can register with the session
	if e.prefs.Debug {
		e.debugger = debugger.NewDebugger()
		if err := e.debugger.StartSession(); err != nil {
			logger.Logf("emulator", "%v", err)
			return xstatus.Unsuccessful
		}
	}

	var dbg cpu.Debugger
	if e.debugger != nil {
		dbg = e.debugger
	}
	e.processor = cpu.NewProcessor(e.memory, e.exports, dbg)
	if err := e.processor.Setup(); err != nil {
		logger.Logf("emulator", "%v", err)
		return xstatus.Unsuccessful
	}

	if audioFactory != nil {
		e.audio = audioFactory(e.processor)
		if e.audio == nil {
			return xstatus.NotImplemented
		}
	}

	if graphicsFactory != nil {
		e.graphics = graphicsFactory()
	}
	if e.graphics == nil {
		return xstatus.NotImplemented
	}

	e.input = hid.NewSystem(surface)
	if inputDriverFactory != nil {
		for _, drv := range inputDriverFactory(surface) {
			e.input.AddDriver(drv)
		}
	}
	if status := e.input.Setup(); status.Failed() {
		return status
	}

	e.fileSystem = vfs.NewVirtualFileSystem()
	e.kernelState = kernel.NewState(e)
	if e.debugger != nil {
		e.debugger.AttachThreads(e.kernelState.ObjectTable())
	}

	if status := e.graphics.Setup(e.processor, e.kernelState, surface); status.Failed() {
		return status
	}
	if e.audio != nil {
		if status := e.audio.Setup(e.kernelState); status.Failed() {
			return status
		}
	}

	if err := e.kernelState.LoadModule(xboxkrnl.NewModule()); err != nil {
		logger.Logf("emulator", "%v", err)
		return xstatus.Unsuccessful
	}
	if err := e.kernelState.LoadModule(xam.NewModule()); err != nil {
		logger.Logf("emulator", "%v", err)
		return xstatus.Unsuccessful
	}

	// the hook goes in last so that a fault handler can never observe a
	// partially constructed emulator
	exception.Install(e.onHostException, e)

	// bind the telemetry server on the surface's owning thread. the
	// synchronous round-trip orders setup completion after the binding
	surface.PostSynchronous(func() {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		}
	})

	return xstatus.Success
}

// Close tears the emulator down in the strict reverse of Setup(). The
// debugger session stops first so it cannot race with the teardown of
// anything it inspects; graphics and audio get a graceful shutdown before
// their references are released; the exception hook is removed last. Safe
// to call on a partially constructed emulator and safe to call twice.
func (e *Emulator) Close() {
	if e.closed {
		return
	}
	e.closed = true

	if e.debugger != nil {
		e.debugger.StopSession()
	}

	if e.graphics != nil {
		e.graphics.Shutdown()
	}
	if e.audio != nil {
		e.audio.Shutdown()
	}

	e.input = nil
	e.graphics = nil
	e.audio = nil

	e.kernelState = nil
	e.fileSystem = nil

	if e.processor != nil {
		e.processor.Close()
		e.processor = nil
	}

	e.debugger = nil
	e.exports = nil
	e.memory = nil

	exception.Uninstall(e)
}

// Memory implements the kernel.Emulator interface.
func (e *Emulator) Memory() *memory.Memory {
	return e.memory
}

// Processor implements the kernel.Emulator interface.
func (e *Emulator) Processor() *cpu.Processor {
	return e.processor
}

// FileSystem implements the kernel.Emulator interface.
func (e *Emulator) FileSystem() *vfs.VirtualFileSystem {
	return e.fileSystem
}

// KernelState returns the emulated operating system state.
func (e *Emulator) KernelState() *kernel.State {
	return e.kernelState
}

// Debugger returns the emulator's own debugger. Nil unless the debug
// preference was set at setup time.
func (e *Emulator) Debugger() *debugger.Debugger {
	return e.debugger
}

// Surface returns the display surface supplied to Setup().
func (e *Emulator) Surface() ui.Surface {
	return e.surface
}
