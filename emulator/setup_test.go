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

package emulator_test

import (
	"testing"

	"github.com/lalalaring/xenia/apu"
	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/emulator"
	"github.com/lalalaring/xenia/exception"
	"github.com/lalalaring/xenia/gpu"
	"github.com/lalalaring/xenia/hid"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/test"
	"github.com/lalalaring/xenia/ui"
	"github.com/lalalaring/xenia/xstatus"
)

// stubSurface runs posted work inline on the calling goroutine and counts
// presented dialogs.
type stubSurface struct {
	dialogs int
}

func (s *stubSurface) Post(f func()) {
	f()
}

func (s *stubSurface) PostSynchronous(f func()) {
	f()
}

func (s *stubSurface) ShowMessageBox(_ string, _ string) {
	s.dialogs++
}

// stubGraphics and stubAudio record lifecycle events into a shared trace.
type stubGraphics struct {
	trace  *[]string
	status xstatus.Status
}

func (sys *stubGraphics) Setup(proc *cpu.Processor, st *kernel.State, surface ui.Surface) xstatus.Status {
	*sys.trace = append(*sys.trace, "graphics setup")
	return sys.status
}

func (sys *stubGraphics) Shutdown() {
	*sys.trace = append(*sys.trace, "graphics shutdown")
}

type stubAudio struct {
	trace  *[]string
	status xstatus.Status
}

func (sys *stubAudio) Setup(st *kernel.State) xstatus.Status {
	*sys.trace = append(*sys.trace, "audio setup")
	return sys.status
}

func (sys *stubAudio) Shutdown() {
	*sys.trace = append(*sys.trace, "audio shutdown")
}

func (sys *stubAudio) SubmitFrames(_ []int16) error {
	return nil
}

type stubInputDriver struct {
	trace *[]string
}

func (drv *stubInputDriver) Name() string {
	return "stub"
}

func (drv *stubInputDriver) Setup(_ ui.Surface) xstatus.Status {
	*drv.trace = append(*drv.trace, "input setup")
	return xstatus.Success
}

func TestSetup(t *testing.T) {
	var trace []string
	surface := &stubSurface{}

	emu := emulator.NewEmulator(nil)
	defer emu.Close()

	status := emu.Setup(surface,
		func(proc *cpu.Processor) apu.System {
			test.ExpectSuccess(t, proc != nil)
			return &stubAudio{trace: &trace}
		},
		func() gpu.System {
			return &stubGraphics{trace: &trace}
		},
		func(surface ui.Surface) []hid.Driver {
			return []hid.Driver{&stubInputDriver{trace: &trace}}
		},
	)

	test.DemandEquality(t, status, xstatus.Success)
	test.ExpectSuccess(t, emu.Memory() != nil)
	test.ExpectSuccess(t, emu.Processor() != nil)
	test.ExpectSuccess(t, emu.FileSystem() != nil)
	test.ExpectSuccess(t, emu.KernelState() != nil)

	// the input system is set up before graphics and audio
	test.DemandEquality(t, len(trace), 3)
	test.ExpectEquality(t, trace[0], "input setup")
	test.ExpectEquality(t, trace[1], "graphics setup")
	test.ExpectEquality(t, trace[2], "audio setup")

	// the debug preference is off so there is no debugger
	test.ExpectSuccess(t, emu.Debugger() == nil)
}

func TestSetupNoAudio(t *testing.T) {
	var trace []string

	emu := emulator.NewEmulator(nil)
	defer emu.Close()

	// a nil audio factory is the supported no-audio mode
	status := emu.Setup(&stubSurface{}, nil,
		func() gpu.System { return &stubGraphics{trace: &trace} }, nil)
	test.ExpectEquality(t, status, xstatus.Success)
}

func TestSetupAudioFactoryFailure(t *testing.T) {
	var trace []string

	emu := emulator.NewEmulator(nil)
	defer emu.Close()

	// a factory that produces nothing is a not-implemented failure
	status := emu.Setup(&stubSurface{},
		func(proc *cpu.Processor) apu.System { return nil },
		func() gpu.System { return &stubGraphics{trace: &trace} }, nil)
	test.ExpectEquality(t, status, xstatus.NotImplemented)
}

func TestSetupGraphicsRequired(t *testing.T) {
	emu := emulator.NewEmulator(nil)
	defer emu.Close()

	status := emu.Setup(&stubSurface{}, nil, nil, nil)
	test.ExpectEquality(t, status, xstatus.NotImplemented)
}

func TestSetupGraphicsFailurePropagated(t *testing.T) {
	var trace []string

	emu := emulator.NewEmulator(nil)
	defer emu.Close()

	status := emu.Setup(&stubSurface{}, nil,
		func() gpu.System {
			return &stubGraphics{trace: &trace, status: xstatus.Unsuccessful}
		}, nil)
	test.ExpectEquality(t, status, xstatus.Unsuccessful)
}

func TestCloseOrder(t *testing.T) {
	var trace []string

	emu := emulator.NewEmulator(nil)

	status := emu.Setup(&stubSurface{},
		func(proc *cpu.Processor) apu.System { return &stubAudio{trace: &trace} },
		func() gpu.System { return &stubGraphics{trace: &trace} }, nil)
	test.DemandEquality(t, status, xstatus.Success)

	trace = trace[:0]
	emu.Close()

	// graphics shuts down before audio, mirroring the reversed setup order
	test.DemandEquality(t, len(trace), 2)
	test.ExpectEquality(t, trace[0], "graphics shutdown")
	test.ExpectEquality(t, trace[1], "audio shutdown")

	// closing twice is safe
	emu.Close()
	test.ExpectEquality(t, len(trace), 2)
}

func TestExceptionHookLifetime(t *testing.T) {
	var trace []string
	surface := &stubSurface{}

	emu := emulator.NewEmulator(nil)

	status := emu.Setup(surface, nil,
		func() gpu.System { return &stubGraphics{trace: &trace} }, nil)
	test.DemandEquality(t, status, xstatus.Success)

	// with the emulator up, a fault inside the guest code region is
	// claimed by the containment path. the dispatching goroutine is not a
	// guest thread so nothing parks
	ex := &exception.Exception{PC: uint64(cpu.CodeCacheBase) + 0x1000, Detail: "test fault"}
	test.ExpectSuccess(t, exception.Dispatch(ex))
	test.ExpectEquality(t, surface.dialogs, 1)

	// after Close the hook is gone and the fault is unclaimed
	emu.Close()
	test.ExpectFailure(t, exception.Dispatch(ex))
}
