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
	"testing"

	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/kernel/xam"
	"github.com/lalalaring/xenia/kernel/xboxkrnl"
	"github.com/lalalaring/xenia/test"
	"github.com/lalalaring/xenia/xstatus"
)

// fakeKernelModule stands in for the base kernel module. each launch
// records the path, returns the scripted result and optionally requests a
// follow-on module through the loader state.
type fakeKernelModule struct {
	loader   *fakeXamModule
	launched []string
	results  []int
	requests []string
}

func (m *fakeKernelModule) Name() string             { return xboxkrnl.Name }
func (m *fakeKernelModule) Load(*kernel.State) error { return nil }

func (m *fakeKernelModule) LaunchModule(path string) int {
	i := len(m.launched)
	m.launched = append(m.launched, path)

	if i < len(m.requests) && m.requests[i] != "" {
		m.loader.loaderData.LaunchPath = m.requests[i]
	}
	if i < len(m.results) {
		return m.results[i]
	}
	return 0
}

type fakeXamModule struct {
	loaderData xam.LoaderData
}

func (m *fakeXamModule) Name() string                { return xam.Name }
func (m *fakeXamModule) Load(*kernel.State) error    { return nil }
func (m *fakeXamModule) LoaderData() *xam.LoaderData { return &m.loaderData }

func chainEmulator(t *testing.T, krnl *fakeKernelModule, loader *fakeXamModule) *Emulator {
	t.Helper()

	emu := NewEmulator(nil)
	emu.kernelState = kernel.NewState(emu)
	test.DemandSuccess(t, emu.kernelState.LoadModule(krnl))
	test.DemandSuccess(t, emu.kernelState.LoadModule(loader))

	return emu
}

func TestCompleteLaunchSingleModule(t *testing.T) {
	loader := &fakeXamModule{}
	krnl := &fakeKernelModule{loader: loader}
	emu := chainEmulator(t, krnl, loader)

	status := emu.CompleteLaunch(`game.xex`, `game:\game.xex`)
	test.ExpectEquality(t, status, xstatus.Success)
	test.DemandEquality(t, len(krnl.launched), 1)
	test.ExpectEquality(t, krnl.launched[0], `game:\game.xex`)
}

func TestCompleteLaunchChain(t *testing.T) {
	loader := &fakeXamModule{}
	krnl := &fakeKernelModule{
		loader:   loader,
		requests: []string{`game:\updater.xex`, `game:\patched.xex`},
	}
	emu := chainEmulator(t, krnl, loader)

	// two redirects mean three iterations
	status := emu.CompleteLaunch(`game.xex`, `game:\default.xex`)
	test.ExpectEquality(t, status, xstatus.Success)
	test.DemandEquality(t, len(krnl.launched), 3)
	test.ExpectEquality(t, krnl.launched[0], `game:\default.xex`)
	test.ExpectEquality(t, krnl.launched[1], `game:\updater.xex`)
	test.ExpectEquality(t, krnl.launched[2], `game:\patched.xex`)

	// the request field was cleared after the final iteration
	test.ExpectEquality(t, loader.loaderData.LaunchPath, "")
}

func TestCompleteLaunchLastResultOnly(t *testing.T) {
	loader := &fakeXamModule{}
	krnl := &fakeKernelModule{
		loader:   loader,
		requests: []string{`game:\patched.xex`},
		results:  []int{1, 0},
	}
	emu := chainEmulator(t, krnl, loader)

	// the first link fails but hands off to a second that succeeds. only
	// the last link's result counts, so the launch as a whole succeeds.
	// a failed updater redirecting to a working title is the intended use
	status := emu.CompleteLaunch(`game.xex`, `game:\default.xex`)
	test.ExpectEquality(t, status, xstatus.Success)

	// and the converse: a failing final link fails the launch
	loader2 := &fakeXamModule{}
	krnl2 := &fakeKernelModule{loader: loader2, results: []int{1}}
	emu2 := chainEmulator(t, krnl2, loader2)

	status = emu2.CompleteLaunch(`game.xex`, `game:\default.xex`)
	test.ExpectEquality(t, status, xstatus.Unsuccessful)
}

func TestCompleteLaunchNoModules(t *testing.T) {
	emu := NewEmulator(nil)
	emu.kernelState = kernel.NewState(emu)

	status := emu.CompleteLaunch(`game.xex`, `game:\game.xex`)
	test.ExpectEquality(t, status, xstatus.Unsuccessful)
}

func TestPathClassification(t *testing.T) {
	// module extensions
	test.ExpectEquality(t, hostPathExtension("game.xex"), ".xex")
	test.ExpectEquality(t, hostPathExtension("GAME.XEX"), ".xex")
	test.ExpectEquality(t, hostPathExtension("/data/game.elf"), ".elf")

	// anything else with an extension is a disc image
	test.ExpectEquality(t, hostPathExtension("game.iso"), ".iso")

	// no extension, or a dot belonging to a directory name, is a
	// container image
	test.ExpectEquality(t, hostPathExtension("MyGame"), "")
	test.ExpectEquality(t, hostPathExtension(`C:\a.b\c`), "")
	test.ExpectEquality(t, hostPathExtension("/a.b/c"), "")
}

func TestHostPathHelpers(t *testing.T) {
	test.ExpectEquality(t, hostPathBase(`C:\games\game.xex`), "game.xex")
	test.ExpectEquality(t, hostPathBase("/games/game.xex"), "game.xex")
	test.ExpectEquality(t, hostPathBase("game.xex"), "game.xex")

	test.ExpectEquality(t, hostPathParent("/games/game.xex"), "/games")
	test.ExpectEquality(t, hostPathParent("/game.xex"), "/")
	test.ExpectEquality(t, hostPathParent("game.xex"), ".")
}
