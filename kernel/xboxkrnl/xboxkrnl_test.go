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

package xboxkrnl_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/kernel/xboxkrnl"
	"github.com/lalalaring/xenia/memory"
	"github.com/lalalaring/xenia/test"
	"github.com/lalalaring/xenia/vfs"
)

type mockEmulator struct {
	mem  *memory.Memory
	proc *cpu.Processor
	fsys *vfs.VirtualFileSystem
}

func (emu *mockEmulator) Memory() *memory.Memory             { return emu.mem }
func (emu *mockEmulator) Processor() *cpu.Processor          { return emu.proc }
func (emu *mockEmulator) FileSystem() *vfs.VirtualFileSystem { return emu.fsys }

func newTestState(t *testing.T) *kernel.State {
	t.Helper()

	emu := &mockEmulator{
		mem:  memory.NewMemory(),
		fsys: vfs.NewVirtualFileSystem(),
	}
	test.DemandSuccess(t, emu.mem.Initialize())
	emu.proc = cpu.NewProcessor(emu.mem, cpu.NewExportResolver(), nil)
	test.DemandSuccess(t, emu.proc.Setup())

	return kernel.NewState(emu)
}

func TestExports(t *testing.T) {
	st := newTestState(t)

	m := xboxkrnl.NewModule()
	test.DemandSuccess(t, st.LoadModule(m))

	res := st.Processor().ExportResolver()
	fn, ok := res.Resolve("KeQueryPerformanceFrequency")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, fn(), uint64(50000000))

	_, ok = res.Resolve("KeQuerySystemTime")
	test.ExpectSuccess(t, ok)
}

func TestLaunchModule(t *testing.T) {
	st := newTestState(t)

	m := xboxkrnl.NewModule()
	test.DemandSuccess(t, st.LoadModule(m))

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "game.xex"), []byte("XEX2 entry"), 0644)
	test.DemandSuccess(t, err)

	dev := vfs.NewHostPathDevice("\\Device\\Harddisk0\\Partition0", dir)
	test.DemandSuccess(t, dev.Initialize())
	test.DemandSuccess(t, st.FileSystem().RegisterDevice(dev))
	st.FileSystem().RegisterSymbolicLink("game:", "\\Device\\Harddisk0\\Partition0")

	// a well-formed module launches and exits cleanly
	test.ExpectEquality(t, m.LaunchModule("game:\\game.xex"), 0)

	// a missing module is a non-zero result
	test.ExpectInequality(t, m.LaunchModule("game:\\missing.xex"), 0)
}

func TestLaunchModuleBadMagic(t *testing.T) {
	st := newTestState(t)

	m := xboxkrnl.NewModule()
	test.DemandSuccess(t, st.LoadModule(m))

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "junk.xex"), []byte("not a module"), 0644)
	test.DemandSuccess(t, err)

	dev := vfs.NewHostPathDevice("\\Device\\Harddisk0\\Partition0", dir)
	test.DemandSuccess(t, dev.Initialize())
	test.DemandSuccess(t, st.FileSystem().RegisterDevice(dev))
	st.FileSystem().RegisterSymbolicLink("game:", "\\Device\\Harddisk0\\Partition0")

	test.ExpectInequality(t, m.LaunchModule("game:\\junk.xex"), 0)
}
