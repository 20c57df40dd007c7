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

package cpu_test

import (
	"testing"

	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/memory"
	"github.com/lalalaring/xenia/test"
)

func TestSetup(t *testing.T) {
	mem := memory.NewMemory()
	test.DemandSuccess(t, mem.Initialize())

	proc := cpu.NewProcessor(mem, cpu.NewExportResolver(), nil)
	test.DemandSuccess(t, proc.Setup())
	defer proc.Close()

	// the code cache region is visible in guest memory after setup
	_, err := mem.Translate(cpu.CodeCacheBase)
	test.ExpectSuccess(t, err)
}

func TestCodeCacheBounds(t *testing.T) {
	mem := memory.NewMemory()
	test.DemandSuccess(t, mem.Initialize())

	proc := cpu.NewProcessor(mem, cpu.NewExportResolver(), nil)
	cache := proc.CodeCache()

	test.ExpectSuccess(t, cache.Contains(cache.BaseAddress()))
	test.ExpectSuccess(t, cache.Contains(cache.BaseAddress()+cache.TotalSize()-1))
	test.ExpectFailure(t, cache.Contains(cache.BaseAddress()+cache.TotalSize()))
	test.ExpectFailure(t, cache.Contains(cache.BaseAddress()-1))

	// placement outside the cache region fails
	test.ExpectFailure(t, cache.Place(0x1000, func() uint64 { return 0 }))
}

func TestExecute(t *testing.T) {
	mem := memory.NewMemory()
	test.DemandSuccess(t, mem.Initialize())

	proc := cpu.NewProcessor(mem, cpu.NewExportResolver(), nil)
	test.DemandSuccess(t, proc.Setup())
	defer proc.Close()

	entry := cpu.CodeCacheBase + 0x100
	test.DemandSuccess(t, proc.CodeCache().Place(entry, func() uint64 { return 7 }))

	result, err := proc.Execute(entry)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, result, uint64(7))

	// execution at an address with no translation fails
	_, err = proc.Execute(entry + 4)
	test.ExpectFailure(t, err)
}

func TestExportResolver(t *testing.T) {
	res := cpu.NewExportResolver()
	test.ExpectEquality(t, res.Count(), 0)

	res.RegisterExport("XamLoaderLaunchTitle", func(args ...uint64) uint64 { return 0 })

	fn, ok := res.Resolve("XamLoaderLaunchTitle")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, fn(), uint64(0))

	_, ok = res.Resolve("NtCreateFile")
	test.ExpectFailure(t, ok)
}

type mockDebugger struct {
	attached any
}

func (dbg *mockDebugger) AttachProcessor(proc any) {
	dbg.attached = proc
}

func TestDebuggerHook(t *testing.T) {
	mem := memory.NewMemory()
	test.DemandSuccess(t, mem.Initialize())

	// the debugger observes processor construction
	dbg := &mockDebugger{}
	proc := cpu.NewProcessor(mem, cpu.NewExportResolver(), dbg)
	test.ExpectSuccess(t, dbg.attached == proc)
}
