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

// Package xboxkrnl is the base kernel module. It registers the kernel's
// guest-visible exports and owns the launching of user modules.
package xboxkrnl

import (
	"io"
	"sync"

	"github.com/lalalaring/xenia/clock"
	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/logger"
)

// Name is the guest-visible name of the module.
const Name = "xboxkrnl.exe"

// magic number at the head of an executable module.
const moduleMagic = "XEX2"

// Module is the base kernel module.
type Module struct {
	st *kernel.State

	crit sync.Mutex

	// guest address for the next loaded module's entry translation
	nextEntry uint32
}

// NewModule is the preferred method of initialisation for the Module type.
func NewModule() *Module {
	return &Module{
		nextEntry: cpu.CodeCacheBase + 0x1000,
	}
}

// Name implements the kernel.Module interface.
func (m *Module) Name() string {
	return Name
}

// Load implements the kernel.Module interface. Registers the kernel's
// guest-visible exports with the export resolver.
func (m *Module) Load(st *kernel.State) error {
	m.st = st

	res := st.Processor().ExportResolver()
	res.RegisterExport("KeQueryPerformanceFrequency", func(args ...uint64) uint64 {
		return clock.GuestTickFrequency()
	})
	res.RegisterExport("KeQueryPerformanceCounter", func(args ...uint64) uint64 {
		return clock.QueryGuestTickCount()
	})
	res.RegisterExport("KeQuerySystemTime", func(args ...uint64) uint64 {
		return clock.QueryGuestSystemTime()
	})

	return nil
}

// LaunchModule loads the executable module at the given virtual filesystem
// path and runs its entry point on a new guest thread, waiting for the
// thread to exit. The return value is the module's integer exit code; a
// load failure is reported as a non-zero code.
func (m *Module) LaunchModule(path string) int {
	entry, err := m.loadModule(path)
	if err != nil {
		logger.Logf("xboxkrnl", "%v", err)
		return 1
	}

	proc := m.st.Processor()
	th := m.st.NewThread(path, true, func() uint64 {
		result, err := proc.Execute(entry)
		if err != nil {
			logger.Logf("xboxkrnl", "%v", err)
			return 1
		}
		return result
	})
	th.Start()

	return int(th.Join())
}

// loadModule reads and validates the module and places its entry
// translation in the code cache.
func (m *Module) loadModule(path string) (uint32, error) {
	f, err := m.st.FileSystem().Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return 0, err
	}
	if len(data) < len(moduleMagic) || string(data[:len(moduleMagic)]) != moduleMagic {
		return 0, curated.Errorf("xboxkrnl: bad module magic: %s", path)
	}

	m.crit.Lock()
	entry := m.nextEntry
	m.nextEntry += 0x100
	m.crit.Unlock()

	// the translation backend is a host closure. a real module body would
	// be translated from the module's code; the entry translation for a
	// well-formed module simply exits cleanly
	err = m.st.Processor().CodeCache().Place(entry, func() uint64 {
		return 0
	})
	if err != nil {
		return 0, err
	}

	logger.Logf("xboxkrnl", "loaded %s (entry %08x)", path, entry)
	return entry, nil
}
