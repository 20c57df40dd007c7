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

// Package kernel is the emulated operating system state: the object table,
// guest threads and the registry of loaded kernel modules. It depends on
// the virtual filesystem and is required by the graphics and audio systems
// during their setup.
package kernel

import (
	"sync"

	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/memory"
	"github.com/lalalaring/xenia/test"
	"github.com/lalalaring/xenia/vfs"
)

// Emulator is the kernel's view of the emulator that owns it. Exists mainly
// to avoid a circular import to the emulator package.
type Emulator interface {
	Memory() *memory.Memory
	Processor() *cpu.Processor
	FileSystem() *vfs.VirtualFileSystem
}

// Module is an emulated kernel module loaded into the kernel state.
type Module interface {
	// the guest-visible name of the module (eg. xboxkrnl.exe)
	Name() string

	// called when the module is loaded into the kernel state
	Load(st *State) error
}

// State is the shared emulated operating system state.
type State struct {
	emu Emulator

	crit    sync.Mutex
	table   *ObjectTable
	modules map[string]Module

	// running guest threads indexed by goroutine identity
	threads map[uint64]*Thread
}

// NewState is the preferred method of initialisation for the State type.
// The kernel state is bound to the emulator that owns it.
func NewState(emu Emulator) *State {
	return &State{
		emu:     emu,
		table:   newObjectTable(),
		modules: make(map[string]Module),
		threads: make(map[uint64]*Thread),
	}
}

// Emulator returns the emulator the kernel state is bound to.
func (st *State) Emulator() Emulator {
	return st.emu
}

// ObjectTable returns the kernel's object table.
func (st *State) ObjectTable() *ObjectTable {
	return st.table
}

// FileSystem returns the virtual filesystem, via the owning emulator.
func (st *State) FileSystem() *vfs.VirtualFileSystem {
	return st.emu.FileSystem()
}

// Processor returns the processor, via the owning emulator.
func (st *State) Processor() *cpu.Processor {
	return st.emu.Processor()
}

// Memory returns the guest address space, via the owning emulator.
func (st *State) Memory() *memory.Memory {
	return st.emu.Memory()
}

// LoadModule loads a kernel module into the kernel state.
func (st *State) LoadModule(m Module) error {
	st.crit.Lock()
	if _, ok := st.modules[m.Name()]; ok {
		st.crit.Unlock()
		return curated.Errorf("kernel: module already loaded: %s", m.Name())
	}
	st.modules[m.Name()] = m
	st.crit.Unlock()

	if err := m.Load(st); err != nil {
		return curated.Errorf("kernel: %v", err)
	}

	logger.Logf("kernel", "loaded module %s", m.Name())
	return nil
}

// Module returns the loaded kernel module with the given name, or nil.
func (st *State) Module(name string) Module {
	st.crit.Lock()
	defer st.crit.Unlock()
	return st.modules[name]
}

// CurrentThread returns the guest thread executing on the calling
// goroutine, or nil if the calling goroutine is not a guest thread.
func (st *State) CurrentThread() *Thread {
	st.crit.Lock()
	defer st.crit.Unlock()
	return st.threads[test.GoroutineID()]
}

func (st *State) registerThread(id uint64, t *Thread) {
	st.crit.Lock()
	defer st.crit.Unlock()
	st.threads[id] = t
}

func (st *State) unregisterThread(id uint64) {
	st.crit.Lock()
	defer st.crit.Unlock()
	delete(st.threads, id)
}
