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

// Package cpu owns the code cache and executes guest code. The instruction
// translation backend is deliberately simple: compiled guest functions are
// host closures placed into the code cache by the module loader. What
// matters to the rest of the emulator is the shape of the execution
// boundary: the code cache's address bounds, the export resolver, and the
// conversion of host faults during guest execution into exception
// dispatches.
package cpu

import (
	"runtime/debug"

	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/exception"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/memory"
	"github.com/lalalaring/xenia/test"
)

// Debugger is the debugger as seen by the processor. The debugger is
// created before the processor so that it can hook processor construction.
type Debugger interface {
	// called by NewProcessor() so the debugger can observe the processor
	// coming into existence
	AttachProcessor(proc any)
}

// Processor executes guest code. It depends on the Memory system, the
// shared ExportResolver and, optionally, a Debugger.
type Processor struct {
	mem      *memory.Memory
	exports  *ExportResolver
	debugger Debugger

	cache *CodeCache

	// set by Setup(). the code cache region is released on Close()
	setup bool
}

// NewProcessor is the preferred method of initialisation for the Processor
// type. The debugger may be nil.
func NewProcessor(mem *memory.Memory, exports *ExportResolver, debugger Debugger) *Processor {
	proc := &Processor{
		mem:      mem,
		exports:  exports,
		debugger: debugger,
		cache:    newCodeCache(),
	}

	if debugger != nil {
		debugger.AttachProcessor(proc)
	}

	return proc
}

// Setup the processor. Reserves the code cache region in guest memory.
func (proc *Processor) Setup() error {
	_, err := proc.mem.Reserve("code cache", CodeCacheBase, CodeCacheSize)
	if err != nil {
		return curated.Errorf("processor: %v", err)
	}
	proc.setup = true
	return nil
}

// Close releases the code cache region.
func (proc *Processor) Close() {
	if proc.setup {
		proc.mem.Release("code cache")
		proc.setup = false
	}
}

// CodeCache returns the processor's code cache.
func (proc *Processor) CodeCache() *CodeCache {
	return proc.cache
}

// ExportResolver returns the shared export resolver.
func (proc *Processor) ExportResolver() *ExportResolver {
	return proc.exports
}

// Execute the guest function at the given address and return its guest exit
// code.
//
// A memory fault raised by the guest function is converted into an
// exception and dispatched through the process-wide handler chain from the
// faulting thread. If no handler claims the fault it is re-raised and takes
// the host's default crash path.
func (proc *Processor) Execute(addr uint32) (uint64, error) {
	fn, ok := proc.cache.Lookup(addr)
	if !ok {
		return 0, curated.Errorf("processor: no function at %08x", addr)
	}

	return proc.trap(addr, fn), nil
}

// trap runs a guest function with fault conversion in place.
func (proc *Processor) trap(addr uint32, fn GuestFunc) uint64 {
	defer debug.SetPanicOnFault(debug.SetPanicOnFault(true))

	var result uint64

	func() {
		defer func() {
			p := recover()
			if p == nil {
				return
			}

			pe, ok := p.(error)
			if !ok {
				panic(p)
			}

			ex := &exception.Exception{
				PC:       uint64(addr),
				ThreadID: test.GoroutineID(),
				Detail:   pe.Error(),
			}

			logger.Logf("processor", "%v", ex)

			if !exception.Dispatch(ex) {
				// no handler claimed the fault. take the default
				// crash path
				panic(p)
			}
		}()

		result = fn()
	}()

	return result
}
