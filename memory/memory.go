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

// Package memory is the flat guest address space allocator. Every other
// subsystem depends on it and it must be initialised before anything else.
//
// The guest sees a single 32bit address space divided into named regions.
// Regions are reserved at fixed base addresses by the subsystems that own
// them (the processor's code cache, the kernel's heaps) and backing storage
// is committed when the region is reserved.
package memory

import (
	"sync"

	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/logger"
)

// AddressSpaceSize is the extent of the flat guest address space.
const AddressSpaceSize = uint64(1) << 32

type region struct {
	name string
	base uint32
	size uint32
	data []byte
}

// Memory is the flat guest address space. Create instances with NewMemory()
// and call Initialize() before use.
type Memory struct {
	crit        sync.Mutex
	initialised bool
	regions     []region
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The address space is not usable until Initialize() has been called.
func NewMemory() *Memory {
	return &Memory{}
}

// Initialize the address space. Must be called before any reservation.
func (m *Memory) Initialize() error {
	m.crit.Lock()
	defer m.crit.Unlock()

	if m.initialised {
		return curated.Errorf("memory: already initialised")
	}

	m.regions = make([]region, 0, 8)
	m.initialised = true

	logger.Logf("memory", "guest address space initialised (%dMB)", AddressSpaceSize>>20)
	return nil
}

// Reserve a named region at a fixed base address, committing backing
// storage for it. The returned slice is the backing storage for the whole
// region.
func (m *Memory) Reserve(name string, base uint32, size uint32) ([]byte, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	if !m.initialised {
		return nil, curated.Errorf("memory: not initialised")
	}

	if size == 0 || uint64(base)+uint64(size) > AddressSpaceSize {
		return nil, curated.Errorf("memory: bad reservation: %s", name)
	}

	for _, r := range m.regions {
		if base < r.base+r.size && r.base < base+size {
			return nil, curated.Errorf("memory: %s overlaps %s", name, r.name)
		}
	}

	r := region{
		name: name,
		base: base,
		size: size,
		data: make([]byte, size),
	}
	m.regions = append(m.regions, r)

	logger.Logf("memory", "%s: reserved %08x-%08x", name, base, base+size-1)
	return r.data, nil
}

// Release the named region. Reads and writes to the region's addresses will
// fail once released.
func (m *Memory) Release(name string) {
	m.crit.Lock()
	defer m.crit.Unlock()

	for i := range m.regions {
		if m.regions[i].name == name {
			m.regions = append(m.regions[:i], m.regions[i+1:]...)
			return
		}
	}
}

// Translate a guest address into the backing storage of its containing
// region. The returned slice begins at the translated address and extends to
// the end of the region.
func (m *Memory) Translate(addr uint32) ([]byte, error) {
	m.crit.Lock()
	defer m.crit.Unlock()

	for _, r := range m.regions {
		if addr >= r.base && addr < r.base+r.size {
			return r.data[addr-r.base:], nil
		}
	}

	return nil, curated.Errorf("memory: unmapped address: %08x", addr)
}
