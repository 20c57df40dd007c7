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

package cpu

import (
	"sync"

	"github.com/lalalaring/xenia/curated"
)

// guest address and extent of the code cache region. these bound the "guest
// code" test in the emulator's exception policy.
const (
	CodeCacheBase = uint32(0xa0000000)
	CodeCacheSize = uint32(0x04000000)
)

// GuestFunc is a compiled translation of a guest function. The return value
// is the function's guest exit code.
type GuestFunc func() uint64

// CodeCache holds the compiled translations of guest instructions. The
// exception dispatcher uses the cache's address bounds to decide whether a
// fault occurred in guest code.
type CodeCache struct {
	crit      sync.Mutex
	functions map[uint32]GuestFunc
}

func newCodeCache() *CodeCache {
	return &CodeCache{
		functions: make(map[uint32]GuestFunc),
	}
}

// BaseAddress of the code cache region.
func (cc *CodeCache) BaseAddress() uint64 {
	return uint64(CodeCacheBase)
}

// TotalSize of the code cache region.
func (cc *CodeCache) TotalSize() uint64 {
	return uint64(CodeCacheSize)
}

// Contains returns true if the program counter falls inside the code cache
// region [base, base+size).
func (cc *CodeCache) Contains(pc uint64) bool {
	return pc >= cc.BaseAddress() && pc < cc.BaseAddress()+cc.TotalSize()
}

// Place a compiled translation at the given guest address.
func (cc *CodeCache) Place(addr uint32, fn GuestFunc) error {
	if !cc.Contains(uint64(addr)) {
		return curated.Errorf("code cache: address %08x outside cache region", addr)
	}

	cc.crit.Lock()
	defer cc.crit.Unlock()
	cc.functions[addr] = fn
	return nil
}

// Lookup the compiled translation at the given guest address.
func (cc *CodeCache) Lookup(addr uint32) (GuestFunc, bool) {
	cc.crit.Lock()
	defer cc.crit.Unlock()
	fn, ok := cc.functions[addr]
	return fn, ok
}
