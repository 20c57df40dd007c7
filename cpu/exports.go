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

import "sync"

// Trampoline is a host function standing in for a guest-visible import.
type Trampoline func(args ...uint64) uint64

// ExportResolver is the shared symbol table mapping guest-visible import
// names to host trampolines. The kernel modules register their exports here
// and compiled guest code calls through the table.
type ExportResolver struct {
	crit    sync.Mutex
	exports map[string]Trampoline
}

// NewExportResolver is the preferred method of initialisation for the
// ExportResolver type. It cannot fail.
func NewExportResolver() *ExportResolver {
	return &ExportResolver{
		exports: make(map[string]Trampoline),
	}
}

// RegisterExport binds an import name to a host trampoline. A later
// registration for the same name replaces the earlier one.
func (res *ExportResolver) RegisterExport(name string, fn Trampoline) {
	res.crit.Lock()
	defer res.crit.Unlock()
	res.exports[name] = fn
}

// Resolve the named import to its host trampoline.
func (res *ExportResolver) Resolve(name string) (Trampoline, bool) {
	res.crit.Lock()
	defer res.crit.Unlock()
	fn, ok := res.exports[name]
	return fn, ok
}

// Count returns the number of registered exports.
func (res *ExportResolver) Count() int {
	res.crit.Lock()
	defer res.crit.Unlock()
	return len(res.exports)
}
