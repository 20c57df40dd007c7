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

// Package xam is the application-management kernel module. Its loader state
// is how one guest module requests that another be loaded: the module
// writes a launch path and the emulator's module-load chain polls and
// clears it.
package xam

import (
	"bytes"

	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/logger"
)

// Name is the guest-visible name of the module.
const Name = "xam.xex"

// LoaderData is the module's shared loader state. The LaunchPath field is
// written by guest code (via the XamLoaderLaunchNewImage export) and read
// and cleared by the emulator's module-load chain. Module execution
// completes before control returns to the chain driver, so the field has
// single-writer/single-reader semantics.
type LoaderData struct {
	LaunchPath string
}

// Module is the application-management kernel module.
type Module struct {
	st         *kernel.State
	loaderData LoaderData
}

// NewModule is the preferred method of initialisation for the Module type.
func NewModule() *Module {
	return &Module{}
}

// Name implements the kernel.Module interface.
func (m *Module) Name() string {
	return Name
}

// Load implements the kernel.Module interface.
func (m *Module) Load(st *kernel.State) error {
	m.st = st

	res := st.Processor().ExportResolver()
	res.RegisterExport("XamLoaderLaunchNewImage", func(args ...uint64) uint64 {
		if len(args) < 1 {
			return 1
		}
		path, err := m.readGuestString(uint32(args[0]))
		if err != nil {
			logger.Logf("xam", "%v", err)
			return 1
		}
		m.loaderData.LaunchPath = path
		logger.Logf("xam", "launch requested: %s", path)
		return 0
	})

	return nil
}

// LoaderData returns the module's shared loader state.
func (m *Module) LoaderData() *LoaderData {
	return &m.loaderData
}

// readGuestString reads a NUL-terminated string from guest memory.
func (m *Module) readGuestString(addr uint32) (string, error) {
	b, err := m.st.Memory().Translate(addr)
	if err != nil {
		return "", err
	}

	if i := bytes.IndexByte(b, 0); i != -1 {
		b = b[:i]
	}
	return string(b), nil
}
