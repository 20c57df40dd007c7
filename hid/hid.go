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

// Package hid is the input system. Input devices are provided by drivers
// (see the sdlinput package); the input system itself only manages the
// collection of drivers bound to the display surface.
package hid

import (
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/ui"
	"github.com/lalalaring/xenia/xstatus"
)

// Driver is one source of input devices.
type Driver interface {
	Name() string

	// Setup the driver. The returned status is propagated verbatim by the
	// input system's own Setup()
	Setup(surface ui.Surface) xstatus.Status
}

// System is the input system, bound to the display surface. Create
// instances with NewSystem().
type System struct {
	surface ui.Surface
	drivers []Driver
}

// NewSystem is the preferred method of initialisation for the System type.
func NewSystem(surface ui.Surface) *System {
	return &System{
		surface: surface,
		drivers: make([]Driver, 0, 1),
	}
}

// AddDriver to the input system. Drivers are set up in the order they were
// added.
func (sys *System) AddDriver(drv Driver) {
	sys.drivers = append(sys.drivers, drv)
}

// Setup every added driver. The first driver failure aborts setup and its
// status is propagated verbatim.
func (sys *System) Setup() xstatus.Status {
	for _, drv := range sys.drivers {
		if status := drv.Setup(sys.surface); status.Failed() {
			logger.Logf("hid", "%s: %v", drv.Name(), status)
			return status
		}
		logger.Logf("hid", "%s: ready", drv.Name())
	}
	return xstatus.Success
}
