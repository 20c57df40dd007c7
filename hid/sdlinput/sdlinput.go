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

// Package sdlinput provides game controllers through the SDL game
// controller API.
package sdlinput

import (
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/ui"
	"github.com/lalalaring/xenia/xstatus"
	"github.com/veandco/go-sdl2/sdl"
)

// Driver provides SDL game controllers. Create instances with NewDriver().
type Driver struct {
	controllers []*sdl.GameController
}

// NewDriver is the preferred method of initialisation for the Driver type.
func NewDriver() *Driver {
	return &Driver{}
}

// Name implements the hid.Driver interface.
func (drv *Driver) Name() string {
	return "sdl"
}

// Setup implements the hid.Driver interface. Controller events are
// delivered through the surface's event loop so the surface must be
// serviced for hotplug to work.
//
// #mainthread
func (drv *Driver) Setup(_ ui.Surface) xstatus.Status {
	if err := sdl.InitSubSystem(sdl.INIT_GAMECONTROLLER); err != nil {
		logger.Logf("sdlinput", "%v", err)
		return xstatus.Unsuccessful
	}

	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		ctrl := sdl.GameControllerOpen(i)
		if ctrl == nil {
			logger.Logf("sdlinput", "could not open controller %d", i)
			continue
		}
		logger.Logf("sdlinput", "controller %d: %s", i, ctrl.Name())
		drv.controllers = append(drv.controllers, ctrl)
	}

	return xstatus.Success
}

// Close any opened controllers.
func (drv *Driver) Close() {
	for _, ctrl := range drv.controllers {
		ctrl.Close()
	}
	drv.controllers = drv.controllers[:0]
}
