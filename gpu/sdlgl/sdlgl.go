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

// Package sdlgl is the OpenGL graphics system. It presents frames to an
// SDL window through an OpenGL context owned by the surface's thread.
package sdlgl

import (
	"time"

	"github.com/go-gl/gl/v3.2-core/gl"

	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/ui"
	"github.com/lalalaring/xenia/xstatus"
)

// presentation rate while the command processor has nothing to show.
const framePeriod = time.Second / 60

// glSurface is the part of the display surface the OpenGL backend needs
// beyond the ui.Surface interface. The sdlui.Window type implements it.
type glSurface interface {
	ui.Surface
	GLMakeCurrent() error
	GLSwap()
}

// System is the OpenGL graphics system. Create instances with NewSystem().
type System struct {
	proc    *cpu.Processor
	st      *kernel.State
	surface glSurface

	ending chan struct{}
	ended  chan struct{}
}

// NewSystem is the preferred method of initialisation for the System type.
func NewSystem() *System {
	return &System{
		ending: make(chan struct{}),
		ended:  make(chan struct{}),
	}
}

// Setup implements the gpu.System interface. The OpenGL context is created
// on the surface's owning thread; the presentation loop then posts a frame
// to that thread at a fixed rate.
func (sys *System) Setup(proc *cpu.Processor, st *kernel.State, surface ui.Surface) xstatus.Status {
	gls, ok := surface.(glSurface)
	if !ok {
		// the surface has no OpenGL capability
		return xstatus.NotImplemented
	}

	sys.proc = proc
	sys.st = st
	sys.surface = gls

	var serr error
	sys.surface.PostSynchronous(func() {
		if serr = sys.surface.GLMakeCurrent(); serr != nil {
			return
		}
		serr = gl.Init()
	})
	if serr != nil {
		logger.Logf("sdlgl", "%v", serr)
		return xstatus.Unsuccessful
	}

	go sys.present()

	logger.Log("sdlgl", "graphics system ready")
	return xstatus.Success
}

// present drives the fixed-rate presentation loop until Shutdown().
func (sys *System) present() {
	defer close(sys.ended)

	tick := time.NewTicker(framePeriod)
	defer tick.Stop()

	for {
		select {
		case <-sys.ending:
			return
		case <-tick.C:
		}

		sys.surface.PostSynchronous(func() {
			gl.ClearColor(0.0, 0.0, 0.0, 1.0)
			gl.Clear(gl.COLOR_BUFFER_BIT)
			sys.surface.GLSwap()
		})
	}
}

// Shutdown implements the gpu.System interface. Blocks until the
// presentation loop has stopped.
func (sys *System) Shutdown() {
	if sys.surface == nil {
		// Setup() never completed and there is no presentation loop
		return
	}

	select {
	case <-sys.ending:
		return
	default:
	}

	close(sys.ending)
	<-sys.ended
	logger.Log("sdlgl", "graphics system stopped")
}
