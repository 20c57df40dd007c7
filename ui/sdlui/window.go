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

// Package sdlui is the SDL implementation of the display surface.
//
// SDL requires that window creation, event handling and rendering all
// happen on the main thread. The Window type therefore does none of its
// own scheduling: the main() function services the window in its main
// loop, and work posted from other threads is queued until the next
// Service() call.
package sdlui

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/test"
)

// default window geometry.
const (
	windowWidth  = 1280
	windowHeight = 720
)

// Window is an SDL window. It implements the ui.Surface interface.
//
// MUST ONLY be created and serviced from the #mainthread.
type Window struct {
	window *sdl.Window
	glctx  sdl.GLContext

	// functions posted from other threads, drained by Service()
	posted chan func()

	// set by the event loop when the user has asked to quit
	quit chan struct{}
}

// NewWindow is the preferred method of initialisation for the Window type.
//
// MUST ONLY be called from the #mainthread.
func NewWindow(title string) (*Window, error) {
	test.AssertMainThread()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, curated.Errorf("sdlui: %v", err)
	}

	w, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		windowWidth, windowHeight,
		sdl.WINDOW_SHOWN|sdl.WINDOW_OPENGL|sdl.WINDOW_RESIZABLE)
	if err != nil {
		return nil, curated.Errorf("sdlui: %v", err)
	}

	return &Window{
		window: w,
		posted: make(chan func(), 32),
		quit:   make(chan struct{}),
	}, nil
}

// Destroy the window and release SDL resources.
//
// MUST ONLY be called from the #mainthread.
func (win *Window) Destroy() {
	test.AssertMainThread()

	if win.glctx != nil {
		sdl.GLDeleteContext(win.glctx)
	}
	win.window.Destroy()
	sdl.Quit()
}

// Service drains posted work and processes SDL events. Must be called
// frequently as part of the main loop.
//
// MUST ONLY be called from the #mainthread.
func (win *Window) Service() {
	test.AssertMainThread()

	// drain posted functions
	done := false
	for !done {
		select {
		case f := <-win.posted:
			f()
		default:
			done = true
		}
	}

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev.(type) {
		case *sdl.QuitEvent:
			select {
			case <-win.quit:
			default:
				close(win.quit)
			}
		}
	}
}

// Quit returns a channel that is closed when the user has asked the window
// to close.
func (win *Window) Quit() <-chan struct{} {
	return win.quit
}

// Post implements the ui.Surface interface.
func (win *Window) Post(f func()) {
	win.posted <- f
}

// PostSynchronous implements the ui.Surface interface.
func (win *Window) PostSynchronous(f func()) {
	done := make(chan struct{})
	win.posted <- func() {
		defer close(done)
		f()
	}
	<-done
}

// ShowMessageBox implements the ui.Surface interface.
//
// MUST ONLY be called from the #mainthread.
func (win *Window) ShowMessageBox(title string, message string) {
	test.AssertMainThread()

	err := sdl.ShowSimpleMessageBox(sdl.MESSAGEBOX_ERROR, title, message, win.window)
	if err != nil {
		logger.Logf("sdlui", "message box: %v", err)
	}
}

// GLMakeCurrent creates (on first call) and binds the window's OpenGL
// context. Called by the graphics system during its setup.
//
// MUST ONLY be called from the #mainthread.
func (win *Window) GLMakeCurrent() error {
	test.AssertMainThread()

	if win.glctx == nil {
		ctx, err := win.window.GLCreateContext()
		if err != nil {
			return curated.Errorf("sdlui: %v", err)
		}
		win.glctx = ctx
	}

	if err := win.window.GLMakeCurrent(win.glctx); err != nil {
		return curated.Errorf("sdlui: %v", err)
	}
	return nil
}

// GLSwap presents the window's back buffer.
//
// MUST ONLY be called from the #mainthread.
func (win *Window) GLSwap() {
	test.AssertMainThread()
	win.window.GLSwap()
}
