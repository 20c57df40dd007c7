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

package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/lalalaring/xenia/apu"
	"github.com/lalalaring/xenia/apu/sdlaudio"
	"github.com/lalalaring/xenia/apu/wavrecorder"
	"github.com/lalalaring/xenia/cpu"
	"github.com/lalalaring/xenia/emulator"
	"github.com/lalalaring/xenia/gpu"
	"github.com/lalalaring/xenia/gpu/sdlgl"
	"github.com/lalalaring/xenia/hid"
	"github.com/lalalaring/xenia/hid/sdlinput"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/modalflag"
	"github.com/lalalaring/xenia/prefs"
	"github.com/lalalaring/xenia/ui"
	"github.com/lalalaring/xenia/ui/sdlui"
	"github.com/lalalaring/xenia/version"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function. this
// is required because SDL requires window event handling (including
// creation) to occur on the main thread.
type mainSync struct {
	state   chan stateRequest
	creator chan func() (*sdlui.Window, error)

	// the result of creator will be returned on either of these two
	// channels
	creation      chan *sdlui.Window
	creationError chan error
}

func init() {
	// SDL window and event work must happen on the main thread
	runtime.LockOSThread()
}

// #mainthread
func main() {
	sync := &mainSync{
		state:         make(chan stateRequest),
		creator:       make(chan func() (*sdlui.Window, error)),
		creation:      make(chan *sdlui.Window),
		creationError: make(chan error),
	}

	// the value to use with os.Exit(). can be changed with a reqQuit
	// stateRequest
	exitVal := 0

	// #ctrlc
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	// launch program as a go routine. further communication is through the
	// mainSync instance
	go launch(sync)

	// loop until done is true. every iteration of the loop we listen for:
	//
	//  1. interrupt signals
	//  2. new window creation functions
	//  3. state requests
	//  4. anything in the Service() function of the current window
	//
	done := false
	var window *sdlui.Window
	for !done {
		select {
		case <-intChan:
			fmt.Println("\r")
			done = true

		case creator := <-sync.creator:
			if window != nil {
				window.Destroy()
				window = nil
			}

			w, err := creator()
			if err != nil {
				sync.creationError <- err
				break // select
			}
			window = w
			sync.creation <- w

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					}
				}
			}

		default:
			if window != nil {
				window.Service()
				select {
				case <-window.Quit():
					done = true
				default:
				}
			} else {
				// give the CPU a rest while there is no window to
				// service
				time.Sleep(10 * time.Millisecond)
			}
		}
	}

	if window != nil {
		window.Destroy()
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// communicate with the main goroutine.
func launch(sync *mainSync) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "VERSION")

	debug := md.AddBool("debug", false, "start a debugger session")
	scalar := md.AddFloat64("scale", 0, "guest time scalar (0 uses the preferences file)")
	audio := md.AddString("audio", "", "audio backend: sdl, wav or none (empty uses the preferences file)")
	echo := md.AddBool("log", false, "echo log entries to stderr")

	res, err := md.Parse()
	switch res {
	case modalflag.ParseHelp:
		sync.state <- stateRequest{req: reqQuit}
		return
	case modalflag.ParseError:
		fmt.Fprintln(os.Stderr, err)
		sync.state <- stateRequest{req: reqQuit, args: 10}
		return
	}

	switch md.Mode() {
	case "VERSION":
		ver, rev, _ := version.Version()
		fmt.Printf("%s %s (%s)\n", version.ApplicationName, ver, rev)
		sync.state <- stateRequest{req: reqQuit}

	case "RUN":
		sync.state <- stateRequest{req: reqQuit, args: run(sync, md, *debug, *scalar, *audio, *echo)}
	}
}

func run(sync *mainSync, md *modalflag.Modes, debug bool, scalar float64, audio string, echo bool) int {
	if echo {
		logger.SetEcho(os.Stderr)
	}

	path := md.GetArg(0)
	if path == "" {
		fmt.Fprintln(os.Stderr, "no module, disc image or container specified")
		return 10
	}

	prf, err := prefs.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 10
	}

	// command line overrides of the preferences file
	if debug {
		prf.Debug = true
	}
	if scalar > 0 {
		prf.TimeScalar = scalar
	}
	if audio != "" {
		prf.Audio = audio
	}

	// the window must be created on the main thread
	sync.creator <- func() (*sdlui.Window, error) {
		return sdlui.NewWindow(version.ApplicationName)
	}

	var window *sdlui.Window
	select {
	case window = <-sync.creation:
	case err := <-sync.creationError:
		fmt.Fprintln(os.Stderr, err)
		return 10
	}

	var audioFactory emulator.AudioFactory
	switch prf.Audio {
	case "none":
		// supported no-audio mode
	case "wav":
		audioFactory = func(_ *cpu.Processor) apu.System {
			return wavrecorder.NewSystem(prf.WavFile)
		}
	default:
		audioFactory = func(_ *cpu.Processor) apu.System {
			return sdlaudio.NewSystem()
		}
	}

	emu := emulator.NewEmulator(prf)
	defer emu.Close()

	status := emu.Setup(window, audioFactory,
		func() gpu.System { return sdlgl.NewSystem() },
		func(_ ui.Surface) []hid.Driver {
			return []hid.Driver{sdlinput.NewDriver()}
		},
	)
	if status.Failed() {
		fmt.Fprintf(os.Stderr, "setup failed: %v\n", status)
		return 10
	}

	if status := emu.LaunchPath(path); status.Failed() {
		fmt.Fprintf(os.Stderr, "launch failed: %v\n", status)
		return 10
	}

	// the guest has run to completion or handed control back. keep the
	// window open until the user closes it
	<-window.Quit()

	return 0
}
