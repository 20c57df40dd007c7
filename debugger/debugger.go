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

// Package debugger implements the guest debugger. a session is optional and
// is only started when the debug preference is enabled. with a session
// running, unhandled host exceptions are claimed by the debugger rather than
// being contained as guest crashes.
package debugger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bradleyjkemp/memviz"
	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/debugger/terminal"
	"github.com/lalalaring/xenia/exception"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/paths"
)

// sentinal errors returned by the Debugger type.
const (
	SessionRunning = "debugger: session already running"
)

// Debugger is the guest debugger. Create instances with NewDebugger().
type Debugger struct {
	crit sync.Mutex

	sessionDir string
	attached   bool

	// the debugger works at arms length from the processor. the processor
	// registers itself on creation and the debugger only ever walks the
	// object graph for dump purposes
	processor any

	// live guest threads, for the THREADS and RESUME commands. attached
	// by the emulator once the kernel state exists
	threads ThreadLister

	trm *terminal.Terminal
}

// ThreadLister provides the debugger with the set of live guest threads.
// The kernel object table satisfies it.
type ThreadLister interface {
	Threads() []*kernel.Thread
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type.
func NewDebugger() *Debugger {
	return &Debugger{}
}

// AttachProcessor registers the processor with the debugger. The processor
// is included in object graph dumps.
func (dbg *Debugger) AttachProcessor(proc any) {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	dbg.processor = proc
}

// AttachThreads gives the debugger access to the live guest threads.
func (dbg *Debugger) AttachThreads(threads ThreadLister) {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	dbg.threads = threads
}

// StartSession begins a debugging session. Session artefacts (logs, object
// graph dumps) are written to a timestamped directory under the resource
// path. The terminal prompt is only available when standard input is a real
// terminal but the session is attached either way.
func (dbg *Debugger) StartSession() error {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	if dbg.attached {
		return curated.Errorf(SessionRunning)
	}

	dir := paths.ResourcePath("debug", time.Now().Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0700); err != nil {
		return curated.Errorf("debugger: %v", err)
	}
	dbg.sessionDir = dir

	if trm, err := terminal.NewTerminal(os.Stdin, os.Stdout); err != nil {
		logger.Logf("debugger", "no terminal: %v", err)
	} else {
		dbg.trm = trm
		go dbg.commandLoop(trm)
	}

	dbg.attached = true
	logger.Logf("debugger", "session started: %s", dir)

	return nil
}

// commandLoop services the terminal prompt until the terminal fails, which
// happens when StopSession() closes it, or until a DETACH command.
func (dbg *Debugger) commandLoop(trm *terminal.Terminal) {
	for {
		line, err := trm.Prompt("[xenia] ")
		if err != nil {
			return
		}
		if !dbg.ProcessCommand(line, trm) {
			return
		}
	}
}

// ProcessCommand interprets one debugger command, writing any response to
// the io.Writer. Returns false when the command ends the prompt loop.
func (dbg *Debugger) ProcessCommand(line string, output io.Writer) bool {
	switch strings.ToUpper(strings.TrimSpace(line)) {
	case "":
		// an empty line is not an error

	case "HELP":
		fmt.Fprintln(output, "commands: THREADS, RESUME, LOG, MEMVIZ, DETACH")

	case "THREADS":
		if dbg.threads == nil {
			fmt.Fprintln(output, "no kernel attached")
			break
		}
		for _, th := range dbg.threads.Threads() {
			state := "running"
			if th.Parked() {
				state = "parked"
			} else if th.Suspended() {
				state = "suspending"
			}
			fmt.Fprintf(output, "%4d  %s (%s)\n", th.Handle(), th.Name(), state)
		}

	case "RESUME":
		// the external intervention that releases threads frozen by
		// guest-crash containment
		if dbg.threads == nil {
			fmt.Fprintln(output, "no kernel attached")
			break
		}
		for _, th := range dbg.threads.Threads() {
			for th.Suspended() {
				th.Resume()
			}
		}

	case "LOG":
		logger.Tail(output, 10)

	case "MEMVIZ":
		dbg.crit.Lock()
		dir := dbg.sessionDir
		dbg.crit.Unlock()

		pth := filepath.Join(dir, "memviz.dot")
		f, err := os.Create(pth)
		if err != nil {
			fmt.Fprintf(output, "%v\n", err)
			break
		}
		dbg.DumpObjectGraph(f)
		f.Close()
		fmt.Fprintf(output, "object graph written to %s\n", pth)

	case "DETACH":
		fmt.Fprintln(output, "detached from prompt")
		return false

	default:
		fmt.Fprintf(output, "unknown command: %s\n", strings.TrimSpace(line))
	}

	return true
}

// StopSession ends the debugging session. Safe to call when no session is
// running.
func (dbg *Debugger) StopSession() {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	if !dbg.attached {
		return
	}
	dbg.attached = false

	if dbg.trm != nil {
		dbg.trm.Close()
		dbg.trm = nil
	}

	if f, err := os.Create(filepath.Join(dbg.sessionDir, "session.log")); err == nil {
		logger.Write(f)
		f.Close()
	}

	logger.Log("debugger", "session stopped")
}

// IsAttached returns true if a debugging session is running.
func (dbg *Debugger) IsAttached() bool {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()
	return dbg.attached
}

// DumpObjectGraph writes a graphviz rendering of the attached processor's
// object graph to the io.Writer.
func (dbg *Debugger) DumpObjectGraph(w io.Writer) {
	dbg.crit.Lock()
	defer dbg.crit.Unlock()

	if dbg.processor == nil {
		return
	}
	memviz.Map(w, dbg.processor)
}

// OnUnhandledException is called for host exceptions that no other handler
// has claimed. Returns true if the debugger has taken ownership of the
// exception.
func (dbg *Debugger) OnUnhandledException(exc *exception.Exception) bool {
	if !dbg.IsAttached() {
		return false
	}

	logger.Logf("debugger", "break: %v", exc)

	dbg.crit.Lock()
	dir := dbg.sessionDir
	dbg.crit.Unlock()

	if f, err := os.Create(filepath.Join(dir, fmt.Sprintf("crash_%08x.dot", exc.PC))); err == nil {
		dbg.DumpObjectGraph(f)
		f.Close()
	}

	if dbg.trm != nil {
		dbg.trm.Printf("unhandled exception at %08x (thread %d)\n", exc.PC, exc.ThreadID)
		_, _ = dbg.trm.Prompt("[break] ")
	}

	return true
}
