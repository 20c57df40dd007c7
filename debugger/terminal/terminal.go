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

// Package terminal is a thin wrapper for "github.com/pkg/term/termios". it
// provides the debugger with a line-at-a-time prompt over a posix terminal
// that has been placed into cbreak mode.
package terminal

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// Terminal is the posix terminal used by the debugger session. Create
// instances with NewTerminal().
type Terminal struct {
	input  *os.File
	output *os.File
	reader *bufio.Reader

	canAttr    unix.Termios
	cbreakAttr unix.Termios
}

// NewTerminal is the preferred method of initialisation for the Terminal
// type. The input file must be a real terminal or an error is returned.
func NewTerminal(input, output *os.File) (*Terminal, error) {
	trm := &Terminal{
		input:  input,
		output: output,
		reader: bufio.NewReader(input),
	}

	if err := termios.Tcgetattr(input.Fd(), &trm.canAttr); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}

	trm.cbreakAttr = trm.canAttr
	termios.Cfmakecbreak(&trm.cbreakAttr)
	termios.Tcsetattr(input.Fd(), termios.TCIFLUSH, &trm.cbreakAttr)

	return trm, nil
}

// Close restores the terminal to canonical mode.
func (trm *Terminal) Close() {
	termios.Tcsetattr(trm.input.Fd(), termios.TCIFLUSH, &trm.canAttr)
}

// Write implements the io.Writer interface.
func (trm *Terminal) Write(p []byte) (int, error) {
	return trm.output.Write(p)
}

// Printf writes the formatted string to the output file.
func (trm *Terminal) Printf(s string, args ...any) {
	trm.output.WriteString(fmt.Sprintf(s, args...))
	trm.output.Sync()
}

// Prompt writes the prompt string and blocks until a line of input has been
// received.
func (trm *Terminal) Prompt(prompt string) (string, error) {
	trm.Printf("%s", prompt)

	line := make([]byte, 0, 32)
	for {
		c, err := trm.reader.ReadByte()
		if err != nil {
			return "", fmt.Errorf("terminal: %w", err)
		}

		switch c {
		case '\n', '\r':
			trm.Printf("\n")
			return string(line), nil
		case 0x7f, 0x08:
			if len(line) > 0 {
				line = line[:len(line)-1]
				trm.Printf("\b \b")
			}
		default:
			line = append(line, c)
			trm.Printf("%c", c)
		}
	}
}
