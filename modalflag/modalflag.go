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

// Package modalflag layers sub-modes over the standard flag package. The
// first non-flag argument selects a mode from a registered list (case
// insensitive); an unlisted first argument falls back to the default mode
// and is kept as a regular argument.
package modalflag

import (
	"flag"
	"io"
	"strings"
)

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Modes handles command line arguments with mode selection. The Output
// field should be specified before calling Parse() or help messages will
// not be seen.
type Modes struct {
	Output io.Writer

	flags *flag.FlagSet
	args  []string

	// registered sub-modes. the first entry is the default
	subModes []string

	// the selected sub-mode after Parse() and the number of leading
	// non-flag arguments consumed by the selection
	mode      string
	argOffset int
}

// NewArgs initialises the Modes struct with a set of arguments, usually the
// command line without the program name.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.subModes = md.subModes[:0]
}

// AddSubModes registers the sub-modes for the next Parse(). The first
// sub-mode is the default used when no mode argument is given.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddFloat64 flag for next call to Parse().
func (md *Modes) AddFloat64(name string, value float64, usage string) *float64 {
	return md.flags.Float64(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// Parse the arguments given to NewArgs(), honouring any flags added since.
func (md *Modes) Parse() (ParseResult, error) {
	if md.Output != nil {
		md.flags.SetOutput(md.Output)
	}

	if err := md.flags.Parse(md.args); err != nil {
		if err == flag.ErrHelp {
			if len(md.subModes) > 0 && md.Output != nil {
				md.Output.Write([]byte("available modes: " + strings.Join(md.subModes, ", ") + "\n"))
			}
			return ParseHelp, nil
		}
		return ParseError, err
	}

	if len(md.subModes) > 0 {
		md.mode = md.subModes[0]

		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.subModes {
			if m == arg {
				// consume the mode argument
				md.mode = m
				md.argOffset = 1
				break
			}
		}
	}

	return ParseContinue, nil
}

// Mode returns the sub-mode selected by the previous call to Parse().
func (md *Modes) Mode() string {
	return md.mode
}

// RemainingArgs returns the arguments that are neither flags nor the mode
// selector.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()[md.argOffset:]
}

// GetArg returns the numbered remaining argument, or the empty string.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i + md.argOffset)
}
