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

// Package xstatus defines the status codes returned across the guest kernel
// boundary. Values correspond to the NTSTATUS values the guest operating
// system uses, which is why they are part of the compatibility surface and
// not plain Go errors.
package xstatus

import "fmt"

// Status is the result of an emulator or guest kernel operation.
type Status uint32

// The small fixed vocabulary of status codes used by the emulator core.
const (
	Success        Status = 0x00000000
	Unsuccessful   Status = 0xc0000001
	NotImplemented Status = 0xc0000002
	NoSuchFile     Status = 0xc000000f
)

// Failed returns true if the status indicates anything other than success.
func (s Status) Failed() bool {
	return s != Success
}

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Unsuccessful:
		return "unsuccessful"
	case NotImplemented:
		return "not implemented"
	case NoSuchFile:
		return "no such file"
	}
	return fmt.Sprintf("status %#08x", uint32(s))
}
