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

// Package clock maintains the guest's view of time. Guest time is derived
// from host time: a tick counter running at the console's fixed tick
// frequency and a system time expressed in 100 nanosecond intervals since
// January 1, 1601 (the guest operating system's epoch).
//
// All guest-visible timing is multiplied by an adjustable scalar, allowing
// guest time to be sped up or slowed down relative to the host.
package clock

import (
	"sync"
	"time"
)

// TickFrequency is the guest tick frequency in Hz. The console uses a 50MHz
// time base.
const TickFrequency = 50000000

// number of 100ns intervals between the guest epoch (1601) and the unix
// epoch (1970).
const unixEpochOffset = 116444736000000000

var crit sync.Mutex
var guestTickFrequency uint64 = TickFrequency
var guestSystemTimeBase uint64
var guestTimeScalar float64 = 1.0
var hostOrigin = time.Now()

// QueryHostSystemTime returns the host's current time in the guest system
// time format (100ns intervals since 1601).
func QueryHostSystemTime() uint64 {
	return uint64(time.Now().UnixNano()/100) + unixEpochOffset
}

// SetGuestTickFrequency sets the frequency of the guest tick counter.
func SetGuestTickFrequency(hz uint64) {
	crit.Lock()
	defer crit.Unlock()
	guestTickFrequency = hz
}

// GuestTickFrequency returns the frequency of the guest tick counter.
func GuestTickFrequency() uint64 {
	crit.Lock()
	defer crit.Unlock()
	return guestTickFrequency
}

// SetGuestSystemTimeBase sets the origin of guest system time. Host time
// elapsed since this call is added (after scaling) to the base to produce
// guest system time.
func SetGuestSystemTimeBase(base uint64) {
	crit.Lock()
	defer crit.Unlock()
	guestSystemTimeBase = base
	hostOrigin = time.Now()
}

// SetGuestTimeScalar sets the scalar applied to all guest-visible timing.
// Values greater than one speed guest time up, values less than one slow it
// down. This can be adjusted dynamically.
func SetGuestTimeScalar(scalar float64) {
	crit.Lock()
	defer crit.Unlock()
	guestTimeScalar = scalar
}

// GuestTimeScalar returns the scalar applied to all guest-visible timing.
func GuestTimeScalar() float64 {
	crit.Lock()
	defer crit.Unlock()
	return guestTimeScalar
}

// guest duration elapsed since the time base was set. must be called with
// the critical section held.
func elapsed() time.Duration {
	return time.Duration(float64(time.Since(hostOrigin)) * guestTimeScalar)
}

// QueryGuestSystemTime returns the guest's current system time (100ns
// intervals since 1601).
func QueryGuestSystemTime() uint64 {
	crit.Lock()
	defer crit.Unlock()
	return guestSystemTimeBase + uint64(elapsed().Nanoseconds()/100)
}

// QueryGuestTickCount returns the guest's current tick count.
func QueryGuestTickCount() uint64 {
	crit.Lock()
	defer crit.Unlock()
	return uint64(elapsed().Seconds() * float64(guestTickFrequency))
}

// ScaleGuestDuration converts a host duration into a guest duration
// according to the current time scalar.
func ScaleGuestDuration(d time.Duration) time.Duration {
	crit.Lock()
	defer crit.Unlock()
	return time.Duration(float64(d) * guestTimeScalar)
}
