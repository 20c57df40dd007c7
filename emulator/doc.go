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

// Package emulator is the root of the emulation. The Emulator type owns one
// instance of every subsystem (memory, processor, audio, graphics, input,
// filesystem, kernel state) and sequences their construction, the launch of
// the guest program and the teardown at the end of the session.
//
// Construction order matters and teardown is its strict reverse. The
// process-wide exception hook is installed as the very last setup step so a
// fault handler can never observe a partially constructed emulator, and is
// uninstalled as the very last teardown step.
package emulator
