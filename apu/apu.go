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

// Package apu defines the audio system at its interface boundary. The
// mixing internals belong to the backend packages (sdlaudio, wavrecorder).
package apu

import (
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/xstatus"
)

// the fixed format of submitted guest audio: interleaved stereo, signed
// 16bit samples at 48kHz.
const (
	SampleRate  = 48000
	NumChannels = 2
)

// System is an emulated audio system. Instances are produced by the audio
// factory supplied to the emulator's Setup(). Running without an audio
// factory (and so without an audio system) is a supported no-audio mode.
type System interface {
	// Setup the audio system. Needs the kernel state.
	Setup(st *kernel.State) xstatus.Status

	// Shutdown gracefully. Called before the system is released so that
	// buffered audio can drain.
	Shutdown()

	// SubmitFrames queues interleaved stereo samples for output.
	SubmitFrames(samples []int16) error
}
