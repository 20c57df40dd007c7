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

// Package sdlaudio outputs guest audio through SDL.
package sdlaudio

import (
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/lalalaring/xenia/apu"
	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/xstatus"
)

// the buffer length is a compromise: too long and audio lags the guest,
// too short and the device underruns. the value is not critical.
const bufferLength = 2048

// System outputs guest audio through an SDL audio device. Create instances
// with NewSystem().
type System struct {
	id   sdl.AudioDeviceID
	spec sdl.AudioSpec
}

// NewSystem is the preferred method of initialisation for the System type.
func NewSystem() *System {
	return &System{}
}

// Setup implements the apu.System interface. Opens the SDL audio device.
func (sys *System) Setup(st *kernel.State) xstatus.Status {
	if err := sdl.InitSubSystem(sdl.INIT_AUDIO); err != nil {
		logger.Logf("sdlaudio", "%v", err)
		return xstatus.Unsuccessful
	}

	spec := &sdl.AudioSpec{
		Freq:     apu.SampleRate,
		Format:   sdl.AUDIO_S16LSB,
		Channels: apu.NumChannels,
		Samples:  bufferLength,
	}

	var err error
	sys.id, err = sdl.OpenAudioDevice("", false, spec, &sys.spec, 0)
	if err != nil {
		logger.Logf("sdlaudio", "%v", err)
		return xstatus.Unsuccessful
	}

	sdl.PauseAudioDevice(sys.id, false)

	logger.Logf("sdlaudio", "%dHz %dch", sys.spec.Freq, sys.spec.Channels)
	return xstatus.Success
}

// Shutdown implements the apu.System interface. Drains and closes the SDL
// audio device.
func (sys *System) Shutdown() {
	if sys.id == 0 {
		return
	}

	sdl.PauseAudioDevice(sys.id, true)
	sdl.CloseAudioDevice(sys.id)
	sys.id = 0
	logger.Log("sdlaudio", "audio system stopped")
}

// SubmitFrames implements the apu.System interface.
func (sys *System) SubmitFrames(samples []int16) error {
	if sys.id == 0 {
		return curated.Errorf("sdlaudio: %v", "device not open")
	}
	if len(samples) == 0 {
		return nil
	}

	b := unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), len(samples)*2)
	if err := sdl.QueueAudio(sys.id, b); err != nil {
		return curated.Errorf("sdlaudio: %v", err)
	}
	return nil
}
