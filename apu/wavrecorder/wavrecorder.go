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

// Package wavrecorder is an audio system that records guest audio to disk
// as a WAV file. Note that audio data is buffered in memory in its
// entirety and written to disk on shutdown. It is therefore probably only
// suitable for testing and debugging purposes.
package wavrecorder

import (
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/lalalaring/xenia/apu"
	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/kernel"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/xstatus"
)

// System records submitted guest audio. Create instances with NewSystem().
type System struct {
	filename string

	crit   sync.Mutex
	buffer []int
}

// NewSystem is the preferred method of initialisation for the System type.
func NewSystem(filename string) *System {
	return &System{
		filename: filename,
		buffer:   make([]int, 0),
	}
}

// Setup implements the apu.System interface.
func (sys *System) Setup(st *kernel.State) xstatus.Status {
	return xstatus.Success
}

// SubmitFrames implements the apu.System interface.
func (sys *System) SubmitFrames(samples []int16) error {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	for _, s := range samples {
		sys.buffer = append(sys.buffer, int(s))
	}
	return nil
}

// Shutdown implements the apu.System interface. Writes the buffered audio
// to the WAV file.
func (sys *System) Shutdown() {
	if err := sys.write(); err != nil {
		logger.Logf("wavrecorder", "%v", err)
	}
}

func (sys *System) write() (rerr error) {
	sys.crit.Lock()
	defer sys.crit.Unlock()

	f, err := os.Create(sys.filename)
	if err != nil {
		return curated.Errorf("wavrecorder: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = curated.Errorf("wavrecorder: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, apu.SampleRate, 16, apu.NumChannels, 1)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: apu.NumChannels,
			SampleRate:  apu.SampleRate,
		},
		Data:           sys.buffer,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavrecorder: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavrecorder: %v", err)
	}

	logger.Logf("wavrecorder", "%d samples written to %s", len(sys.buffer), sys.filename)
	return nil
}
