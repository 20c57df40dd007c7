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

// Package prefs loads and saves the emulator's preferences. Preferences are
// stored on disk as a TOML file in the resource path (see the paths
// package).
package prefs

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/paths"
)

// the name of the preferences file in the resource path.
const prefsFile = "xenia.toml"

// Preferences for the emulator. Zero values are usable defaults except for
// TimeScalar, so new instances should be created with NewPreferences().
type Preferences struct {
	// scalar used to speed or slow guest time (1x, 2x, 1/2x, etc)
	TimeScalar float64 `toml:"time_scalar"`

	// whether to start the emulator's own debugger session during setup
	Debug bool `toml:"debug"`

	// audio backend selection. empty or "sdl" for SDL audio, "wav" to
	// record guest audio to the file named by WavFile, "none" to run
	// without audio
	Audio string `toml:"audio"`

	// target file for the "wav" audio backend
	WavFile string `toml:"wav_file"`
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() *Preferences {
	return &Preferences{
		TimeScalar: 1.0,
		WavFile:    "xenia.wav",
	}
}

// Load preferences from the preferences file in the resource path. A missing
// file is not an error; the returned Preferences are the defaults.
func Load() (*Preferences, error) {
	p := NewPreferences()

	pth := paths.ResourcePath(prefsFile)
	if _, err := os.Stat(pth); err != nil {
		return p, nil
	}

	if _, err := toml.DecodeFile(pth, p); err != nil {
		return nil, curated.Errorf("prefs: %v", err)
	}

	if p.TimeScalar <= 0.0 {
		logger.Logf("prefs", "invalid time_scalar (%f), using 1.0", p.TimeScalar)
		p.TimeScalar = 1.0
	}

	return p, nil
}

// Save preferences to the preferences file in the resource path.
func (p *Preferences) Save() error {
	f, err := os.Create(paths.ResourcePath(prefsFile))
	if err != nil {
		return curated.Errorf("prefs: %v", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(p); err != nil {
		return curated.Errorf("prefs: %v", err)
	}

	return nil
}
