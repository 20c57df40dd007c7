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

package vfs

import (
	"io/fs"
	"os"
	"strings"

	"github.com/lalalaring/xenia/curated"
)

// HostPathDevice exposes a host directory to the guest. Used when launching
// a bare executable module: the module's parent directory is mounted so the
// module and any sibling data files are visible.
type HostPathDevice struct {
	mountPath string
	localPath string
	fsys      fs.FS
}

// NewHostPathDevice is the preferred method of initialisation for the
// HostPathDevice type.
func NewHostPathDevice(mountPath string, localPath string) *HostPathDevice {
	return &HostPathDevice{
		mountPath: mountPath,
		localPath: localPath,
	}
}

// MountPath implements the Device interface.
func (dev *HostPathDevice) MountPath() string {
	return dev.mountPath
}

// Initialize implements the Device interface. Fails if the host path cannot
// be scanned.
func (dev *HostPathDevice) Initialize() error {
	inf, err := os.Stat(dev.localPath)
	if err != nil {
		return curated.Errorf("hostpath: %v", err)
	}
	if !inf.IsDir() {
		return curated.Errorf("hostpath: not a directory: %s", dev.localPath)
	}

	dev.fsys = os.DirFS(dev.localPath)
	return nil
}

// Open implements the Device interface. Lookup is case-insensitive because
// guest paths are.
func (dev *HostPathDevice) Open(path string) (fs.File, error) {
	f, err := dev.fsys.Open(path)
	if err == nil {
		return f, nil
	}

	// retry with a case-insensitive scan of the parent directory
	entries, derr := fs.ReadDir(dev.fsys, ".")
	if derr != nil {
		return nil, curated.Errorf("hostpath: %v", err)
	}
	for _, e := range entries {
		if strings.EqualFold(e.Name(), path) {
			return dev.fsys.Open(e.Name())
		}
	}

	return nil, curated.Errorf("hostpath: %v", err)
}
