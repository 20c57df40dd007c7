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
	"archive/zip"
	"io/fs"
	"strings"

	"github.com/lalalaring/xenia/curated"
)

// ContainerDevice wraps a container archive bundling one or more modules
// and data files. Container files carry no file extension; the packaging is
// a standard archive.
type ContainerDevice struct {
	mountPath     string
	containerPath string

	arc *zip.ReadCloser
}

// NewContainerDevice is the preferred method of initialisation for the
// ContainerDevice type.
func NewContainerDevice(mountPath string, containerPath string) *ContainerDevice {
	return &ContainerDevice{
		mountPath:     mountPath,
		containerPath: containerPath,
	}
}

// MountPath implements the Device interface.
func (dev *ContainerDevice) MountPath() string {
	return dev.mountPath
}

// Initialize implements the Device interface. Fails if the container cannot
// be opened or parsed.
func (dev *ContainerDevice) Initialize() error {
	arc, err := zip.OpenReader(dev.containerPath)
	if err != nil {
		return curated.Errorf("container: %v", err)
	}
	dev.arc = arc
	return nil
}

// Open implements the Device interface. Lookup is case-insensitive because
// guest paths are.
func (dev *ContainerDevice) Open(path string) (fs.File, error) {
	f, err := dev.arc.Open(path)
	if err == nil {
		return f, nil
	}

	for _, entry := range dev.arc.File {
		if strings.EqualFold(entry.Name, path) {
			return dev.arc.Open(entry.Name)
		}
	}

	return nil, curated.Errorf("container: no such file: %s", path)
}

// Close the underlying archive.
func (dev *ContainerDevice) Close() error {
	if dev.arc == nil {
		return nil
	}
	return dev.arc.Close()
}
