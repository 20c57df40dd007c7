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

// Package vfs is the device-mountable namespace the guest kernel sees.
// Devices are registered under guest device paths (eg.
// \Device\Harddisk0\Partition0) and symbolic links (eg. game:) alias those
// paths. Devices and links are write-once per run: they are registered
// during launch resolution and never mutated concurrently with lookups
// thereafter.
package vfs

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/logger"
)

// Device is a filesystem device bound to one mount path. The per-device
// I/O implementations live in this package but the virtual filesystem only
// sees this interface.
type Device interface {
	// the guest device path the device is mounted under
	MountPath() string

	// scan or parse the backing store. must be called before the device is
	// registered
	Initialize() error

	// open the file at the given path, relative to the mount path and
	// using forward slash separators
	Open(path string) (fs.File, error)
}

// VirtualFileSystem is the guest's mountable namespace.
type VirtualFileSystem struct {
	crit     sync.Mutex
	devices  []Device
	symlinks map[string]string
}

// NewVirtualFileSystem is the preferred method of initialisation for the
// VirtualFileSystem type. It cannot fail.
func NewVirtualFileSystem() *VirtualFileSystem {
	return &VirtualFileSystem{
		devices:  make([]Device, 0, 2),
		symlinks: make(map[string]string),
	}
}

// RegisterDevice mounts an initialised device into the namespace. Returns
// an error if a device is already mounted at the same path.
func (vfs *VirtualFileSystem) RegisterDevice(dev Device) error {
	vfs.crit.Lock()
	defer vfs.crit.Unlock()

	for _, d := range vfs.devices {
		if strings.EqualFold(d.MountPath(), dev.MountPath()) {
			return curated.Errorf("vfs: device already mounted at %s", dev.MountPath())
		}
	}

	vfs.devices = append(vfs.devices, dev)
	logger.Logf("vfs", "mounted %s", dev.MountPath())
	return nil
}

// RegisterSymbolicLink binds an alias (eg. game:) to a guest device path.
// A later registration for the same alias replaces the earlier one.
func (vfs *VirtualFileSystem) RegisterSymbolicLink(name string, target string) {
	vfs.crit.Lock()
	defer vfs.crit.Unlock()
	vfs.symlinks[strings.ToLower(name)] = target
	logger.Logf("vfs", "%s -> %s", name, target)
}

// ResolvePath expands any symbolic link at the head of the path and splits
// the result into the mounted device and the device-relative path.
func (vfs *VirtualFileSystem) ResolvePath(path string) (Device, string, error) {
	vfs.crit.Lock()
	defer vfs.crit.Unlock()

	path = strings.ReplaceAll(path, "/", "\\")

	// expand symbolic link. an alias ends at the first colon
	if i := strings.Index(path, ":"); i != -1 {
		alias := strings.ToLower(path[:i+1])
		target, ok := vfs.symlinks[alias]
		if !ok {
			return nil, "", curated.Errorf("vfs: no such symbolic link: %s", alias)
		}
		path = target + path[i+1:]
	}

	for _, d := range vfs.devices {
		mount := d.MountPath()
		if len(path) >= len(mount) && strings.EqualFold(path[:len(mount)], mount) {
			rel := strings.TrimLeft(path[len(mount):], "\\")
			return d, strings.ReplaceAll(rel, "\\", "/"), nil
		}
	}

	return nil, "", curated.Errorf("vfs: no device for path: %s", path)
}

// Open the file at the given guest path. The path may begin with a symbolic
// link alias or a guest device path.
func (vfs *VirtualFileSystem) Open(path string) (fs.File, error) {
	dev, rel, err := vfs.ResolvePath(path)
	if err != nil {
		return nil, err
	}

	f, err := dev.Open(rel)
	if err != nil {
		return nil, curated.Errorf("vfs: %v", err)
	}
	return f, nil
}
