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

package emulator

import (
	"fmt"
	"strings"

	"github.com/lalalaring/xenia/kernel/xam"
	"github.com/lalalaring/xenia/kernel/xboxkrnl"
	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/vfs"
	"github.com/lalalaring/xenia/xstatus"
)

// the fixed mount points and aliases guest code expects to find its media
// under. part of the compatibility surface; not configurable.
const (
	harddiskMountPath = `\Device\Harddisk0\Partition0`
	cdromMountPath    = `\Device\Cdrom0`
	gameAlias         = "game:"
	dataAlias         = "d:"
	defaultModuleName = "default.xex"
)

// LaunchPath classifies the given host path and launches it. The
// classification is purely syntactic: a path with no extension (or whose
// last dot belongs to a directory name) is a container image; the two
// module extensions are launched as bare modules; anything else is assumed
// to be a disc image.
func (e *Emulator) LaunchPath(path string) xstatus.Status {
	switch hostPathExtension(path) {
	case "":
		return e.LaunchContainerImage(path)
	case ".xex", ".elf":
		return e.LaunchModuleFile(path)
	default:
		return e.LaunchDiscImage(path)
	}
}

// LaunchModuleFile launches a bare executable module. The module's parent
// directory is mounted as the hard-disk partition so that sibling data
// files are visible to the guest.
func (e *Emulator) LaunchModuleFile(path string) xstatus.Status {
	dev := vfs.NewHostPathDevice(harddiskMountPath, hostPathParent(path))
	if status := e.mountLaunchDevice(dev, harddiskMountPath); status.Failed() {
		// developer facing. logged but no dialog
		return status
	}

	return e.CompleteLaunch(path, gameAlias+`\`+hostPathBase(path))
}

// LaunchDiscImage launches a disc image. The image is mounted as the
// CD-ROM device and the default module inside it is executed.
func (e *Emulator) LaunchDiscImage(path string) xstatus.Status {
	dev := vfs.NewDiscImageDevice(cdromMountPath, path)
	if status := e.mountLaunchDevice(dev, cdromMountPath); status.Failed() {
		e.fatalLaunchError(path)
		return status
	}

	return e.CompleteLaunch(path, gameAlias+`\`+defaultModuleName)
}

// LaunchContainerImage launches a container image. As with disc images,
// the container is mounted as the CD-ROM device and the default module
// inside it is executed.
func (e *Emulator) LaunchContainerImage(path string) xstatus.Status {
	dev := vfs.NewContainerDevice(cdromMountPath, path)
	if status := e.mountLaunchDevice(dev, cdromMountPath); status.Failed() {
		e.fatalLaunchError(path)
		return status
	}

	return e.CompleteLaunch(path, gameAlias+`\`+defaultModuleName)
}

// mountLaunchDevice initialises and registers the device and binds the two
// launch aliases to its mount point.
func (e *Emulator) mountLaunchDevice(dev vfs.Device, mountPath string) xstatus.Status {
	if err := dev.Initialize(); err != nil {
		logger.Logf("emulator", "%v", err)
		return xstatus.NoSuchFile
	}
	if err := e.fileSystem.RegisterDevice(dev); err != nil {
		logger.Logf("emulator", "%v", err)
		return xstatus.NoSuchFile
	}

	e.fileSystem.RegisterSymbolicLink(gameAlias, mountPath)
	e.fileSystem.RegisterSymbolicLink(dataAlias, mountPath)

	return xstatus.Success
}

// fatalLaunchError presents the blocking mount-failure notice. Disc and
// container failures are end-user actionable (wrong file, bad rip) so they
// get a dialog where the bare-module path only logs.
func (e *Emulator) fatalLaunchError(path string) {
	e.surface.PostSynchronous(func() {
		e.surface.ShowMessageBox("Launch failed",
			fmt.Sprintf("Could not mount %s.\n\nThe file may be missing or corrupt.", path))
	})
}

// moduleLauncher is the part of the base kernel module the load chain
// needs.
type moduleLauncher interface {
	LaunchModule(path string) int
}

// loaderState is the part of the application-management module the load
// chain needs.
type loaderState interface {
	LoaderData() *xam.LoaderData
}

// CompleteLaunch drives the module load chain, starting with modulePath. A
// launched module may request a follow-on module through the loader state;
// the request field is cleared before every new iteration so a module that
// re-requests itself cannot loop unboundedly by accident.
//
// Only the last link's result decides the returned status. An updater that
// fails and then redirects to a patched title is a successful launch.
func (e *Emulator) CompleteLaunch(path string, modulePath string) xstatus.Status {
	krnl, ok := e.kernelState.Module(xboxkrnl.Name).(moduleLauncher)
	if !ok {
		logger.Log("emulator", "kernel module not loaded")
		return xstatus.Unsuccessful
	}
	loader, ok := e.kernelState.Module(xam.Name).(loaderState)
	if !ok {
		logger.Log("emulator", "application-management module not loaded")
		return xstatus.Unsuccessful
	}

	logger.Logf("emulator", "launching %s", path)

	result := 0
	next := modulePath
	for next != "" {
		logger.Logf("emulator", "loading module %s", next)
		result = krnl.LaunchModule(next)

		data := loader.LoaderData()
		next = data.LaunchPath
		data.LaunchPath = ""
	}

	if result != 0 {
		return xstatus.Unsuccessful
	}
	return xstatus.Success
}

// hostPathExtension is like filepath.Ext() but treats both separator
// styles as separators, so a dot inside a directory name is never
// mistaken for an extension.
func hostPathExtension(path string) string {
	sep := strings.LastIndexAny(path, `/\`)
	dot := strings.LastIndex(path, ".")
	if dot <= sep {
		return ""
	}
	return strings.ToLower(path[dot:])
}

// hostPathBase returns the final element of the path.
func hostPathBase(path string) string {
	return path[strings.LastIndexAny(path, `/\`)+1:]
}

// hostPathParent returns the path with its final element removed.
func hostPathParent(path string) string {
	sep := strings.LastIndexAny(path, `/\`)
	if sep == -1 {
		return "."
	}
	if sep == 0 {
		return path[:1]
	}
	return path[:sep]
}
