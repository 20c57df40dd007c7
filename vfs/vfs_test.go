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

package vfs_test

import (
	"archive/zip"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/lalalaring/xenia/test"
	"github.com/lalalaring/xenia/vfs"
)

func TestHostPathDevice(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "Game.xex"), []byte("XEX2"), 0644)
	test.DemandSuccess(t, err)

	dev := vfs.NewHostPathDevice("\\Device\\Harddisk0\\Partition0", dir)
	test.DemandSuccess(t, dev.Initialize())

	fsys := vfs.NewVirtualFileSystem()
	test.DemandSuccess(t, fsys.RegisterDevice(dev))
	fsys.RegisterSymbolicLink("game:", "\\Device\\Harddisk0\\Partition0")
	fsys.RegisterSymbolicLink("d:", "\\Device\\Harddisk0\\Partition0")

	// open through either alias, the device path, or with guest
	// separators. lookup is case-insensitive
	for _, p := range []string{
		"game:\\Game.xex",
		"d:\\Game.xex",
		"game:\\game.xex",
		"\\Device\\Harddisk0\\Partition0\\Game.xex",
	} {
		f, err := fsys.Open(p)
		test.DemandSuccess(t, err)
		b, err := io.ReadAll(f)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, string(b), "XEX2")
		f.Close()
	}

	// missing file
	_, err = fsys.Open("game:\\missing.xex")
	test.ExpectFailure(t, err)

	// unknown alias
	_, err = fsys.Open("cache:\\Game.xex")
	test.ExpectFailure(t, err)
}

func TestHostPathDeviceBadPath(t *testing.T) {
	dev := vfs.NewHostPathDevice("\\Device\\Harddisk0\\Partition0", "/no/such/directory")
	test.ExpectFailure(t, dev.Initialize())
}

func TestDuplicateMount(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()

	devA := vfs.NewHostPathDevice("\\Device\\Cdrom0", dirA)
	test.DemandSuccess(t, devA.Initialize())
	devB := vfs.NewHostPathDevice("\\Device\\Cdrom0", dirB)
	test.DemandSuccess(t, devB.Initialize())

	fsys := vfs.NewVirtualFileSystem()
	test.ExpectSuccess(t, fsys.RegisterDevice(devA))
	test.ExpectFailure(t, fsys.RegisterDevice(devB))
}

// makeDiscImage synthesises a minimal disc image holding a single file
// named default.xex at the root of the disc filesystem.
func makeDiscImage(t *testing.T, content []byte) string {
	t.Helper()

	const sector = 2048
	const magic = "MICROSOFT*XBOX*MEDIA"

	img := make([]byte, 35*sector+len(content))

	// volume descriptor at sector 32
	desc := img[32*sector:]
	copy(desc, magic)
	binary.LittleEndian.PutUint32(desc[len(magic):], 33)     // root sector
	binary.LittleEndian.PutUint32(desc[len(magic)+4:], 2048) // root size

	// root directory at sector 33 with one entry
	name := "default.xex"
	ent := img[33*sector:]
	binary.LittleEndian.PutUint16(ent[0:], 0)  // no left subtree
	binary.LittleEndian.PutUint16(ent[2:], 0)  // no right subtree
	binary.LittleEndian.PutUint32(ent[4:], 34) // file at sector 34
	binary.LittleEndian.PutUint32(ent[8:], uint32(len(content)))
	ent[12] = 0x00 // not a directory
	ent[13] = byte(len(name))
	copy(ent[14:], name)

	copy(img[34*sector:], content)

	pth := filepath.Join(t.TempDir(), "game.iso")
	err := os.WriteFile(pth, img, 0644)
	test.DemandSuccess(t, err)
	return pth
}

func TestDiscImageDevice(t *testing.T) {
	pth := makeDiscImage(t, []byte("XEX2 module data"))

	dev := vfs.NewDiscImageDevice("\\Device\\Cdrom0", pth)
	test.DemandSuccess(t, dev.Initialize())
	defer dev.Close()

	fsys := vfs.NewVirtualFileSystem()
	test.DemandSuccess(t, fsys.RegisterDevice(dev))
	fsys.RegisterSymbolicLink("game:", "\\Device\\Cdrom0")

	f, err := fsys.Open("game:\\default.xex")
	test.DemandSuccess(t, err)
	defer f.Close()

	b, err := io.ReadAll(f)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "XEX2 module data")

	inf, err := f.Stat()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, inf.Name(), "default.xex")
	test.ExpectEquality(t, inf.Size(), int64(16))
}

func TestDiscImageDeviceCorrupt(t *testing.T) {
	// an image without the volume magic fails to initialise
	pth := filepath.Join(t.TempDir(), "corrupt.iso")
	err := os.WriteFile(pth, make([]byte, 0x20000), 0644)
	test.DemandSuccess(t, err)

	dev := vfs.NewDiscImageDevice("\\Device\\Cdrom0", pth)
	test.ExpectFailure(t, dev.Initialize())

	// as does a missing image
	dev = vfs.NewDiscImageDevice("\\Device\\Cdrom0", "/no/such/image.iso")
	test.ExpectFailure(t, dev.Initialize())
}

func TestDiscImageDeviceEntryCycle(t *testing.T) {
	const sector = 2048
	const magic = "MICROSOFT*XBOX*MEDIA"

	img := make([]byte, 34*sector)

	desc := img[32*sector:]
	copy(desc, magic)
	binary.LittleEndian.PutUint32(desc[len(magic):], 33)     // root sector
	binary.LittleEndian.PutUint32(desc[len(magic)+4:], 2048) // root size

	// the root entry leads to entries a and b, whose left pointers refer
	// to each other. dword offsets: root at 0, a at 8, b at 16
	ent := img[33*sector:]
	binary.LittleEndian.PutUint16(ent[0:], 8) // root.left -> a
	ent[13] = 1
	copy(ent[14:], "r")

	binary.LittleEndian.PutUint16(ent[32:], 16) // a.left -> b
	ent[45] = 1
	copy(ent[46:], "a")

	binary.LittleEndian.PutUint16(ent[64:], 8) // b.left -> a
	ent[77] = 1
	copy(ent[78:], "b")

	pth := filepath.Join(t.TempDir(), "cyclic.iso")
	err := os.WriteFile(pth, img, 0644)
	test.DemandSuccess(t, err)

	dev := vfs.NewDiscImageDevice("\\Device\\Cdrom0", pth)
	test.ExpectFailure(t, dev.Initialize())
}

func TestDiscImageDeviceOversizedRoot(t *testing.T) {
	const sector = 2048
	const magic = "MICROSOFT*XBOX*MEDIA"

	img := make([]byte, 34*sector)

	desc := img[32*sector:]
	copy(desc, magic)
	binary.LittleEndian.PutUint32(desc[len(magic):], 33)
	binary.LittleEndian.PutUint32(desc[len(magic)+4:], 0xfffff000) // root size

	pth := filepath.Join(t.TempDir(), "oversized.iso")
	err := os.WriteFile(pth, img, 0644)
	test.DemandSuccess(t, err)

	dev := vfs.NewDiscImageDevice("\\Device\\Cdrom0", pth)
	test.ExpectFailure(t, dev.Initialize())
}

func TestContainerDevice(t *testing.T) {
	// containers carry no file extension
	pth := filepath.Join(t.TempDir(), "MyGame")

	f, err := os.Create(pth)
	test.DemandSuccess(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("default.xex")
	test.DemandSuccess(t, err)
	_, err = w.Write([]byte("XEX2 container module"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, zw.Close())
	test.DemandSuccess(t, f.Close())

	dev := vfs.NewContainerDevice("\\Device\\Cdrom0", pth)
	test.DemandSuccess(t, dev.Initialize())
	defer dev.Close()

	fsys := vfs.NewVirtualFileSystem()
	test.DemandSuccess(t, fsys.RegisterDevice(dev))
	fsys.RegisterSymbolicLink("game:", "\\Device\\Cdrom0")

	r, err := fsys.Open("game:\\DEFAULT.XEX")
	test.DemandSuccess(t, err)
	defer r.Close()

	b, err := io.ReadAll(r)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, string(b), "XEX2 container module")
}

func TestContainerDeviceCorrupt(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "NotAContainer")
	err := os.WriteFile(pth, []byte("junk"), 0644)
	test.DemandSuccess(t, err)

	dev := vfs.NewContainerDevice("\\Device\\Cdrom0", pth)
	test.ExpectFailure(t, dev.Initialize())
}
