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
	"encoding/binary"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/lalalaring/xenia/curated"
)

// geometry and layout of the game disc filesystem.
const (
	discSectorSize = 2048

	// the volume descriptor lives at sector 32
	discVolumeSector = 32

	discMagic = "MICROSOFT*XBOX*MEDIA"

	// directory attribute in a directory entry
	discAttrDirectory = 0x10
)

type discEntry struct {
	sector uint32
	size   uint32
}

// DiscImageDevice wraps a game disc image file. The disc filesystem is a
// binary tree of directory entries; Initialize() walks the whole tree and
// flattens it into a path lookup table.
type DiscImageDevice struct {
	mountPath string
	imagePath string

	img     *os.File
	imgSize int64
	files   map[string]discEntry
}

// NewDiscImageDevice is the preferred method of initialisation for the
// DiscImageDevice type.
func NewDiscImageDevice(mountPath string, imagePath string) *DiscImageDevice {
	return &DiscImageDevice{
		mountPath: mountPath,
		imagePath: imagePath,
		files:     make(map[string]discEntry),
	}
}

// MountPath implements the Device interface.
func (dev *DiscImageDevice) MountPath() string {
	return dev.mountPath
}

// Initialize implements the Device interface. Fails if the image cannot be
// opened or does not carry the disc filesystem magic.
func (dev *DiscImageDevice) Initialize() error {
	img, err := os.Open(dev.imagePath)
	if err != nil {
		return curated.Errorf("discimage: %v", err)
	}

	desc := make([]byte, len(discMagic)+8)
	if _, err := img.ReadAt(desc, discVolumeSector*discSectorSize); err != nil {
		img.Close()
		return curated.Errorf("discimage: %v", "no volume descriptor")
	}
	if string(desc[:len(discMagic)]) != discMagic {
		img.Close()
		return curated.Errorf("discimage: %v", "bad volume magic")
	}

	inf, err := img.Stat()
	if err != nil {
		img.Close()
		return curated.Errorf("discimage: %v", err)
	}

	dev.img = img
	dev.imgSize = inf.Size()

	rootSector := binary.LittleEndian.Uint32(desc[len(discMagic):])
	rootSize := binary.LittleEndian.Uint32(desc[len(discMagic)+4:])

	if err := dev.readDirectory("", rootSector, rootSize); err != nil {
		img.Close()
		dev.img = nil
		return err
	}

	return nil
}

// readDirectory walks a directory's entry tree and records every file it
// finds, recursing into subdirectories.
func (dev *DiscImageDevice) readDirectory(prefix string, sector uint32, size uint32) error {
	// a directory cannot be larger than the image that contains it. a
	// corrupt size field must not dictate the allocation
	if int64(size) > dev.imgSize {
		return curated.Errorf("discimage: %v", "directory larger than image")
	}

	dir := make([]byte, size)
	if _, err := dev.img.ReadAt(dir, int64(sector)*discSectorSize); err != nil {
		return curated.Errorf("discimage: %v", err)
	}

	return dev.walkEntries(prefix, dir, 0, make(map[uint16]bool))
}

// walkEntries visits the directory entry at the given dword offset and its
// left/right subtrees. entry layout: left and right subtree pointers
// (uint16 dword offsets), start sector (uint32), file size (uint32),
// attributes and name length bytes, then the name itself. the visited map
// rejects entry trees that loop back on themselves.
func (dev *DiscImageDevice) walkEntries(prefix string, dir []byte, offset uint16, visited map[uint16]bool) error {
	if visited[offset] {
		return curated.Errorf("discimage: %v", "directory entry cycle")
	}
	visited[offset] = true

	o := int(offset) * 4
	if o+14 > len(dir) {
		return curated.Errorf("discimage: %v", "directory entry out of range")
	}

	left := binary.LittleEndian.Uint16(dir[o:])
	right := binary.LittleEndian.Uint16(dir[o+2:])
	sector := binary.LittleEndian.Uint32(dir[o+4:])
	size := binary.LittleEndian.Uint32(dir[o+8:])
	attr := dir[o+12]
	nameLen := int(dir[o+13])

	if o+14+nameLen > len(dir) {
		return curated.Errorf("discimage: %v", "directory entry out of range")
	}
	name := string(dir[o+14 : o+14+nameLen])

	// visit left subtree. zero and 0xffff both mean no child
	if left != 0 && left != 0xffff {
		if err := dev.walkEntries(prefix, dir, left, visited); err != nil {
			return err
		}
	}

	p := path.Join(prefix, strings.ToLower(name))
	if attr&discAttrDirectory == discAttrDirectory {
		if err := dev.readDirectory(p, sector, size); err != nil {
			return err
		}
	} else {
		dev.files[p] = discEntry{sector: sector, size: size}
	}

	if right != 0 && right != 0xffff {
		if err := dev.walkEntries(prefix, dir, right, visited); err != nil {
			return err
		}
	}

	return nil
}

// Open implements the Device interface.
func (dev *DiscImageDevice) Open(p string) (fs.File, error) {
	ent, ok := dev.files[strings.ToLower(p)]
	if !ok {
		return nil, curated.Errorf("discimage: no such file: %s", p)
	}

	return &discFile{
		name: path.Base(p),
		size: int64(ent.size),
		rdr:  io.NewSectionReader(dev.img, int64(ent.sector)*discSectorSize, int64(ent.size)),
	}, nil
}

// Close the underlying image file.
func (dev *DiscImageDevice) Close() error {
	if dev.img == nil {
		return nil
	}
	return dev.img.Close()
}

// discFile implements the fs.File interface for one file in a disc image.
type discFile struct {
	name string
	size int64
	rdr  *io.SectionReader
}

func (f *discFile) Read(p []byte) (int, error) {
	return f.rdr.Read(p)
}

func (f *discFile) Stat() (fs.FileInfo, error) {
	return discFileInfo{name: f.name, size: f.size}, nil
}

func (f *discFile) Close() error {
	return nil
}

type discFileInfo struct {
	name string
	size int64
}

func (inf discFileInfo) Name() string       { return inf.name }
func (inf discFileInfo) Size() int64        { return inf.size }
func (inf discFileInfo) Mode() fs.FileMode  { return 0 }
func (inf discFileInfo) ModTime() time.Time { return time.Time{} }
func (inf discFileInfo) IsDir() bool        { return false }
func (inf discFileInfo) Sys() any           { return nil }
