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

package kernel

import (
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Handle identifies an object in the object table.
type Handle uint32

// handles start well away from zero so that small integers are never
// mistaken for valid handles.
const firstHandle = Handle(0x100)

// ObjectType distinguishes the kinds of object in the object table.
type ObjectType int

// List of object types used by this core.
const (
	ObjectTypeThread ObjectType = iota
	ObjectTypeModule
)

// Object is anything that can live in the kernel's object table.
type Object interface {
	Handle() Handle
	Name() string
	Type() ObjectType
}

// ObjectTable maps handles to live kernel objects.
type ObjectTable struct {
	crit    sync.Mutex
	next    Handle
	objects map[Handle]Object
}

func newObjectTable() *ObjectTable {
	return &ObjectTable{
		next:    firstHandle,
		objects: make(map[Handle]Object),
	}
}

// Add an object to the table, assigning it a handle.
func (tbl *ObjectTable) Add(obj Object) Handle {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	h := tbl.next
	tbl.next += 4
	tbl.objects[h] = obj
	return h
}

// Remove the object with the given handle from the table.
func (tbl *ObjectTable) Remove(h Handle) {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()
	delete(tbl.objects, h)
}

// Lookup the object with the given handle.
func (tbl *ObjectTable) Lookup(h Handle) (Object, bool) {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()
	obj, ok := tbl.objects[h]
	return obj, ok
}

// ObjectsByType returns all live objects of the given type, in handle
// order.
func (tbl *ObjectTable) ObjectsByType(typ ObjectType) []Object {
	tbl.crit.Lock()
	defer tbl.crit.Unlock()

	objs := make([]Object, 0, len(tbl.objects))
	keys := maps.Keys(tbl.objects)
	slices.Sort(keys)
	for _, h := range keys {
		if tbl.objects[h].Type() == typ {
			objs = append(objs, tbl.objects[h])
		}
	}
	return objs
}

// Threads returns all live guest threads, in handle order.
func (tbl *ObjectTable) Threads() []*Thread {
	objs := tbl.ObjectsByType(ObjectTypeThread)
	threads := make([]*Thread, 0, len(objs))
	for _, obj := range objs {
		threads = append(threads, obj.(*Thread))
	}
	return threads
}
