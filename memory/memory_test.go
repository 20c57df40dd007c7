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

package memory_test

import (
	"testing"

	"github.com/lalalaring/xenia/memory"
	"github.com/lalalaring/xenia/test"
)

func TestInitialise(t *testing.T) {
	m := memory.NewMemory()

	// reservation before initialisation fails
	_, err := m.Reserve("early", 0x1000, 0x1000)
	test.ExpectFailure(t, err)

	test.ExpectSuccess(t, m.Initialize())

	// double initialisation fails
	test.ExpectFailure(t, m.Initialize())
}

func TestReserveAndTranslate(t *testing.T) {
	m := memory.NewMemory()
	test.DemandSuccess(t, m.Initialize())

	data, err := m.Reserve("scratch", 0x10000, 0x100)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(data), 0x100)

	// translation inside the region returns the backing storage at the
	// right offset
	data[0x10] = 0xff
	at, err := m.Translate(0x10010)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, at[0], uint8(0xff))

	// translation outside any region fails
	_, err = m.Translate(0x20000)
	test.ExpectFailure(t, err)

	// overlapping reservation fails
	_, err = m.Reserve("overlap", 0x10080, 0x100)
	test.ExpectFailure(t, err)

	// released regions are unmapped
	m.Release("scratch")
	_, err = m.Translate(0x10010)
	test.ExpectFailure(t, err)
}
