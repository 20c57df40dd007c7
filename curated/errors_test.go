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

package curated_test

import (
	"testing"

	"github.com/lalalaring/xenia/curated"
	"github.com/lalalaring/xenia/test"
)

func TestMatching(t *testing.T) {
	e := curated.Errorf("vfs: %v", "no such device")

	test.ExpectSuccess(t, curated.IsAny(e))
	test.ExpectSuccess(t, curated.Is(e, "vfs: %v"))
	test.ExpectFailure(t, curated.Is(e, "kernel: %v"))

	// wrap the error. the outer pattern matches with Is() but the inner
	// pattern only matches with Has()
	f := curated.Errorf("launch: %v", e)
	test.ExpectSuccess(t, curated.Is(f, "launch: %v"))
	test.ExpectFailure(t, curated.Is(f, "vfs: %v"))
	test.ExpectSuccess(t, curated.Has(f, "vfs: %v"))
	test.ExpectSuccess(t, curated.Has(f, "launch: %v"))
}

func TestNormalisation(t *testing.T) {
	// adjacent duplicate message parts are removed
	e := curated.Errorf("vfs: %v", curated.Errorf("vfs: %v", "file not found"))
	test.ExpectEquality(t, e.Error(), "vfs: file not found")

	// non-duplicate parts are left alone
	f := curated.Errorf("launch: %v", curated.Errorf("vfs: %v", "file not found"))
	test.ExpectEquality(t, f.Error(), "launch: vfs: file not found")
}

func TestUncurated(t *testing.T) {
	test.ExpectFailure(t, curated.IsAny(nil))
	test.ExpectFailure(t, curated.Is(nil, "vfs: %v"))
	test.ExpectFailure(t, curated.Has(nil, "vfs: %v"))
}
