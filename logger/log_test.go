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

package logger_test

import (
	"strings"
	"testing"

	"github.com/lalalaring/xenia/logger"
	"github.com/lalalaring/xenia/test"
)

func TestLog(t *testing.T) {
	logger.Clear()
	logger.Log("test", "this is a test")

	s := &strings.Builder{}
	logger.Write(s)
	test.ExpectEquality(t, s.String(), "test: this is a test\n")
}

func TestRepeats(t *testing.T) {
	logger.Clear()
	logger.Log("test", "this is a test")
	logger.Log("test", "this is a test")
	logger.Log("test", "this is a test")

	// repeated entries are coalesced into one line
	s := &strings.Builder{}
	logger.Write(s)
	test.ExpectEquality(t, s.String(), "test: this is a test (repeat x3)\n")

	// a different entry breaks the repeat
	logger.Log("test", "this is another test")

	s.Reset()
	logger.Write(s)
	test.ExpectEquality(t, s.String(),
		"test: this is a test (repeat x3)\ntest: this is another test\n")
}

func TestTail(t *testing.T) {
	logger.Clear()
	logger.Log("test", "a")
	logger.Log("test", "b")
	logger.Log("test", "c")

	s := &strings.Builder{}
	logger.Tail(s, 2)
	test.ExpectEquality(t, s.String(), "test: b\ntest: c\n")

	// tail longer than the log is capped
	s.Reset()
	logger.Tail(s, 100)
	test.ExpectEquality(t, s.String(), "test: a\ntest: b\ntest: c\n")
}
