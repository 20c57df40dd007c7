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

package test

import "testing"

// expect is the underlying success test. returns true if v is a success
// value for its type.
//
//	bool  -> v == true
//	error -> v == nil
//	nil   -> true
func expect(t *testing.T, v any) bool {
	t.Helper()

	switch v := v.(type) {
	case bool:
		return v
	case error:
		return v == nil
	case nil:
		return true
	default:
		t.Fatalf("unsupported type (%T) for expectation testing", v)
	}

	return false
}

// ExpectSuccess tests value v for a success condition suitable for its type.
func ExpectSuccess(t *testing.T, v any) bool {
	t.Helper()
	if !expect(t, v) {
		t.Errorf("expected success (%T)", v)
		return false
	}
	return true
}

// ExpectFailure tests value v for a failure condition suitable for its type.
func ExpectFailure(t *testing.T, v any) bool {
	t.Helper()
	if expect(t, v) {
		t.Errorf("expected failure (%T)", v)
		return false
	}
	return true
}

// DemandSuccess is the same as ExpectSuccess except that a failed expectation
// is a testing fatality.
func DemandSuccess(t *testing.T, v any) {
	t.Helper()
	if !expect(t, v) {
		t.Fatalf("success demanded (%T)", v)
	}
}

// ExpectEquality tests equality between a value and its expected value.
func ExpectEquality[T comparable](t *testing.T, v T, expected T) bool {
	t.Helper()
	if v != expected {
		t.Errorf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expected)
		return false
	}
	return true
}

// ExpectInequality tests inequality between a value and another value that
// it is expected to differ from.
func ExpectInequality[T comparable](t *testing.T, v T, unexpected T) bool {
	t.Helper()
	if v == unexpected {
		t.Errorf("inequality test of type %T failed: '%v' does equal '%v'", v, v, unexpected)
		return false
	}
	return true
}

// DemandEquality is the same as ExpectEquality except that a failed
// expectation is a testing fatality.
//
// This is particularly useful if the value being tested is used in further
// tests and so must be correct. For example, testing the length of a slice
// before indexing into it.
func DemandEquality[T comparable](t *testing.T, v T, expected T) {
	t.Helper()
	if v != expected {
		t.Fatalf("equality test of type %T failed: '%v' does not equal '%v'", v, v, expected)
	}
}
