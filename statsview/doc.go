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

// Package statsview provides a locally hosted HTTP server offering runtime
// statistics for the emulator process. The server itself is only compiled
// in when the +statsview build constraint is present; without the
// constraint, Launch() is a no-op and Available() returns false.
//
// With the constraint, after launch, graphical statistics are viewable at:
//
//	localhost:12360/debug/statsview
//
// And standard Go pprof statistics at:
//
//	localhost:12360/debug/pprof/
package statsview
