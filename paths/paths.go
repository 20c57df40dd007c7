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

// Package paths decides where the emulator's resources (preferences files,
// logs, recordings) live on the host.
package paths

import (
	"os"
	"path"
)

// the base path for all resources. note that we don't use this value
// directly except in the getBasePath() function. that function should be
// used instead.
const baseResourcePath = ".xenia"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with operating system specific details.
func ResourcePath(resource ...string) string {
	p := make([]string, 0, len(resource)+1)
	p = append(p, getBasePath())
	p = append(p, resource...)
	return path.Join(p...)
}

// getBasePath() returns baseResourcePath with the user's config directory
// prepended, unless the unadorned baseResourcePath can be found in the
// current directory. a resource path in the current directory is a
// development convenience and takes precedence.
//
// note that we're not checking for the existence of the resource requested
// by the caller, only of the base path.
func getBasePath() string {
	if _, err := os.Stat(baseResourcePath); err == nil {
		return baseResourcePath
	}

	cfg, err := os.UserConfigDir()
	if err != nil {
		return baseResourcePath
	}
	return path.Join(cfg, baseResourcePath[1:])
}
