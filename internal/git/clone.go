// Copyright (C) 2026  the git-subrepo authors
//
// This program is free software: you can Use, Study, Modify and Redistribute
// it under the terms of the GNU General Public License version 3, or (at your
// option) any later version, as published by the Free Software Foundation.
//
// This program is distributed WITHOUT ANY WARRANTY; without even the implied
// warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//
// See COPYING file for full licensing terms.

package git

import (
	"bytes"
	"strings"
)

// stringsClone and bytesClone give every safe accessor in git.go its own copy
// of data that would otherwise alias libgit2-owned memory.
func stringsClone(s string) string { return strings.Clone(s) }
func bytesClone(b []byte) []byte   { return bytes.Clone(b) }
