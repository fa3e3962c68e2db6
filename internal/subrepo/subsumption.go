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

package subrepo

import (
	"sort"
	"strings"
)

// RemoveSubsumed drops every path whose parent directory already appears
// in paths, using path-component-aware comparison so "foo/bar" does not
// subsume "foo/barbaz". It is idempotent: RemoveSubsumed(RemoveSubsumed(s))
// == RemoveSubsumed(s).
func RemoveSubsumed(paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	sorted := append([]string(nil), paths...)
	// Order "/" before every other byte so that everything below a path
	// sorts directly after it ("foo", "foo/x", "foo-bar").
	sort.Slice(sorted, func(i, j int) bool {
		return strings.ReplaceAll(sorted[i], "/", "\x00") < strings.ReplaceAll(sorted[j], "/", "\x00")
	})

	out := make([]string, 0, len(sorted))
	subsumer := sorted[0]
	out = append(out, subsumer)
	for _, p := range sorted[1:] {
		if isBelow(p, subsumer) {
			continue
		}
		subsumer = p
		out = append(out, p)
	}
	return out
}

// isBelow reports whether p equals subsumer or lies inside it, using a
// path-separator boundary so "foo/bar" is never considered below "foo/ba".
func isBelow(p, subsumer string) bool {
	if p == subsumer {
		return true
	}
	sep := subsumer
	if !strings.HasSuffix(sep, "/") {
		sep += "/"
	}
	return strings.HasPrefix(p, sep)
}
