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
	"github.com/deso/git-subrepo/internal/git"
	"github.com/deso/git-subrepo/internal/strutil"
)

// topLevelPaths returns the top-level entries of the tree named by sha,
// restricted to entries of type tree or blob (never commit, i.e. a
// gitlink/submodule entry is silently left alone rather than guessed at —
// the tool has no opinion on submodules), each prefixed by prefix.
func (e *Engine) topLevelPaths(sha strutil.Sha1, prefix string) ([]string, error) {
	commit, err := e.repo.LookupCommitHex(sha.String())
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range tree.Entries() {
		if entry.Type != git.ObjectTree && entry.Type != git.ObjectBlob {
			continue
		}
		paths = append(paths, prefix+entry.Name)
	}
	return paths, nil
}
