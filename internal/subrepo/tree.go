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

	"github.com/deso/git-subrepo/internal/errs"
)

// Tree renders every direct subrepo import visible from HEAD and its
// direct dependencies as a box-drawing tree, one line per subrepo:
// "<prefix>:<repo> at <sha>".
func (e *Engine) Tree() (out string, err error) {
	defer errs.Errcatch(func(caught *errs.Error) { err = caught })

	head := e.mustHeadSha()
	tree, terr := e.DependencyTree(head)
	errs.Raiseif(terr)

	var roots []Identity
	for id, entry := range tree {
		if !entry.Transitive {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].String() < roots[j].String() })

	var b strings.Builder
	for _, id := range roots {
		entry := tree[id]
		b.WriteString(id.Prefix + ":" + id.Repo + " at " + entry.Sha.String() + "\n")

		deps := append([]Identity(nil), entry.Dependencies...)
		sort.Slice(deps, func(i, j int) bool { return deps[i].String() < deps[j].String() })
		for i, dep := range deps {
			last := i == len(deps)-1
			branch := "├── "
			if last {
				branch = "└── "
			}
			depEntry := tree[dep]
			b.WriteString(branch + dep.Prefix + ":" + dep.Repo + " at " + depEntry.Sha.String() + "\n")
		}
	}
	return b.String(), nil
}
