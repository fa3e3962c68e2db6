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

// Package subrepo implements the subrepo engine: resolving commits,
// detecting subrepo membership, producing and applying the patches that
// carry a working tree from one subrepo snapshot to another, scanning
// commit history for import/delete markers, crafting commit messages, and
// orchestrating reimports.
package subrepo

import (
	"path/filepath"
	"strings"
)

// Identity names one embedded subrepo: the remote it tracks and the path
// prefix it's embedded at. Two subrepos with the same Repo at different
// Prefix are distinct; the reverse is true too.
type Identity struct {
	Repo   string
	Prefix string
}

func (id Identity) String() string {
	return id.Prefix + ":" + id.Repo
}

// NormalizePrefix resolves a user-supplied prefix the way every operation
// needs: absolute via cwd, relative to root, then "/"-suffixed — or
// reduced to "./" when it names the repository root itself. This lets any
// of the four operations be invoked from any subdirectory of the working
// tree without changing what they mean.
func NormalizePrefix(cwd, root, raw string) (string, error) {
	abs := raw
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, raw)
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return "./", nil
	}
	if strings.HasPrefix(rel, "..") {
		return "", &PathOutsideRepo{Path: raw}
	}
	return rel + "/", nil
}

// PathOutsideRepo is raised when a user-supplied prefix resolves outside
// the repository root.
type PathOutsideRepo struct {
	Path string
}

func (e *PathOutsideRepo) Error() string {
	return "path outside repository: " + e.Path
}
