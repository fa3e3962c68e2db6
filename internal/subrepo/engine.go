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
	"github.com/deso/git-subrepo/internal/gitcmd"
)

// Engine owns the executor and cleanup state bound to a single CLI
// invocation. It borrows, but never owns, the on-disk repository: all
// truth lives in commit messages and git's object store, and the only
// in-memory state the engine keeps is the dependency-tree cache, valid
// for the lifetime of one invocation.
type Engine struct {
	git   *gitcmd.Builder
	repo  *git.Repository
	cfg   *Config
	root  string
	trees *treeCache
}

// New opens root (the repository's top-level directory, as returned by
// "git rev-parse --show-toplevel") and returns an Engine ready to run any
// of the four public operations.
func New(root string, cfg *Config) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	repo, err := git.OpenRepository(root)
	if err != nil {
		return nil, err
	}
	return &Engine{
		git:   gitcmd.New(root),
		repo:  repo,
		cfg:   cfg,
		root:  root,
		trees: newTreeCache(),
	}, nil
}

// Root returns the repository root this engine operates on.
func (e *Engine) Root() string { return e.root }
