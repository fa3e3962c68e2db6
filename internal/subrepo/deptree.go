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
	"sync"

	"github.com/deso/git-subrepo/internal/gitexec"
	"github.com/deso/git-subrepo/internal/strutil"
)

// Entry is one subrepo visible from a commit: the SHA it was imported at,
// and whether it was pulled in transitively (appeared in an import's body
// rather than as the subject of its own commit).
type Entry struct {
	Identity
	Sha        strutil.Sha1
	Transitive bool
	// Dependencies lists the identities this entry's own import commit
	// pulled in (the body of that commit's message), for Tree/delete's
	// closure walk.
	Dependencies []Identity
}

// Tree is the dependency forest visible from one commit: every subrepo
// identity mapped to the entry describing how it got there.
type Tree map[Identity]Entry

// treeCache memoizes DependencyTree by head SHA: rebuilding it from
// scratch is cheap per-commit but not free, and reimport visits many
// commits in sequence during a single rebase.
type treeCache struct {
	mu    sync.Mutex
	order []strutil.Sha1
	byKey map[strutil.Sha1]Tree
}

const treeCacheSize = 32

func newTreeCache() *treeCache {
	return &treeCache{byKey: make(map[strutil.Sha1]Tree)}
}

func (c *treeCache) get(sha strutil.Sha1) (Tree, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.byKey[sha]
	if ok {
		for i, k := range c.order {
			if k == sha {
				c.order = append(append(c.order[:i:i], c.order[i+1:]...), sha)
				break
			}
		}
	}
	return t, ok
}

func (c *treeCache) put(sha strutil.Sha1, t Tree) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.byKey[sha]; exists {
		return
	}
	if len(c.order) >= treeCacheSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.byKey, oldest)
	}
	c.order = append(c.order, sha)
	c.byKey[sha] = t
}

// DependencyTree walks history reachable from headSha (newest first) and
// accumulates, per subrepo identity, only the first encountered import —
// a delete record suppresses all earlier imports of the same identity.
// Imports appearing in a commit's body are tagged Transitive and recorded
// as Dependencies of the subject import that pulled them in.
//
// The walk uses "git rev-list --extended-regexp --grep=..." to jump
// straight to commits with a message line that looks like a record, then
// re-parses each candidate's full message for body-level transitive imports.
func (e *Engine) DependencyTree(headSha strutil.Sha1) (Tree, error) {
	if t, ok := e.trees.get(headSha); ok {
		return t, nil
	}

	subjects, err := e.candidateSubjects(headSha)
	if err != nil {
		return nil, err
	}

	seen := make(map[Identity]bool)
	tree := make(Tree)
	for _, sha := range subjects {
		msg, err := e.commitMessage(sha)
		if err != nil {
			return nil, err
		}
		records, err := ParseMessage(msg)
		if err != nil || len(records) == 0 {
			continue
		}
		subject := records[0]
		body := records[1:]

		// The subject and its body lines are independent identities:
		// one may already be shadowed by a newer commit while the other
		// is still the first (and thus visible) occurrence.
		if !seen[subject.Identity] {
			seen[subject.Identity] = true
			if !subject.Delete {
				deps := make([]Identity, 0, len(body))
				for _, rec := range body {
					deps = append(deps, rec.Identity)
				}
				tree[subject.Identity] = Entry{Identity: subject.Identity, Sha: subject.Sha, Dependencies: deps}
			}
		}
		for _, rec := range body {
			if seen[rec.Identity] {
				continue
			}
			seen[rec.Identity] = true
			if rec.Delete {
				continue
			}
			tree[rec.Identity] = Entry{Identity: rec.Identity, Sha: rec.Sha, Transitive: true}
		}
	}

	e.trees.put(headSha, tree)
	return tree, nil
}

// candidateSubjects returns, newest first, the SHA of every commit
// reachable from headSha with a message line (subject or body) starting
// with "import subrepo " or "delete subrepo ".
func (e *Engine) candidateSubjects(headSha strutil.Sha1) ([]strutil.Sha1, error) {
	out, _, err := e.git.Run(
		[]string{"rev-list", "--extended-regexp",
			`--grep=^(import|delete) subrepo `, headSha.String()},
		gitexec.Null(), gitexec.Bytes(nil), gitexec.Bytes(nil),
	)
	if err != nil {
		return nil, err
	}

	var shav []strutil.Sha1
	for _, line := range strutil.Splitlines(strutil.String(out), "\n") {
		sha1, err := strutil.Sha1Parse(line)
		if err != nil {
			return nil, err
		}
		shav = append(shav, sha1)
	}
	return shav, nil
}

func (e *Engine) commitMessage(sha strutil.Sha1) (string, error) {
	commit, err := e.repo.LookupCommitHex(sha.String())
	if err != nil {
		return "", err
	}
	return commit.Message(), nil
}
