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
	"github.com/deso/git-subrepo/internal/errs"
	"github.com/deso/git-subrepo/internal/gitexec"
	"github.com/deso/git-subrepo/internal/strutil"
)

// DeleteOptions are the inputs to Delete beyond the identity.
type DeleteOptions struct {
	Edit bool
}

// Delete removes identity's subrepo, and every transitive dependency it
// alone pulled in, from the working tree, and records the removal with a
// commit.
func (e *Engine) Delete(identity Identity, opts DeleteOptions) (err error) {
	defer errs.Errcatch(func(caught *errs.Error) { err = caught })

	e.requireCleanIndex()

	head := e.mustHeadSha()
	tree, terr := e.DependencyTree(head)
	errs.Raiseif(terr)

	entry, ok := tree[identity]
	if !ok {
		errs.Raise(&UnknownSubrepo{Identity: identity})
	}

	// The dependency check comes first: "still depended on" is the more
	// precise diagnostic when an identity is both transitive and needed.
	for otherID, otherEntry := range tree {
		if otherID == identity {
			continue
		}
		if dependsOn(otherEntry, identity) {
			errs.Raise(&StillDependedOn{Identity: identity, DependedOnBy: otherID})
		}
	}
	if entry.Transitive {
		errs.Raise(&NotDirectlyImported{Identity: identity})
	}

	closure := closureOf(tree, identity)

	var toDelete, toIgnore []Identity
	for id := range closure {
		if id == identity {
			toDelete = append(toDelete, id)
			continue
		}
		if dependedOnFromOutside(tree, closure, id) {
			toIgnore = append(toIgnore, id)
		} else {
			toDelete = append(toDelete, id)
		}
	}

	var paths []string
	for _, id := range toDelete {
		paths = append(paths, e.mustTopLevel(tree[id].Sha, id.Prefix)...)
	}
	for _, id := range toIgnore {
		ignorePaths := e.mustTopLevel(tree[id].Sha, id.Prefix)
		paths = subtractPaths(paths, ignorePaths)
	}
	paths = RemoveSubsumed(paths)
	e.cfg.infof("deleting %s", identity)
	e.cfg.debugf("revert set: %v", paths)

	e.applyDeletePatch(paths)
	e.requireCachedChanges()

	subject := Record{Delete: true, Identity: identity}
	var dependents []Record
	for _, id := range toDelete {
		if id == identity {
			continue
		}
		dependents = append(dependents, Record{Delete: true, Identity: id})
	}
	msg := CraftDeleteMessage(subject, dependents)
	e.mustCommit(msg, opts.Edit)

	return nil
}

func dependsOn(e Entry, target Identity) bool {
	for _, dep := range e.Dependencies {
		if dep == target {
			return true
		}
	}
	return false
}

// closureOf walks Dependencies edges starting at root and returns every
// identity reachable, root included.
func closureOf(tree Tree, root Identity) map[Identity]bool {
	closure := map[Identity]bool{root: true}
	queue := []Identity{root}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, dep := range tree[id].Dependencies {
			if closure[dep] {
				continue
			}
			closure[dep] = true
			queue = append(queue, dep)
		}
	}
	return closure
}

// dependedOnFromOutside reports whether some currently-imported identity
// outside closure still lists id as one of its dependencies.
func dependedOnFromOutside(tree Tree, closure map[Identity]bool, id Identity) bool {
	for otherID, otherEntry := range tree {
		if closure[otherID] {
			continue
		}
		if dependsOn(otherEntry, id) {
			return true
		}
	}
	return false
}

func subtractPaths(paths, remove []string) []string {
	drop := strutil.NewStrSet(remove...)
	out := paths[:0:0]
	for _, p := range paths {
		if !drop.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) applyDeletePatch(paths []string) {
	heads := e.revertHeads(paths)
	_, stderr, err := e.git.SafeApplySpring(heads, gitexec.Bytes(nil), gitexec.Bytes(nil))
	if err != nil {
		if pf, ok := err.(*gitexec.ProcessFailure); ok && len(stderr) > 0 {
			pf.Stderr = stderr
		}
		errs.Raiseif(err)
	}
}
