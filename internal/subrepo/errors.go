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
	"fmt"

	"github.com/deso/git-subrepo/internal/strutil"
)

// DirtyIndex is raised when an operation that requires a clean index finds
// cached changes present.
type DirtyIndex struct{}

func (e *DirtyIndex) Error() string { return "cached changes present; refusing to proceed" }

// NoChanges is raised when an operation would produce an empty commit.
type NoChanges struct{}

func (e *NoChanges) Error() string { return "no changes to commit" }

// UnknownCommit is raised when a target commit fails to resolve.
type UnknownCommit struct {
	Target string
}

func (e *UnknownCommit) Error() string { return "unknown commit: " + e.Target }

// NotInRemote is raised when the resolved commit is not reachable from the
// named remote's tips and force was not given.
type NotInRemote struct {
	Repo string
	Sha  strutil.Sha1
}

func (e *NotInRemote) Error() string {
	return fmt.Sprintf("%s is not reachable from remote %q", e.Sha, e.Repo)
}

// UnknownSubrepo is raised when an identity named by the caller is not
// part of the dependency tree visible from HEAD.
type UnknownSubrepo struct {
	Identity
}

func (e *UnknownSubrepo) Error() string { return "unknown subrepo: " + e.Identity.String() }

// NotDirectlyImported is raised when delete targets an identity that is
// only present as a transitive dependency.
type NotDirectlyImported struct {
	Identity
}

func (e *NotDirectlyImported) Error() string {
	return e.Identity.String() + " is not directly imported"
}

// StillDependedOn is raised when delete targets an identity some other
// surviving import still depends on.
type StillDependedOn struct {
	Identity
	DependedOnBy Identity
}

func (e *StillDependedOn) Error() string {
	return e.Identity.String() + " is still depended on by " + e.DependedOnBy.String()
}

// ReimportAmbiguous is raised when zero or more than one commit in the
// remote's history matches the subject being reimported.
type ReimportAmbiguous struct {
	Identity
	Candidates []strutil.Sha1
}

func (e *ReimportAmbiguous) Error() string {
	return fmt.Sprintf("reimport of %s is ambiguous: %d candidate commits", e.Identity.String(), len(e.Candidates))
}

// DependencyViolation is the catch-all for tree inconsistencies detected
// while computing the dependency tree.
type DependencyViolation struct {
	Reason string
}

func (e *DependencyViolation) Error() string { return "dependency violation: " + e.Reason }
