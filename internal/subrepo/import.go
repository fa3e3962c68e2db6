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
	"os"
	"path/filepath"
	"sort"

	"github.com/deso/git-subrepo/internal/errs"
	"github.com/deso/git-subrepo/internal/git"
	"github.com/deso/git-subrepo/internal/gitcmd"
	"github.com/deso/git-subrepo/internal/gitexec"
	"github.com/deso/git-subrepo/internal/strutil"
)

// ImportOptions are the inputs to Import beyond the identity and target.
type ImportOptions struct {
	Force bool
	Edit  bool
}

// Import materializes identity's subrepo at target inside the working
// tree and records it with a commit. target may be a branch name known to
// repo's remote or a literal SHA.
func (e *Engine) Import(identity Identity, target string, opts ImportOptions) (err error) {
	defer errs.Errcatch(func(caught *errs.Error) { err = caught })

	e.requireCleanIndex()

	sha := e.mustResolveCommit(identity.Repo, target)
	e.cfg.infof("importing %s at %s", identity, sha)
	if !opts.Force {
		ok, rerr := e.reachableFromRemote(identity.Repo, sha)
		errs.Raiseif(rerr)
		if !ok {
			errs.Raise(&NotInRemote{Repo: identity.Repo, Sha: sha})
		}
	}

	head := e.mustHeadSha()
	currentTree, terr := e.DependencyTree(head)
	errs.Raiseif(terr)
	newTree, terr := e.DependencyTree(sha)
	errs.Raiseif(terr)

	revertPaths := e.mustTopLevel(sha, identity.Prefix)
	if old, ok := currentTree[identity]; ok {
		revertPaths = append(revertPaths, e.mustTopLevel(old.Sha, identity.Prefix)...)
	}
	// A dependency of the new state that is already imported here lives at
	// its own prefix; its current files get reverted too.
	for dep := range newTree {
		if cur, ok := currentTree[dep]; ok {
			revertPaths = append(revertPaths, e.mustTopLevel(cur.Sha, dep.Prefix)...)
		}
	}
	revertPaths = RemoveSubsumed(revertPaths)
	e.cfg.debugf("revert set: %v", revertPaths)

	e.applySubrepoPatch(identity.Prefix, revertPaths, sha)

	e.requireCachedChanges()

	subject := Record{Identity: identity, Sha: sha}
	rest := visibleRecords(newTree)
	msg := CraftImportMessage(subject, rest)
	e.mustCommit(msg, opts.Edit)

	return nil
}

// applySubrepoPatch builds the revert+forward spring for bringing prefix's
// working-tree content to match targetSha's tree, and applies it through
// git apply --index (always via the safe-apply wrapper, since the patch
// set can legitimately be empty).
func (e *Engine) applySubrepoPatch(prefix string, revertPaths []string, targetSha strutil.Sha1) {
	heads := e.revertHeads(revertPaths)
	heads = append(heads, gitcmd.DiffTreeArgv(prefix, git.EmptyTreeOid, targetSha.String()+"^{tree}"))

	_, stderr, err := e.git.SafeApplySpring(heads, gitexec.Bytes(nil), gitexec.Bytes(nil))
	if err != nil {
		if pf, ok := err.(*gitexec.ProcessFailure); ok && len(stderr) > 0 {
			pf.Stderr = stderr
		}
		errs.Raiseif(err)
	}
}

// revertHeads builds one revert patch command per path that actually exists
// in the working tree. The weakest possible presence check is deliberate
// (just "does anything live at this path"); git handles the rest.
func (e *Engine) revertHeads(paths []string) [][]string {
	var heads [][]string
	for _, p := range paths {
		if _, err := os.Lstat(filepath.Join(e.root, p)); err != nil {
			continue
		}
		heads = append(heads, revertPathArgv(p))
	}
	return heads
}

// revertPathArgv builds "diff-index -R --no-prefix <empty-tree> -- <path>",
// a patch that removes path's on-disk state. Diffing against an on-disk
// path means the path already acts as its own prefix, hence --no-prefix
// here regardless of where the subrepo is embedded.
func revertPathArgv(path string) []string {
	return []string{"diff-index", "-R", "--full-index", "--binary", "--no-color",
		"--no-prefix", git.EmptyTreeOid, "--", path}
}

// visibleRecords lists every import visible from the target commit: each
// one becomes a dependency line in the body of the import message being
// crafted, whether the target's own history imported it directly or not.
func visibleRecords(tree Tree) []Record {
	var recs []Record
	for id, entry := range tree {
		recs = append(recs, Record{Identity: id, Sha: entry.Sha})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Identity.String() < recs[j].Identity.String() })
	return recs
}

// -- small internal helpers that raise instead of returning an error, so
// engine-internal code reads straight-line.

func (e *Engine) requireCleanIndex() {
	_, _, err := e.git.Run([]string{"diff-index", "--quiet", "--cached", "HEAD", "--"},
		gitexec.Null(), gitexec.Bytes(nil), gitexec.Bytes(nil))
	if err == nil {
		return
	}
	if pf, ok := err.(*gitexec.ProcessFailure); ok && pf.Status == 1 {
		errs.Raise(&DirtyIndex{})
	}
	errs.Raiseif(err)
}

func (e *Engine) requireCachedChanges() {
	_, _, err := e.git.Run([]string{"diff-index", "--quiet", "--cached", "HEAD", "--"},
		gitexec.Null(), gitexec.Bytes(nil), gitexec.Bytes(nil))
	if err == nil {
		errs.Raise(&NoChanges{})
	}
	if pf, ok := err.(*gitexec.ProcessFailure); !ok || pf.Status != 1 {
		errs.Raiseif(err)
	}
}

func (e *Engine) mustResolveCommit(repo, target string) strutil.Sha1 {
	sha, err := e.ResolveCommit(repo, target)
	errs.Raiseif(err)
	return sha
}

func (e *Engine) mustHeadSha() strutil.Sha1 {
	commit, err := e.repo.ResolveCommit("HEAD^{commit}")
	errs.Raiseif(err)
	sha, err := strutil.Sha1Parse(commit.Id().String())
	errs.Raiseif(err)
	return sha
}

func (e *Engine) mustTopLevel(sha strutil.Sha1, prefix string) []string {
	paths, err := e.topLevelPaths(sha, prefix)
	errs.Raiseif(err)
	return paths
}

func (e *Engine) mustCommit(msg string, edit bool) {
	argv := []string{"commit", "--no-verify", "-F", "-"}
	if edit {
		argv = append(argv, "--edit")
	} else {
		argv = append(argv, "--no-edit")
	}
	_, _, err := e.git.Run(argv, gitexec.Bytes([]byte(msg)), gitexec.Bytes(nil), gitexec.Bytes(nil))
	errs.Raiseif(err)
}
