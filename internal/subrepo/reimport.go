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
	"os"
	"os/exec"
	"strings"

	"github.com/deso/git-subrepo/internal/errs"
	"github.com/deso/git-subrepo/internal/gitexec"
	"github.com/deso/git-subrepo/internal/strutil"
)

// ReimportOneVerb is the hidden CLI verb cmd/git-subrepo dispatches to
// ReimportOne. It is passed to "git rebase --exec" so the tool re-invokes
// itself once per rebased commit.
const ReimportOneVerb = "--_reimport-one"

// ReimportOptions are the inputs to Reimport beyond identity resolution,
// which happens per-commit during the rebase.
type ReimportOptions struct {
	Branch string // optional: restrict candidate search to this branch of repo
}

// Reimport rewrites history so every import commit's subject references
// its upstream remote's current SHA, via "git rebase -i --keep-empty
// --exec <self> --root", running ReimportOne once per visited commit. Any
// failure aborts the in-progress rebase before propagating — the working
// copy must never be left mid-rebase.
func (e *Engine) Reimport(opts ReimportOptions) (err error) {
	defer errs.Errcatch(func(caught *errs.Error) { err = caught })

	e.requireCleanIndex()

	self, serr := os.Executable()
	errs.Raiseif(serr)

	execArgv := fmt.Sprintf("%s %s", shellQuote(self), ReimportOneVerb)
	if opts.Branch != "" {
		execArgv += " --branch=" + shellQuote(opts.Branch)
	}

	argv := []string{"rebase", "-i", "--keep-empty", "--root", "--exec", execArgv}
	cmd := exec.Command("git", append([]string{"-C", e.root}, argv...)...)
	cmd.Env = append(os.Environ(), "GIT_EDITOR=true", "GIT_SEQUENCE_EDITOR=true")
	out, rerr := cmd.CombinedOutput()
	if rerr != nil {
		e.abortRebase()
		errs.Raise(&gitexec.ProcessFailure{Status: exitStatus(rerr), Command: "git " + strings.Join(argv, " "), Stderr: out})
	}
	return nil
}

func (e *Engine) abortRebase() {
	cmd := exec.Command("git", "-C", e.root, "rebase", "--abort")
	_ = cmd.Run() // best-effort: if there's nothing to abort this fails harmlessly
}

func exitStatus(err error) int {
	if ee, ok := err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	return -1
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ReimportOne is the --exec body run by the rebase for each visited
// commit: it inspects HEAD's message and, if it names an import or delete
// record, refreshes it against the remote's current state.
func (e *Engine) ReimportOne(branch string) (err error) {
	defer errs.Errcatch(func(caught *errs.Error) { err = caught })

	commit, cerr := e.repo.ResolveCommit("HEAD^{commit}")
	errs.Raiseif(cerr)
	msg := commit.Message()

	records, perr := ParseMessage(msg)
	errs.Raiseif(perr)
	if len(records) == 0 {
		return nil // not a record commit, nothing to do
	}
	subject := records[0]

	if subject.Delete {
		e.reimportDelete(msg, subject, records[1:])
		return nil
	}
	e.reimportImport(msg, subject, records[1:], branch)
	return nil
}

// reimportImport resolves the unique remote commit whose subject matches
// old_sha's subject; if it differs from old_sha, reruns the import
// algorithm at the new SHA and amends.
func (e *Engine) reimportImport(origMsg string, subject Record, body []Record, branch string) {
	oldCommit, err := e.repo.LookupCommitHex(subject.Sha.String())
	errs.Raiseif(err)
	wantSubject := firstLine(oldCommit.Message())

	candidates := e.matchingRemoteSubjects(subject.Repo, branch, wantSubject)
	if len(candidates) != 1 {
		errs.Raise(&ReimportAmbiguous{Identity: subject.Identity, Candidates: candidates})
	}
	newSha := candidates[0]
	if newSha == subject.Sha {
		return // already up to date
	}
	e.cfg.infof("reimporting %s: %s -> %s", subject.Identity, subject.Sha, newSha)

	head := e.mustHeadSha()
	currentTree, terr := e.DependencyTree(head)
	errs.Raiseif(terr)
	newTree, terr := e.DependencyTree(newSha)
	errs.Raiseif(terr)

	revertPaths := e.mustTopLevel(newSha, subject.Prefix)
	revertPaths = append(revertPaths, e.mustTopLevel(subject.Sha, subject.Prefix)...)
	for dep := range newTree {
		if cur, ok := currentTree[dep]; ok {
			revertPaths = append(revertPaths, e.mustTopLevel(cur.Sha, dep.Prefix)...)
		}
	}
	revertPaths = RemoveSubsumed(revertPaths)

	e.applySubrepoPatch(subject.Prefix, revertPaths, newSha)

	newSubject := Record{Identity: subject.Identity, Sha: newSha}
	newMsg := ReconstructMessage(messagePrefix(origMsg, subject), newSubject, visibleRecords(newTree))
	e.amendCommit(newMsg)
}

// reimportDelete reruns the delete algorithm against HEAD^'s view of the
// tree (the state the original delete commit was made against) and
// amends with the regenerated message.
func (e *Engine) reimportDelete(origMsg string, subject Record, body []Record) {
	parent, err := e.repo.ResolveCommit("HEAD^{commit}")
	errs.Raiseif(err)
	if parent.ParentCount() == 0 {
		return
	}
	parentCommit, err := e.repo.LookupCommit(parent.ParentId(0))
	errs.Raiseif(err)

	parentSha, perr2 := strutil.Sha1Parse(parentCommit.Id().String())
	errs.Raiseif(perr2)
	tree, terr := e.DependencyTree(parentSha)
	errs.Raiseif(terr)

	entry, ok := tree[subject.Identity]
	if !ok || entry.Transitive {
		return // nothing to regenerate against; leave the commit as-is
	}

	closure := closureOf(tree, subject.Identity)
	var toDelete, toIgnore []Identity
	for id := range closure {
		if id == subject.Identity {
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
		paths = subtractPaths(paths, e.mustTopLevel(tree[id].Sha, id.Prefix))
	}
	paths = RemoveSubsumed(paths)

	e.applyDeletePatch(paths)

	var dependents []Record
	for _, id := range toDelete {
		if id == subject.Identity {
			continue
		}
		dependents = append(dependents, Record{Delete: true, Identity: id})
	}
	newMsg := ReconstructMessage(messagePrefix(origMsg, subject), subject, dependents)
	e.amendCommit(newMsg)
}

func (e *Engine) amendCommit(msg string) {
	_, _, err := e.git.Run([]string{"commit", "--amend", "--no-verify", "-F", "-"},
		gitexec.Bytes([]byte(msg)), gitexec.Bytes(nil), gitexec.Bytes(nil))
	errs.Raiseif(err)
}

// matchingRemoteSubjects returns the SHA of every commit in refs/remotes/
// <repo> (optionally restricted to one branch) whose subject line equals
// wantSubject verbatim.
func (e *Engine) matchingRemoteSubjects(repo, branch, wantSubject string) []strutil.Sha1 {
	ref := "--remotes=" + repo
	if branch != "" {
		ref = "refs/remotes/" + repo + "/" + branch
	}
	out, _, err := e.git.Run(
		[]string{"log", "--format=%H%x09%s", ref},
		gitexec.Null(), gitexec.Bytes(nil), gitexec.Bytes(nil),
	)
	errs.Raiseif(err)

	var matches []strutil.Sha1
	for _, line := range strutil.Splitlines(strutil.String(out), "\n") {
		shaHex, subj, herr := strutil.Headtail(line, "\t")
		if herr != nil || subj != wantSubject {
			continue
		}
		sha, serr := strutil.Sha1Parse(shaHex)
		errs.Raiseif(serr)
		matches = append(matches, sha)
	}
	return matches
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// messagePrefix returns the original message's text up to (not including)
// the line that started subject's record block, used to preserve an
// unrelated subject/lead-in when the import/delete block lives in a
// commit's body rather than being the whole message.
func messagePrefix(msg string, subject Record) string {
	marker := subject.String()
	idx := strings.Index(msg, marker)
	if idx <= 0 {
		return ""
	}
	return strings.TrimRight(msg[:idx], "\n")
}
