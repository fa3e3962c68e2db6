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

import "github.com/deso/git-subrepo/internal/strutil"

// ResolveCommit resolves target within repo's remote namespace: try
// "refs/remotes/<repo>/<target>^{commit}" first; if that fails, try
// "<target>^{commit}" directly and accept the result only if git's
// resolution echoes back the literal string the caller gave us — guarding
// against accidentally resolving some unrelated symbolic ref when target
// wasn't actually a SHA.
func (e *Engine) ResolveCommit(repo, target string) (sha strutil.Sha1, err error) {
	remoteSpec := "refs/remotes/" + repo + "/" + target + "^{commit}"
	if commit, cerr := e.repo.ResolveCommit(remoteSpec); cerr == nil {
		return strutil.Sha1Parse(commit.Id().String())
	}

	commit, cerr := e.repo.ResolveCommit(target + "^{commit}")
	if cerr != nil {
		return strutil.Sha1{}, &UnknownCommit{Target: target}
	}
	if commit.Id().String() != target {
		return strutil.Sha1{}, &UnknownCommit{Target: target}
	}
	return strutil.Sha1Parse(commit.Id().String())
}
