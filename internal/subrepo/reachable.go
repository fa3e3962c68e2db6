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
	"strconv"
	"strings"

	"github.com/deso/git-subrepo/internal/gitexec"
	"github.com/deso/git-subrepo/internal/strutil"
)

// reachableFromRemote decides whether sha belongs to remote repo by
// *counting* reachable commits with and without sha excluded, rather than
// materializing the rev-list: if the count drops when sha is excluded,
// sha (and everything only reachable through it) was part of the set, so
// it belongs to the remote. This avoids either reading a potentially huge
// rev-list into memory or depending on a second process (grep) just to
// test for membership.
func (e *Engine) reachableFromRemote(repo string, sha strutil.Sha1) (bool, error) {
	withSha, err := e.revListCount("--remotes=" + repo)
	if err != nil {
		return false, err
	}
	withoutSha, err := e.revListCount("--remotes="+repo, "^"+sha.String())
	if err != nil {
		return false, err
	}
	return withoutSha < withSha, nil
}

func (e *Engine) revListCount(args ...string) (int, error) {
	argv := append([]string{"rev-list", "--count"}, args...)
	out, _, err := e.git.Run(argv, gitexec.Null(), gitexec.Bytes(nil), gitexec.Bytes(nil))
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(strutil.String(out)))
}
