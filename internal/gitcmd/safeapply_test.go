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

package gitcmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/deso/git-subrepo/internal/gitexec"
)

func xgit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test")
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

func TestSafeApplySpringOnEmptyInputIsNoop(t *testing.T) {
	root := t.TempDir()
	xgit(t, root, "init", "-q")
	if err := os.WriteFile(filepath.Join(root, "a"), []byte("hello\n"), 0644); err != nil {
		t.Fatal(err)
	}
	xgit(t, root, "add", "a")
	xgit(t, root, "commit", "-q", "-m", "initial")

	b := New(root)
	_, stderr, err := b.SafeApplySpring(nil, gitexec.Bytes(nil), gitexec.Bytes(nil))
	if err != nil {
		t.Fatalf("SafeApplySpring failed: %v (stderr: %s)", err, stderr)
	}

	diffOut, _, err := b.Run([]string{"status", "--porcelain"}, gitexec.Null(), gitexec.Bytes(nil), gitexec.Bytes(nil))
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if len(diffOut) != 0 {
		t.Errorf("working tree changed after no-op safe apply: %q", diffOut)
	}
}
