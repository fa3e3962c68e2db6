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

package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func xgit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@test",
		"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@test")
	out, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
	return string(out)
}

func TestResolveCommitAndTreeEntries(t *testing.T) {
	dir := t.TempDir()
	xgit(t, dir, "init", "-q")
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("hi\n"), 0644); err != nil {
		t.Fatal(err)
	}
	xgit(t, dir, "add", "a.txt")
	xgit(t, dir, "commit", "-q", "-m", "initial")
	sha := xgit(t, dir, "rev-parse", "HEAD")
	sha = sha[:len(sha)-1] // trim newline

	repo, err := OpenRepository(dir)
	if err != nil {
		t.Fatalf("OpenRepository: %v", err)
	}

	commit, err := repo.ResolveCommit(sha + "^{commit}")
	if err != nil {
		t.Fatalf("ResolveCommit: %v", err)
	}
	if commit.Id().String() != sha {
		t.Errorf("resolved id = %s, want %s", commit.Id().String(), sha)
	}

	tree, err := commit.Tree()
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	entries := tree.Entries()
	if len(entries) != 1 || entries[0].Name != "a.txt" {
		t.Errorf("Entries() = %v, want one entry named a.txt", entries)
	}
}
