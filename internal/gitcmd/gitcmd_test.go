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
	"reflect"
	"testing"
)

func TestArgvPrependsDashCRoot(t *testing.T) {
	b := New("/repo/root")
	got := b.Argv("status", "--short")
	want := []string{"git", "-C", "/repo/root", "status", "--short"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiffFlagsAtRoot(t *testing.T) {
	got := DiffFlags("./")
	want := []string{"--full-index", "--binary", "--no-color", "--no-prefix"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiffFlagsNonRoot(t *testing.T) {
	got := DiffFlags("lib/")
	want := []string{"--full-index", "--binary", "--no-color", "--src-prefix=lib/", "--dst-prefix=lib/"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiffTreeArgv(t *testing.T) {
	got := DiffTreeArgv("lib/", "empty", "target")
	want := []string{"diff-tree", "-p", "--full-index", "--binary", "--no-color",
		"--src-prefix=lib/", "--dst-prefix=lib/", "empty", "target"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestApplyArgv(t *testing.T) {
	got := ApplyArgv("--exclude=x")
	want := []string{"apply", "-p0", "--binary", "--index", "--apply", "--exclude=x"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDummyPatchNamesAreUnique(t *testing.T) {
	a := dummyPatchName()
	b := dummyPatchName()
	if a == b {
		t.Errorf("dummyPatchName returned the same name twice: %q", a)
	}
}

func TestDummyPatchParsesAsOneFile(t *testing.T) {
	p := dummyPatch("x")
	want := "diff --git x x\nnew file mode 100644\nindex 000000..000000\n"
	if p != want {
		t.Errorf("got %q, want %q", p, want)
	}
}
