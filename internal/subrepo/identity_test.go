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

import "testing"

func TestNormalizePrefix(t *testing.T) {
	cases := []struct {
		cwd, root, raw string
		want           string
	}{
		{"/repo", "/repo", ".", "./"},
		{"/repo", "/repo", "./", "./"},
		{"/repo", "/repo", "lib", "lib/"},
		{"/repo", "/repo", "lib/", "lib/"},
		{"/repo/sub", "/repo", "lib", "sub/lib/"},
		{"/repo/sub", "/repo", ".", "sub/"},
		{"/repo/sub", "/repo", "..", "./"},
		{"/elsewhere", "/repo", "/repo/lib", "lib/"},
	}
	for _, c := range cases {
		got, err := NormalizePrefix(c.cwd, c.root, c.raw)
		if err != nil {
			t.Errorf("NormalizePrefix(%q, %q, %q): %v", c.cwd, c.root, c.raw, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizePrefix(%q, %q, %q) = %q, want %q", c.cwd, c.root, c.raw, got, c.want)
		}
	}
}

func TestNormalizePrefixOutsideRepo(t *testing.T) {
	_, err := NormalizePrefix("/repo", "/repo", "../outside")
	if _, ok := err.(*PathOutsideRepo); !ok {
		t.Errorf("got %v, want *PathOutsideRepo", err)
	}

	_, err = NormalizePrefix("/elsewhere", "/repo", "lib")
	if _, ok := err.(*PathOutsideRepo); !ok {
		t.Errorf("got %v, want *PathOutsideRepo", err)
	}
}

func TestIdentityString(t *testing.T) {
	id := Identity{Repo: "lib", Prefix: "lib/"}
	if id.String() != "lib/:lib" {
		t.Errorf("got %q", id.String())
	}
}
