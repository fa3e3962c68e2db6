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
	"testing"

	"github.com/deso/git-subrepo/internal/strutil"
)

const (
	shaA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	shaB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func xsha(t *testing.T, s string) strutil.Sha1 {
	t.Helper()
	sha1, err := strutil.Sha1Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return sha1
}

func TestParseRecordLine(t *testing.T) {
	cases := []struct {
		line string
		want Record
		ok   bool
	}{
		{"import subrepo lib/:lib at " + shaA,
			Record{Identity: Identity{Prefix: "lib/", Repo: "lib"}}, true},
		{"import subrepo ./:L1 at " + shaB,
			Record{Identity: Identity{Prefix: "./", Repo: "L1"}}, true},
		{"delete subrepo lib/:lib",
			Record{Delete: true, Identity: Identity{Prefix: "lib/", Repo: "lib"}}, true},
		// SHA must be exactly 40 lowercase hex digits.
		{"import subrepo lib/:lib at abc", Record{}, false},
		{"import subrepo lib/:lib at " + shaA[:39] + "G", Record{}, false},
		// repo may not contain a space.
		{"delete subrepo lib/:li b", Record{}, false},
		{"unrelated subject", Record{}, false},
		{"", Record{}, false},
	}
	for _, c := range cases {
		got, ok := ParseRecordLine(c.line)
		if ok != c.ok {
			t.Errorf("ParseRecordLine(%q) ok = %v, want %v", c.line, ok, c.ok)
			continue
		}
		if !ok {
			continue
		}
		if got.Delete != c.want.Delete || got.Identity != c.want.Identity {
			t.Errorf("ParseRecordLine(%q) = %+v, want %+v", c.line, got, c.want)
		}
		if !got.Delete && got.Sha.IsNull() {
			t.Errorf("ParseRecordLine(%q) lost the sha", c.line)
		}
	}
}

func TestRecordRoundTrip(t *testing.T) {
	lines := []string{
		"import subrepo lib/:lib at " + shaA,
		"delete subrepo ./:L1",
	}
	for _, line := range lines {
		rec, ok := ParseRecordLine(line)
		if !ok {
			t.Fatalf("ParseRecordLine(%q) did not match", line)
		}
		if rec.String() != line {
			t.Errorf("round trip: %q -> %q", line, rec.String())
		}
	}
}

func TestParseMessagePureRecordBlock(t *testing.T) {
	msg := "import subrepo ./:L2 at " + shaB + "\n\n" +
		"import subrepo ./:L1 at " + shaA + "\n"
	records, err := ParseMessage(msg)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Repo != "L2" || records[1].Repo != "L1" {
		t.Errorf("wrong order: %+v", records)
	}
}

func TestParseMessageRecordsInBody(t *testing.T) {
	msg := "Merge feature branch\n\nSome description.\n\n" +
		"import subrepo lib/:lib at " + shaA + "\n"
	records, err := ParseMessage(msg)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 || records[0].Prefix != "lib/" {
		t.Errorf("got %+v", records)
	}
}

func TestParseMessageNoRecords(t *testing.T) {
	records, err := ParseMessage("just an ordinary commit\n\nwith a body\n")
	if err != nil {
		t.Fatal(err)
	}
	if records != nil {
		t.Errorf("got %+v, want nil", records)
	}
}

func TestParseMessageInvalidTail(t *testing.T) {
	msg := "import subrepo lib/:lib at " + shaA + "\n\nnot a record\n"
	_, err := ParseMessage(msg)
	if _, ok := err.(*InvalidImportMessage); !ok {
		t.Errorf("got %v, want *InvalidImportMessage", err)
	}
}

func TestCraftImportMessageSortsBody(t *testing.T) {
	subject := Record{Identity: Identity{Prefix: "./", Repo: "App"}, Sha: xsha(t, shaB)}
	rest := []Record{
		{Identity: Identity{Prefix: "z/", Repo: "zz"}, Sha: xsha(t, shaA)},
		{Identity: Identity{Prefix: "a/", Repo: "aa"}, Sha: xsha(t, shaA)},
	}
	msg := CraftImportMessage(subject, rest)
	want := "import subrepo ./:App at " + shaB + "\n\n" +
		"import subrepo a/:aa at " + shaA + "\n" +
		"import subrepo z/:zz at " + shaA
	if msg != want {
		t.Errorf("got:\n%q\nwant:\n%q", msg, want)
	}

	// a crafted message must always parse back
	records, err := ParseMessage(msg)
	if err != nil || len(records) != 3 {
		t.Errorf("crafted message does not parse: %v, %v", records, err)
	}
}

func TestCraftDeleteMessage(t *testing.T) {
	subject := Record{Delete: true, Identity: Identity{Prefix: "lib/", Repo: "lib"}}
	msg := CraftDeleteMessage(subject, nil)
	if msg != "delete subrepo lib/:lib" {
		t.Errorf("got %q", msg)
	}
}

func TestReconstructMessageKeepsLeadIn(t *testing.T) {
	subject := Record{Identity: Identity{Prefix: "lib/", Repo: "lib"}, Sha: xsha(t, shaB)}
	got := ReconstructMessage("Do the thing\n\ndetails here", subject, nil)
	want := "Do the thing\n\ndetails here\n\n" +
		"import subrepo lib/:lib at " + shaB
	if got != want {
		t.Errorf("got:\n%q\nwant:\n%q", got, want)
	}

	// without a lead-in the block stands alone
	if got := ReconstructMessage("", subject, nil); got != subject.String() {
		t.Errorf("got %q", got)
	}
}
