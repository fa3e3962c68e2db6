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

package argcomplete

import (
	"sort"
	"testing"
)

func sorted(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func assertCandidates(t *testing.T, arguments *Arguments, words []string, toComplete string, want []string) {
	t.Helper()
	got := sorted(Complete(arguments, words, toComplete))
	w := sorted(want)
	if len(got) != len(w) {
		t.Fatalf("Complete(%v, %q) = %v, want %v", words, toComplete, got, w)
	}
	for i := range got {
		if got[i] != w[i] {
			t.Fatalf("Complete(%v, %q) = %v, want %v", words, toComplete, got, w)
		}
	}
}

func TestSimpleKeywordArguments(t *testing.T) {
	a := NewArguments()
	a.AddKeyword("--foo", Argument{0, 0})
	assertCandidates(t, a, nil, "-", []string{"--foo"})

	a.AddKeyword("-b", Argument{0, 0})
	a.AddKeyword("--bar", Argument{0, 0})
	assertCandidates(t, a, nil, "-", []string{"--foo", "-b", "--bar"})
	assertCandidates(t, a, nil, "--", []string{"--foo", "--bar"})
	assertCandidates(t, a, []string{"-b"}, "", []string{"--foo", "-b", "--bar"})

	// No positional slots are defined, so an unrecognized word ("--var")
	// cannot be absorbed: completion gives up.
	assertCandidates(t, a, []string{"--var"}, "", nil)
}

func TestCompleteAfterPositionals(t *testing.T) {
	a := NewArguments()
	a.AddPositional(Argument{1, 1})
	a.AddPositional(Argument{1, 1})
	a.AddKeyword("--foo", Argument{0, 0})
	a.AddKeyword("-b", Argument{0, 0})
	a.AddKeyword("--bar", Argument{0, 0})

	assertCandidates(t, a, []string{"foobar"}, "", []string{"-b", "--bar", "--foo"})
	assertCandidates(t, a, []string{"foobar", "bazzer"}, "", []string{"-b", "--bar", "--foo"})
	// A third positional-looking word with no slot left to absorb it fails.
	assertCandidates(t, a, []string{"foobar", "bazzer", "booh"}, "", nil)
}

func TestMultipleArgumentsBlocksCompletion(t *testing.T) {
	a := NewArguments()
	a.AddKeyword("--test", Argument{1, 1})
	a.AddKeyword("-f", Argument{0, Unbounded})
	a.AddKeyword("-b", Argument{0, 0})
	a.AddKeyword("--bar", Argument{0, 0})

	// --test opens a keyword-level positional run with Min=1: the next
	// word is owed to it, so keyword completion must not fire.
	assertCandidates(t, a, []string{"--test"}, "", nil)
}

func TestCompletionWithSubparser(t *testing.T) {
	root := NewArguments()
	root.AddKeyword("--foo", Argument{0, 0})

	bar := root.AddSubcommand("bar")
	bar.AddKeyword("-b", Argument{0, 0})
	bar.AddKeyword("--baz", Argument{0, 0})

	foobar := root.AddSubcommand("foobar")
	foobar.AddKeyword("--foobar", Argument{0, 0})
	foobarbaz := foobar.AddSubcommand("foobarbaz")
	foobarbaz.AddKeyword("--test", Argument{0, 0})

	assertCandidates(t, root, nil, "-", []string{"--foo"})
	assertCandidates(t, root, nil, "b", []string{"bar"})
	assertCandidates(t, root, []string{"bar"}, "", []string{"-b", "--baz"})
	assertCandidates(t, root, []string{"foobar"}, "", []string{"--foobar", "foobarbaz"})
	assertCandidates(t, root, []string{"--foo", "foobar"}, "", []string{"--foobar", "foobarbaz"})
	assertCandidates(t, root, []string{"foobar"}, "--f", []string{"--foobar"})
	assertCandidates(t, root, []string{"foobar"}, "f", []string{"foobarbaz"})
	assertCandidates(t, root, []string{"foobar", "--foobar", "foobarbaz"}, "", []string{"--test"})
}

func TestCompleteAnyPositionals(t *testing.T) {
	a := NewArguments()
	a.AddPositional(Argument{0, Unbounded})
	a.AddKeyword("--help", Argument{0, 0})

	assertCandidates(t, a, nil, "-", []string{"--help"})
	assertCandidates(t, a, []string{"pos1"}, "--", []string{"--help"})
	assertCandidates(t, a, []string{"pos1", "pos2"}, "", []string{"--help"})
}

func TestCompleteSinglePositionalMax(t *testing.T) {
	a := NewArguments()
	a.AddPositional(Argument{0, 1})
	a.AddKeyword("--help", Argument{0, 0})

	assertCandidates(t, a, []string{"pos1"}, "--", []string{"--help"})
	assertCandidates(t, a, []string{"pos1", "pos2"}, "", nil)
}

func TestCompleteFixedPositionals(t *testing.T) {
	a := NewArguments()
	a.AddPositional(Argument{3, 3})
	a.AddKeyword("--help", Argument{0, 0})

	assertCandidates(t, a, []string{"pos1", "pos2"}, "", []string{"--help"})
	assertCandidates(t, a, []string{"pos1", "pos2", "pos3"}, "", []string{"--help"})
	assertCandidates(t, a, []string{"pos1", "pos2", "pos3", "pos4"}, "", nil)
}

func TestDecodeNargs(t *testing.T) {
	cases := []struct {
		in   string
		want Argument
	}{
		{"*", Argument{0, Unbounded}},
		{"?", Argument{0, 1}},
		{"+", Argument{1, Unbounded}},
		{"", Argument{0, 0}},
		{"3", Argument{3, 3}},
	}
	for _, c := range cases {
		if got := DecodeNargs(c.in); got != c.want {
			t.Errorf("DecodeNargs(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestEscapeUnescapeIsInvolution(t *testing.T) {
	args := []string{"bar", `\\--`, `\--`, "--", "--fo", "foo"}
	got := UnescapeDoubleDash(EscapeDoubleDash(args, 0))
	if len(got) != len(args) {
		t.Fatalf("round-trip length mismatch: %v vs %v", got, args)
	}
	for i := range args {
		if got[i] != args[i] {
			t.Fatalf("round-trip mismatch at %d: %q vs %q", i, got[i], args[i])
		}
	}
}

func TestEscapeFromIndex(t *testing.T) {
	args := []string{"--", "foo"}
	got := EscapeDoubleDash(args, 1)
	want := []string{"--", "foo"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("EscapeDoubleDash(%v, 1) = %v, want %v", args, got, want)
		}
	}
}

func TestRunProtocol(t *testing.T) {
	root := NewArguments()
	root.AddKeyword("--foo", Argument{0, 0})
	sub := root.AddSubcommand("bar")
	sub.AddKeyword("--baz", Argument{0, 0})

	// "tool --_complete 2 tool bar --"  =>  COMP_WORDS = [tool, bar, --]
	candidates, found := Run(root, 2, "tool", []string{"bar", "--"})
	if !found {
		t.Fatalf("expected candidates, found=false")
	}
	got := sorted(candidates)
	if len(got) != 1 || got[0] != "--baz" {
		t.Fatalf("Run(...) = %v, want [--baz]", got)
	}
}
