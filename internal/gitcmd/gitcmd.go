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

// Package gitcmd wraps internal/gitexec with the "-C <root>" discipline
// every git invocation in this tool follows, plus the flag fragments the
// subrepo engine needs for diffing and applying patches.
package gitcmd

import "github.com/deso/git-subrepo/internal/gitexec"

// Builder issues "git -C <Root> ..." commands against a single repository.
type Builder struct {
	Root string
}

// New returns a Builder rooted at root, which must be an absolute path.
func New(root string) *Builder {
	return &Builder{Root: root}
}

// Argv prepends "git -C <Root>" to args.
func (b *Builder) Argv(args ...string) []string {
	argv := make([]string, 0, len(args)+3)
	argv = append(argv, "git", "-C", b.Root)
	argv = append(argv, args...)
	return argv
}

// Run executes a single git command.
func (b *Builder) Run(args []string, stdin, stdout, stderr gitexec.Stream) ([]byte, []byte, error) {
	return gitexec.Run("", b.Argv(args...), stdin, stdout, stderr)
}

// Pipeline chains several git commands, cmds[0] | cmds[1] | ...
func (b *Builder) Pipeline(cmds [][]string, stdin, stdout, stderr gitexec.Stream) ([]byte, []byte, error) {
	argvs := make([][]string, len(cmds))
	for i, c := range cmds {
		argvs[i] = b.Argv(c...)
	}
	return gitexec.Pipeline("", argvs, stdin, stdout, stderr)
}

// Spring runs head serially, feeding the concatenation of their output into
// the tail pipeline. Every command in head and tail is implicitly rooted
// via Argv, so callers pass plain git subcommand argument lists.
func (b *Builder) Spring(head, tail [][]string, stdout, stderr gitexec.Stream) ([]byte, []byte, error) {
	headArgv := make([][]string, len(head))
	for i, c := range head {
		headArgv[i] = b.Argv(c...)
	}
	tailArgv := make([][]string, len(tail))
	for i, c := range tail {
		tailArgv[i] = b.Argv(c...)
	}
	return gitexec.Spring("", headArgv, tailArgv, stdout, stderr)
}

// DiffFlags returns the flag fragment this tool always uses when diffing
// or generating patches for subrepo content: a full, binary-safe, color-free
// index, with path headers rewritten to prefix (or stripped entirely when
// importing at the repository root).
func DiffFlags(prefix string) []string {
	flags := []string{"--full-index", "--binary", "--no-color"}
	if prefix == "" || prefix == "./" {
		return append(flags, "--no-prefix")
	}
	return append(flags, "--src-prefix="+prefix, "--dst-prefix="+prefix)
}

// DiffTreeArgv builds "diff-tree -p <flags> <from> <to>" for the forward
// patch that carries the working tree from one subrepo snapshot to another.
func DiffTreeArgv(prefix, fromTree, toTree string) []string {
	argv := append([]string{"diff-tree", "-p"}, DiffFlags(prefix)...)
	return append(argv, fromTree, toTree)
}

// ApplyArgv builds "apply -p0 --binary --index --apply <extra...>", the
// tail of every patch spring this tool constructs. -p0 keeps the src/dst
// prefix produced by DiffFlags intact, so the prefix itself routes the
// patch content into the subrepo's directory.
func ApplyArgv(extra ...string) []string {
	argv := []string{"apply", "-p0", "--binary", "--index", "--apply"}
	return append(argv, extra...)
}
