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

/*
Git-subrepo - embed the state of one git repository inside another

This program imports the content of a remote repository at a chosen commit
into a directory (the prefix) of the current repository, as an ordinary
commit on the current branch. No submodule pointers and no out-of-tree
metadata are involved: the import is recorded in the commit message itself,

	import subrepo <prefix>:<repo> at <sha1>

and imports pulled in transitively are listed in the message body the same
way. From these records the program can later reproduce the dependency
tree (tree), track upstream amendments by rewriting import commits in
place (reimport), and remove a subrepo together with the dependencies only
it pulled in (delete).
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"

	"github.com/deso/git-subrepo/internal/argcomplete"
	"github.com/deso/git-subrepo/internal/errs"
	"github.com/deso/git-subrepo/internal/gitexec"
	"github.com/deso/git-subrepo/internal/subrepo"
)

var verbose int

// debugFlags are accepted by every subcommand.
type debugFlags struct {
	commands   bool
	exceptions bool
}

func (d *debugFlags) register(flags *flag.FlagSet) {
	flags.BoolVar(&d.commands, "debug-commands", false, "echo every spawned command")
	flags.BoolVar(&d.exceptions, "debug-exceptions", false, "re-raise errors with full backtrace")
}

func (d *debugFlags) config() *subrepo.Config {
	cfg := subrepo.DefaultConfig()
	cfg.Verbosity = verbose
	cfg.DebugCommands = d.commands
	cfg.DebugExceptions = d.exceptions
	if d.commands {
		gitexec.DebugHook = func(argv []string) {
			fmt.Fprintln(os.Stderr, gitexec.FormatCommand(argv))
		}
	}
	return cfg
}

// xengine opens the engine on the repository containing the current
// directory, raising on failure.
func xengine(cfg *subrepo.Config) *subrepo.Engine {
	root := xrepositoryRoot()
	e, err := subrepo.New(root, cfg)
	errs.Raiseif(err)
	return e
}

// xrepositoryRoot retrieves the top-level directory of the repository
// containing the current directory. This is the one git invocation that
// cannot use "-C <root>" - it computes the argument to use with it.
func xrepositoryRoot() string {
	out, _, err := gitexec.Run("", []string{"git", "rev-parse", "--show-toplevel"},
		gitexec.Null(), gitexec.Bytes(nil), gitexec.Bytes(nil))
	errs.Raiseif(err)
	return strings.TrimRight(string(out), "\n")
}

func xcwd() string {
	cwd, err := os.Getwd()
	errs.Raiseif(err)
	return cwd
}

func xprefix(root, raw string) string {
	prefix, err := subrepo.NormalizePrefix(xcwd(), root, raw)
	errs.Raiseif(err)
	return prefix
}

// -------- git-subrepo import --------

func cmd_import_usage() {
	fmt.Fprint(os.Stderr,
		`git-subrepo import [options] <repo> <prefix> <commit>

Import remote <repo> at <commit> into directory <prefix>, recording the
import as a commit on the current branch.

    --force             skip the check that <commit> belongs to <repo>.
    --edit              open the editor on the generated commit message.
    --debug-commands    echo every spawned command.
    --debug-exceptions  show full backtraces instead of one-line errors.
`)
}

func cmd_import(argv []string) {
	var dbg debugFlags
	force := false
	edit := false
	flags := flag.FlagSet{Usage: cmd_import_usage}
	flags.Init("", flag.ExitOnError)
	flags.BoolVar(&force, "force", false, "skip the remote ownership check")
	flags.BoolVar(&edit, "edit", false, "edit the commit message")
	dbg.register(&flags)
	flags.Parse(argv)

	argv = flags.Args()
	if len(argv) != 3 {
		cmd_import_usage()
		os.Exit(1)
	}
	repo, rawPrefix, commit := argv[0], argv[1], argv[2]

	cfg := dbg.config()
	e := xengine(cfg)
	prefix := xprefix(e.Root(), rawPrefix)

	err := e.Import(subrepo.Identity{Repo: repo, Prefix: prefix}, commit,
		subrepo.ImportOptions{Force: force, Edit: edit})
	errs.Raiseif(err)
}

// -------- git-subrepo reimport --------

func cmd_reimport_usage() {
	fmt.Fprint(os.Stderr,
		`git-subrepo reimport [options]

Rewrite every import commit on the current branch whose upstream commit
was amended, so that it references the amended commit and matches its
content. The whole branch is visited via an interactive rebase; any
failure aborts the rebase, leaving the branch untouched.

    --branch=<b>        only match candidate commits on this remote branch.
    --verbose           increase verbosity.
    --debug-commands    echo every spawned command.
    --debug-exceptions  show full backtraces instead of one-line errors.
`)
}

func cmd_reimport(argv []string) {
	var dbg debugFlags
	branch := ""
	verboseFlag := false
	flags := flag.FlagSet{Usage: cmd_reimport_usage}
	flags.Init("", flag.ExitOnError)
	flags.StringVar(&branch, "branch", "", "restrict candidate search to this branch")
	flags.BoolVar(&verboseFlag, "verbose", false, "increase verbosity")
	dbg.register(&flags)
	flags.Parse(argv)

	if len(flags.Args()) != 0 {
		cmd_reimport_usage()
		os.Exit(1)
	}
	if verboseFlag {
		verbose++
	}

	cfg := dbg.config()
	e := xengine(cfg)
	err := e.Reimport(subrepo.ReimportOptions{Branch: branch})
	errs.Raiseif(err)
}

// cmd_reimport_one is the hidden verb "git rebase --exec" re-invokes this
// program with, once per visited commit.
func cmd_reimport_one(argv []string) {
	var dbg debugFlags
	branch := ""
	flags := flag.FlagSet{}
	flags.Init("", flag.ExitOnError)
	flags.StringVar(&branch, "branch", "", "restrict candidate search to this branch")
	dbg.register(&flags)
	flags.Parse(argv)

	cfg := dbg.config()
	e := xengine(cfg)
	err := e.ReimportOne(branch)
	errs.Raiseif(err)
}

// -------- git-subrepo delete --------

func cmd_delete_usage() {
	fmt.Fprint(os.Stderr,
		`git-subrepo delete [options] <repo> <prefix>

Delete the subrepo imported from <repo> at <prefix>, together with every
dependency only it pulled in, recording the removal as a commit.

    --edit              open the editor on the generated commit message.
    --debug-commands    echo every spawned command.
    --debug-exceptions  show full backtraces instead of one-line errors.
`)
}

func cmd_delete(argv []string) {
	var dbg debugFlags
	edit := false
	flags := flag.FlagSet{Usage: cmd_delete_usage}
	flags.Init("", flag.ExitOnError)
	flags.BoolVar(&edit, "edit", false, "edit the commit message")
	dbg.register(&flags)
	flags.Parse(argv)

	argv = flags.Args()
	if len(argv) != 2 {
		cmd_delete_usage()
		os.Exit(1)
	}
	repo, rawPrefix := argv[0], argv[1]

	cfg := dbg.config()
	e := xengine(cfg)
	prefix := xprefix(e.Root(), rawPrefix)

	err := e.Delete(subrepo.Identity{Repo: repo, Prefix: prefix},
		subrepo.DeleteOptions{Edit: edit})
	errs.Raiseif(err)
}

// -------- git-subrepo tree --------

func cmd_tree_usage() {
	fmt.Fprint(os.Stderr,
		`git-subrepo tree

Show every subrepo imported on the current branch and its direct
dependencies.
`)
}

func cmd_tree(argv []string) {
	flags := flag.FlagSet{Usage: cmd_tree_usage}
	flags.Init("", flag.ExitOnError)
	flags.Parse(argv)
	if len(flags.Args()) != 0 {
		cmd_tree_usage()
		os.Exit(1)
	}

	e := xengine((&debugFlags{}).config())
	out, err := e.Tree()
	errs.Raiseif(err)
	fmt.Print(out)
}

// -------- shell completion --------

// completionModel mirrors the CLI surface above into the Arguments tree
// the completion walk understands. Keep the two in sync by hand: the flag
// package offers no way to enumerate another FlagSet's flags together
// with their arity.
func completionModel() *argcomplete.Arguments {
	one := argcomplete.Argument{Min: 1, Max: 1}
	none := argcomplete.Argument{}

	top := argcomplete.NewArguments()
	top.AddKeyword("--help", none)

	imp := top.AddSubcommand("import")
	imp.AddKeyword("--force", none)
	imp.AddKeyword("--edit", none)
	imp.AddKeyword("--debug-commands", none)
	imp.AddKeyword("--debug-exceptions", none)
	imp.AddKeyword("--help", none)
	imp.AddPositional(one) // repo
	imp.AddPositional(one) // prefix
	imp.AddPositional(one) // commit

	re := top.AddSubcommand("reimport")
	re.AddKeyword("--branch", one)
	re.AddKeyword("--verbose", none)
	re.AddKeyword("--debug-commands", none)
	re.AddKeyword("--debug-exceptions", none)
	re.AddKeyword("--help", none)

	del := top.AddSubcommand("delete")
	del.AddKeyword("--edit", none)
	del.AddKeyword("--debug-commands", none)
	del.AddKeyword("--debug-exceptions", none)
	del.AddKeyword("--help", none)
	del.AddPositional(one) // repo
	del.AddPositional(one) // prefix

	tree := top.AddSubcommand("tree")
	tree.AddKeyword("--help", none)

	return top
}

// cmd_complete implements "--_complete <index> <argv0> <word>...": emit
// one candidate per line, exit 0 when at least one was found, 1 otherwise.
func cmd_complete(argv []string) {
	if len(argv) < 2 {
		os.Exit(1)
	}
	index, err := strconv.Atoi(argv[0])
	if err != nil {
		os.Exit(1)
	}
	argv0 := argv[1]
	words := argv[2:]

	candidates, found := argcomplete.Run(completionModel(), index, argv0, words)
	if !found {
		os.Exit(1)
	}
	sort.Strings(candidates)
	for _, c := range candidates {
		fmt.Println(c)
	}
	os.Exit(0)
}

// -------- dispatch --------

var commands = map[string]func([]string){
	"import":   cmd_import,
	"reimport": cmd_reimport,
	"delete":   cmd_delete,
	"tree":     cmd_tree,
}

func usage() {
	fmt.Fprint(os.Stderr,
		`git-subrepo [options] <command>

    import      import a remote repository's state at a prefix
    reimport    refresh import commits after upstream amendments
    delete      delete an imported subrepo and its sole dependencies
    tree        show imported subrepos and their dependencies

  common options:

    -h --help       this help text.
    -v              increase verbosity.
    -q              decrease verbosity.
`)
}

// exitCode maps a caught error to the process exit status: a failed child
// propagates its own exit status, everything else is an application-level
// refusal.
func exitCode(e *errs.Error) int {
	var pf *gitexec.ProcessFailure
	if errors.As(e, &pf) && pf.Status > 0 {
		return pf.Status
	}
	return 1
}

func main() {
	// The hidden verbs bypass flag parsing entirely: their argv must reach
	// them verbatim ("--_complete" forwards raw shell words, and the rebase
	// re-invocation must stay bit-identical to what Reimport constructed).
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--_complete":
			cmd_complete(os.Args[2:])
			return
		case subrepo.ReimportOneVerb:
			runCaught(cmd_reimport_one, os.Args[2:])
			return
		}
	}

	flag.Usage = usage
	quiet := 0
	flag.Var((*countFlag)(&verbose), "v", "verbosity level")
	flag.Var((*countFlag)(&quiet), "q", "decrease verbosity")
	flag.Parse()
	verbose -= quiet
	argv := flag.Args()

	if len(argv) == 0 {
		usage()
		os.Exit(1)
	}

	cmd := commands[argv[0]]
	if cmd == nil {
		fmt.Fprintf(os.Stderr, "E: unknown command %q\n", argv[0])
		os.Exit(1)
	}

	runCaught(cmd, argv[1:])
}

// runCaught runs cmd with the single errcatch boundary every raise in the
// engine unwinds to: print a one-line diagnostic and exit, or show the
// full stack when --debug-exceptions (or enough -v) asks for it.
func runCaught(cmd func([]string), argv []string) {
	debugExceptions := false
	for _, a := range argv {
		if a == "--debug-exceptions" || a == "-debug-exceptions" {
			debugExceptions = true
		}
	}

	here := errs.MyFuncName()
	defer errs.Errcatch(func(e *errs.Error) {
		if debugExceptions {
			panic(e)
		}
		e = errs.AddCallingContext(here, e)
		fmt.Fprintln(os.Stderr, "E:", e)
		if verbose > 2 {
			fmt.Fprint(os.Stderr, "\n")
			debug.PrintStack()
		}
		os.Exit(exitCode(e))
	})

	cmd(argv)
}
