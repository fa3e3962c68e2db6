// Copyright (C) 2014-2015  Daniel Mueller <deso@posteo.net>
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

// Package gitexec spawns and pipes together the external commands the
// subrepo engine drives (principally git). A single command is a trivial
// one-stage Pipeline; a Spring serially runs a set of "head" commands whose
// concatenated output feeds a trailing Pipeline, without ever materializing
// the intermediate result in memory in one piece.
package gitexec

import (
	"os"
	"os/exec"
	"syscall"

	"github.com/deso/git-subrepo/internal/cleanup"
)

// running is an in-flight pipeline: the spawned processes plus the poll
// endpoints still shuttling data between the parent and them.
type running struct {
	dir      string
	cmds     []*exec.Cmd
	commands [][]string
	later    *cleanup.Scope
	active   []*endpoint
	stdoutEP *endpoint
	stderrEP *endpoint
}

// DebugHook, when non-nil, is invoked with each stage's argv immediately
// before it is spawned. The CLI's --debug-commands flag wires this to
// echo commands to stderr; nil (the default) is a no-op.
var DebugHook func(argv []string)

// startPipeline spawns cmds chained stdout-to-stdin, wires stdin/stdout
// against the first/last stage and stderr against every stage, and returns
// once all of them are running. The caller must eventually call finish.
func startPipeline(dir string, cmds [][]string, stdin, stdout, stderr Stream) (*running, error) {
	if len(cmds) == 0 {
		panic("gitexec: empty pipeline")
	}

	here := cleanup.New()
	defer here.Destroy()
	later := cleanup.New()

	r := &running{dir: dir, commands: cmds, later: later}
	ok := false
	defer func() {
		if !ok {
			later.Destroy()
		}
	}()

	stdinIO, err := setupStdio(here, later, stdin, true)
	if err != nil {
		return nil, err
	}
	stdoutIO, err := setupStdio(here, later, stdout, false)
	if err != nil {
		return nil, err
	}
	// stderr is shared by every stage, mirroring a shell pipeline where
	// all stages inherit the same fd 2.
	stderrIO, err := setupStdio(here, later, stderr, false)
	if err != nil {
		return nil, err
	}
	r.stdoutEP = stdoutIO.ep
	r.stderrEP = stderrIO.ep

	active := []*endpoint{}
	if stdinIO.ep != nil {
		active = append(active, stdinIO.ep)
	}
	if stdoutIO.ep != nil {
		active = append(active, stdoutIO.ep)
	}
	if stderrIO.ep != nil {
		active = append(active, stderrIO.ep)
	}

	curIn := stdinIO.file
	for i, argv := range cmds {
		var curOut *os.File
		var nextIn *os.File
		if i == len(cmds)-1 {
			curOut = stdoutIO.file
		} else {
			pr, pw, perr := os.Pipe()
			if perr != nil {
				return nil, perr
			}
			// pw is only needed by this stage's child, pr only by the
			// next stage's child: once both children are forked the
			// parent's copies are redundant.
			here.Defer(func() { pw.Close() })
			here.Defer(func() { pr.Close() })
			curOut = pw
			nextIn = pr
		}

		if DebugHook != nil {
			DebugHook(argv)
		}
		cmd := exec.Command(argv[0], argv[1:]...)
		cmd.Dir = dir
		cmd.Stdin = curIn
		cmd.Stdout = curOut
		cmd.Stderr = stderrIO.file
		if err := cmd.Start(); err != nil {
			return nil, &ProcessFailure{Status: -1, Command: FormatCommand(argv)}
		}
		r.cmds = append(r.cmds, cmd)
		curIn = nextIn
	}

	r.active = active
	ok = true
	return r, nil
}

// finish drains every endpoint and waits for every process, returning the
// first non-zero exit as a *ProcessFailure while still reaping all of them.
func (r *running) finish() (stdout, stderr []byte, err error) {
	defer r.later.Destroy()

	pollErr := pollUntilDone(r.active)

	var first error
	for i, cmd := range r.cmds {
		werr := cmd.Wait()
		if werr == nil || first != nil {
			continue
		}
		status := -1
		if exitErr, ok := werr.(*exec.ExitError); ok {
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				if ws.Signaled() {
					status = -int(ws.Signal())
				} else {
					status = ws.ExitStatus()
				}
			}
		}
		first = &ProcessFailure{
			Status:  status,
			Command: FormatCommand(r.commands[i]),
			Stderr:  r.stderrData(),
		}
	}

	if pollErr != nil && first == nil {
		first = pollErr
	}
	return r.stdoutData(), r.stderrData(), first
}

func (r *running) stdoutData() []byte {
	if r.stdoutEP == nil {
		return nil
	}
	return r.stdoutEP.data
}

func (r *running) stderrData() []byte {
	if r.stderrEP == nil {
		return nil
	}
	return r.stderrEP.data
}

// Run executes a single command.
func Run(dir string, argv []string, stdin, stdout, stderr Stream) (stdoutData, stderrData []byte, err error) {
	return Pipeline(dir, [][]string{argv}, stdin, stdout, stderr)
}

// Pipeline runs cmds chained stdout-to-stdin (cmds[0] | cmds[1] | ...),
// feeding stdin into the first stage and collecting stdout from the last.
// stderr is shared by every stage.
func Pipeline(dir string, cmds [][]string, stdin, stdout, stderr Stream) (stdoutData, stderrData []byte, err error) {
	r, err := startPipeline(dir, cmds, stdin, stdout, stderr)
	if err != nil {
		return nil, nil, err
	}
	return r.finish()
}
