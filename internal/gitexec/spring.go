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

package gitexec

import "os"

// Spring runs head's commands one after another, feeding the concatenation
// of their stdout into tail as a single pipeline, without ever holding the
// whole intermediate result in memory at once. This is the shape of, e.g.,
// "cat a.patch b.patch | git apply --index": a.patch and b.patch don't
// exist as files, they are themselves the output of earlier commands, and
// materializing their concatenation would defeat the purpose of streaming.
//
// The tail pipeline is started before the first head command so that the
// connecting pipe never fills up and deadlocks a head command that writes
// more than one pipe buffer's worth of output before tail has a chance to
// drain it. For the same reason the tail's parent-facing endpoints are
// serviced while the heads run (see runHead): a tail that produces more
// than a pipe buffer of output before the heads finish must not back up.
// Only once every head has been forked and reaped does polling revert to
// plain blocking, in tailRun.finish.
func Spring(dir string, head [][]string, tail [][]string, stdout, stderr Stream) (stdoutData, stderrData []byte, err error) {
	if len(head) == 0 {
		return Pipeline(dir, tail, Null(), stdout, stderr)
	}
	if len(tail) == 0 {
		panic("gitexec: spring with no tail")
	}

	pr, pw, perr := os.Pipe()
	if perr != nil {
		return nil, nil, perr
	}

	tailRun, err := startPipeline(dir, tail, FD(pr), stdout, stderr)
	// The tail's first stage has now dup'd pr for itself; the parent's
	// copy is only needed to keep the read end alive until then.
	pr.Close()
	if err != nil {
		pw.Close()
		return nil, nil, err
	}

	var headStderr []byte
	var headErr error
	for _, argv := range head {
		if headErr != nil {
			break
		}
		serr, rerr := runHead(dir, argv, pw, tailRun)
		headStderr = append(headStderr, serr...)
		if rerr != nil {
			headErr = rerr
		}
	}
	pw.Close()

	tailStdout, tailStderr, tailErr := tailRun.finish()
	combinedStderr := append(headStderr, tailStderr...)

	if headErr != nil {
		return tailStdout, combinedStderr, headErr
	}
	return tailStdout, combinedStderr, tailErr
}

// runHead forks one head command writing into out and reaps it, keeping
// the tail's parent-facing endpoints flowing the whole time: a tail that
// emits more than a pipe buffer of output would otherwise block on its
// stdout, stop consuming the connecting pipe, and deadlock the head.
// Right after the fork the tail is serviced with a non-blocking poll;
// the wait loop then polls head and tail endpoints together, so it wakes
// for whichever side has progress to make while the head is alive.
func runHead(dir string, argv []string, out *os.File, tailRun *running) (stderrData []byte, err error) {
	hr, err := startPipeline(dir, [][]string{argv}, Null(), FD(out), Bytes(nil))
	if err != nil {
		return nil, err
	}

	var pollErr error
	tailRun.active, pollErr = pollOnce(tailRun.active, 0)
	for pollErr == nil && len(hr.active) > 0 {
		merged := make([]*endpoint, 0, len(hr.active)+len(tailRun.active))
		merged = append(merged, hr.active...)
		merged = append(merged, tailRun.active...)
		remaining, perr := pollOnce(merged, -1)
		if perr != nil {
			pollErr = perr
			break
		}
		keep := make(map[*endpoint]bool, len(remaining))
		for _, ep := range remaining {
			keep[ep] = true
		}
		hr.active = filterActive(hr.active, keep)
		tailRun.active = filterActive(tailRun.active, keep)
	}

	// The head's own endpoints are drained (or abandoned on a poll
	// failure); finish only has reaping left to do.
	hr.active = nil
	_, stderrData, ferr := hr.finish()
	if ferr == nil {
		ferr = pollErr
	}
	return stderrData, ferr
}

func filterActive(eps []*endpoint, keep map[*endpoint]bool) []*endpoint {
	out := eps[:0]
	for _, ep := range eps {
		if keep[ep] {
			out = append(out, ep)
		}
	}
	return out
}
