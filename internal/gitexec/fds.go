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

import (
	"os"

	"github.com/deso/git-subrepo/internal/cleanup"
)

// stdio is one resolved std{in,out,err} connection for a child process: the
// file descriptor to hand to exec.Cmd, and, for a data-backed stream, the
// endpoint the poll loop drives on the parent's side.
type stdio struct {
	file *os.File
	ep   *endpoint
}

// setupStdio resolves a Stream into a file descriptor suitable for
// exec.Cmd and, for Bytes() streams, a poll endpoint plus cleanup wiring.
//
// here is closed right after the child has been forked (the descriptor
// handed to the child via dup2 keeps it alive there); later is closed once
// the poll loop has fully drained the stream. write is true for stdin
// (parent writes, child reads) and false for stdout/stderr.
func setupStdio(here, later *cleanup.Scope, s Stream, write bool) (stdio, error) {
	switch s.kind {
	case kindNull:
		f, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
		if err != nil {
			return stdio{}, err
		}
		here.Defer(func() { f.Close() })
		return stdio{file: f}, nil

	case kindFD:
		return stdio{file: s.file}, nil

	case kindData:
		r, w, err := os.Pipe()
		if err != nil {
			return stdio{}, err
		}
		if write {
			// Parent writes into w, child reads from r.
			here.Defer(func() { r.Close() })
			h := later.Defer(func() { w.Close() })
			ep := &endpoint{fd: int(w.Fd()), write: true, data: s.data, closeFn: h.RunNow}
			return stdio{file: r, ep: ep}, nil
		}
		// Parent reads from r, child writes into w.
		here.Defer(func() { w.Close() })
		h := later.Defer(func() { r.Close() })
		ep := &endpoint{fd: int(r.Fd()), write: false, data: append([]byte(nil), s.data...), closeFn: h.RunNow}
		return stdio{file: w, ep: ep}, nil

	default:
		panic("unhandled stream kind")
	}
}
