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

type streamKind int

const (
	kindNull streamKind = iota
	kindFD
	kindData
)

// Stream describes one of a command's stdin/stdout/stderr connections.
// The zero value is Null(): redirected to /dev/null.
type Stream struct {
	kind streamKind
	file *os.File
	data []byte
}

// Null redirects the stream to /dev/null. This is the zero value.
func Null() Stream {
	return Stream{kind: kindNull}
}

// FD borrows an already-open file descriptor for the stream. The caller
// retains ownership; gitexec never closes it.
func FD(f *os.File) Stream {
	return Stream{kind: kindFD, file: f}
}

// Bytes uses a byte buffer for the stream: for stdin, data is written to
// the child; for stdout/stderr, data is the initial buffer content and
// everything the child writes is appended to it.
func Bytes(data []byte) Stream {
	return Stream{kind: kindData, data: data}
}
