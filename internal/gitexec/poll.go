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
	"strings"

	"golang.org/x/sys/unix"
)

// pipeBufSize mirrors PIPE_BUF: writes are chunked to at most this many
// bytes per poll cycle so a single write never blocks.
const pipeBufSize = 4096

// endpoint is one side of a data channel: the write side of stdin, or the
// read side of stdout/stderr, depending on write.
type endpoint struct {
	fd      int
	write   bool
	data    []byte
	closeFn func()
}

func eventString(events int16) string {
	names := []struct {
		bit  int16
		name string
	}{
		{unix.POLLERR, "ERR"},
		{unix.POLLHUP, "HUP"},
		{unix.POLLIN, "IN"},
		{unix.POLLNVAL, "NVAL"},
		{unix.POLLOUT, "OUT"},
		{unix.POLLPRI, "PRI"},
	}
	var parts []string
	for _, n := range names {
		if events&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// serviceWrite writes up to pipeBufSize bytes of ep.data. Returns done=true
// once all data has been written.
func serviceWrite(ep *endpoint) (done bool, err error) {
	n := len(ep.data)
	if n > pipeBufSize {
		n = pipeBufSize
	}
	for {
		wrote, werr := unix.Write(ep.fd, ep.data[:n])
		if werr == unix.EINTR {
			continue
		}
		if werr != nil {
			return true, &IOFailure{Err: werr}
		}
		ep.data = ep.data[wrote:]
		return len(ep.data) == 0, nil
	}
}

// serviceRead reads one chunk into ep.data. Returns eof=true on EOF.
func serviceRead(ep *endpoint) (eof bool, err error) {
	buf := make([]byte, 4*1024)
	for {
		n, rerr := unix.Read(ep.fd, buf)
		if rerr == unix.EINTR {
			continue
		}
		if rerr != nil {
			return true, &IOFailure{Err: rerr}
		}
		if n == 0 {
			return true, nil
		}
		ep.data = append(ep.data, buf[:n]...)
		return false, nil
	}
}

// pollOnce runs a single poll(2) cycle over active, services whatever is
// ready, and returns the endpoints that are still not done. A timeoutMs
// of -1 blocks until something is ready; 0 returns immediately if nothing
// is ready yet (used during a spring's non-blocking head phase).
func pollOnce(active []*endpoint, timeoutMs int) ([]*endpoint, error) {
	if len(active) == 0 {
		return active, nil
	}

	pfds := make([]unix.PollFd, len(active))
	for i, ep := range active {
		var events int16
		if ep.write {
			events = unix.POLLOUT
		} else {
			events = unix.POLLIN | unix.POLLPRI
		}
		pfds[i] = unix.PollFd{Fd: int32(ep.fd), Events: events}
	}

	for {
		_, err := unix.Poll(pfds, timeoutMs)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return active, &IOFailure{Err: err}
		}
		break
	}

	remaining := make([]*endpoint, 0, len(active))
	for i, pfd := range pfds {
		ep := active[i]
		revents := pfd.Revents
		if revents == 0 {
			remaining = append(remaining, ep)
			continue
		}
		if revents&(unix.POLLERR|unix.POLLNVAL) != 0 {
			return nil, &IOFailure{EventMask: eventString(revents)}
		}

		done := false
		var err error
		if ep.write {
			if revents&unix.POLLOUT != 0 {
				done, err = serviceWrite(ep)
			}
		} else if revents&(unix.POLLIN|unix.POLLPRI) != 0 {
			if revents&unix.POLLHUP != 0 {
				// Drain the buffer fully before closing: a HUP arriving
				// together with readable data must not truncate it.
				for {
					eof, rerr := serviceRead(ep)
					if rerr != nil {
						err = rerr
						break
					}
					if eof {
						done = true
						break
					}
				}
			} else {
				done, err = serviceRead(ep)
			}
		}
		if err != nil {
			return nil, err
		}
		if revents&unix.POLLHUP != 0 {
			done = true
		}

		if done {
			if ep.closeFn != nil {
				ep.closeFn()
			}
		} else {
			remaining = append(remaining, ep)
		}
	}
	return remaining, nil
}

// pollUntilDone blocks, alternating poll cycles, until every endpoint in
// active has completed.
func pollUntilDone(active []*endpoint) error {
	for len(active) > 0 {
		next, err := pollOnce(active, -1)
		if err != nil {
			return err
		}
		active = next
	}
	return nil
}
