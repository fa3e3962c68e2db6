// Copyright (C) 2015-2016  Nexedi SA and Contributors.
//                          Kirill Smelkov <kirr@nexedi.com>
//
// This program is free software: you can Use, Study, Modify and Redistribute
// it under the terms of the GNU General Public License version 3, or (at your
// option) any later version, as published by the Free Software Foundation.
//
// This program is distributed WITHOUT ANY WARRANTY; without even the implied
// warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//
// See COPYING file for full licensing terms.

package strutil

import (
	"fmt"
	"strings"
	"unsafe"

	"lab.nexedi.com/kirr/go123/mem"
)

// String is a zero-copy conversion from []byte to string: the returned
// string aliases b's memory. Callers must not mutate b afterwards.
func String(b []byte) string {
	return mem.String(b)
}

// Bytes is a zero-copy conversion from string to []byte: the returned
// slice aliases s's memory. Callers must not mutate the result.
func Bytes(s string) []byte {
	if s == "" {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// Splitlines splits s by sep, dropping one trailing empty element (the
// artifact of a trailing separator) so that Splitlines("a\nb\n", "\n")
// is ["a", "b"], not ["a", "b", ""].
func Splitlines(s, sep string) []string {
	sv := strings.Split(s, sep)
	if l := len(sv); l > 0 && sv[l-1] == "" {
		sv = sv[:l-1]
	}
	return sv
}

// Headtail splits "head<sep>tail" into head, tail on the first occurrence
// of sep.
func Headtail(s, sep string) (head, tail string, err error) {
	parts := strings.SplitN(s, sep, 2)
	if len(parts) != 2 {
		return "", "", fmt.Errorf("headtail: %q has no %q", s, sep)
	}
	return parts[0], parts[1], nil
}
