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

// Package strutil groups small string/SHA1/path helpers shared across the
// subrepo engine.
package strutil

import (
	"encoding/hex"
	"fmt"
)

const SHA1RawSize = 20

// Sha1 is a git object id in raw (binary) form.
// NOTE zero value Sha1{} is the null sha1, never a valid commit id.
type Sha1 struct {
	b [SHA1RawSize]byte
}

var _ fmt.Stringer = Sha1{}

func (s Sha1) String() string {
	return hex.EncodeToString(s.b[:])
}

// Sha1Parse parses a 40-hex-digit string into a Sha1.
func Sha1Parse(s string) (Sha1, error) {
	sha1 := Sha1{}
	if hex.DecodedLen(len(s)) != SHA1RawSize {
		return Sha1{}, fmt.Errorf("sha1parse: %q invalid", s)
	}
	_, err := hex.Decode(sha1.b[:], Bytes(s))
	if err != nil {
		return Sha1{}, fmt.Errorf("sha1parse: %q invalid: %s", s, err)
	}
	return sha1, nil
}

// IsNull reports whether sha1 is the zero value (no commit).
func (s Sha1) IsNull() bool {
	return s == Sha1{}
}
