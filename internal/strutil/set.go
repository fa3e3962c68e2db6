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

// StrSet is a set of string.
type StrSet map[string]struct{}

func NewStrSet(vv ...string) StrSet {
	s := StrSet{}
	for _, v := range vv {
		s.Add(v)
	}
	return s
}

func (s StrSet) Add(v string) {
	s[v] = struct{}{}
}

func (s StrSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

// Elements returns all elements of the set as a slice, in unspecified order.
func (s StrSet) Elements() []string {
	ev := make([]string, 0, len(s))
	for e := range s {
		ev = append(ev, e)
	}
	return ev
}

// Union returns a new set containing the elements of both s and other.
func (s StrSet) Union(other StrSet) StrSet {
	out := StrSet{}
	for e := range s {
		out.Add(e)
	}
	for e := range other {
		out.Add(e)
	}
	return out
}

// Sub returns a new set containing the elements of s that are not in other.
func (s StrSet) Sub(other StrSet) StrSet {
	out := StrSet{}
	for e := range s {
		if !other.Contains(e) {
			out.Add(e)
		}
	}
	return out
}
