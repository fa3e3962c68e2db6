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
	"reflect"
	"testing"
)

func TestStringBytes(t *testing.T) {
	s := "Hello"
	b := []byte(s)

	s1 := String(b)
	b1 := Bytes(s1)
	if s1 != s {
		t.Error("string -> []byte -> String != Identity")
	}
	if !reflect.DeepEqual(b1, b) {
		t.Error("[]byte -> String -> Bytes != Identity")
	}
	b[0] = 'I'
	if s != "Hello" {
		t.Error("string -> []byte not copied")
	}
	if s1 != "Iello" {
		t.Error("[]byte -> String not aliased")
	}
	if !reflect.DeepEqual(b1, b) {
		t.Error("string -> Bytes not aliased")
	}
}

func TestHeadtail(t *testing.T) {
	var tests = []struct {
		input, head, tail string
		ok                bool
	}{
		{"", "", "", false},
		{" ", "", "", true},
		{"  ", "", " ", true},
		{"hello world", "hello", "world", true},
		{"hello world 1", "hello", "world 1", true},
		{"hello  world 2", "hello", " world 2", true},
	}

	for _, tt := range tests {
		head, tail, err := Headtail(tt.input, " ")
		ok := err == nil
		if head != tt.head || tail != tt.tail || ok != tt.ok {
			t.Errorf("headtail(%q) -> %q %q %v  ; want %q %q %v", tt.input, head, tail, ok, tt.head, tt.tail, tt.ok)
		}
	}
}

func TestSha1Parse(t *testing.T) {
	const valid = "0123456789abcdef0123456789abcdef01234567"
	sha1, err := Sha1Parse(valid)
	if err != nil {
		t.Fatalf("Sha1Parse(%q): %s", valid, err)
	}
	if sha1.String() != valid {
		t.Errorf("roundtrip: got %q, want %q", sha1.String(), valid)
	}
	if sha1.IsNull() {
		t.Errorf("valid sha1 reported as null")
	}
	if !(Sha1{}).IsNull() {
		t.Errorf("zero value not reported as null")
	}

	for _, bad := range []string{"", "abc", valid[:39], valid + "0", "zz23456789abcdef0123456789abcdef0123456z"} {
		if _, err := Sha1Parse(bad); err == nil {
			t.Errorf("Sha1Parse(%q) unexpectedly succeeded", bad)
		}
	}
}

func TestStrSet(t *testing.T) {
	a := NewStrSet("x", "y")
	b := NewStrSet("y", "z")
	if got := a.Union(b).Elements(); len(got) != 3 {
		t.Errorf("Union -> %v, want 3 elements", got)
	}
	sub := a.Sub(b)
	if !sub.Contains("x") || sub.Contains("y") {
		t.Errorf("Sub -> %v, want {x}", sub)
	}
}
