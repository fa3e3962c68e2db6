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
	"bytes"
	"strings"
	"testing"
)

func TestRunCapturesStdout(t *testing.T) {
	out, _, err := Run("", []string{"echo", "-n", "hello"}, Null(), Bytes(nil), Bytes(nil))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if string(out) != "hello" {
		t.Fatalf("stdout = %q, want %q", out, "hello")
	}
}

func TestRunFeedsStdin(t *testing.T) {
	out, _, err := Run("", []string{"cat"}, Bytes([]byte("ping")), Bytes(nil), Bytes(nil))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if string(out) != "ping" {
		t.Fatalf("stdout = %q, want %q", out, "ping")
	}
}

func TestRunLargeStdinStdout(t *testing.T) {
	// Larger than a single pipe buffer so both the write and the read
	// side of the poll loop must cycle more than once.
	payload := bytes.Repeat([]byte("0123456789abcdef"), 1<<14) // 256 KiB
	out, _, err := Run("", []string{"cat"}, Bytes(payload), Bytes(nil), Bytes(nil))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("round-tripped payload mismatch: got %d bytes, want %d", len(out), len(payload))
	}
}

func TestRunCapturesStderr(t *testing.T) {
	_, errOut, err := Run("", []string{"sh", "-c", "echo oops >&2"}, Null(), Bytes(nil), Bytes(nil))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if strings.TrimSpace(string(errOut)) != "oops" {
		t.Fatalf("stderr = %q, want %q", errOut, "oops")
	}
}

func TestRunNonZeroExit(t *testing.T) {
	_, _, err := Run("", []string{"sh", "-c", "exit 3"}, Null(), Bytes(nil), Bytes(nil))
	pf, ok := err.(*ProcessFailure)
	if !ok {
		t.Fatalf("err = %v (%T), want *ProcessFailure", err, err)
	}
	if pf.Status != 3 {
		t.Fatalf("Status = %d, want 3", pf.Status)
	}
}

func TestPipelineChainsStages(t *testing.T) {
	out, _, err := Pipeline(
		"",
		[][]string{
			{"echo", "-n", "hello world"},
			{"tr", "a-z", "A-Z"},
		},
		Null(), Bytes(nil), Bytes(nil),
	)
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	if string(out) != "HELLO WORLD" {
		t.Fatalf("stdout = %q, want %q", out, "HELLO WORLD")
	}
}

func TestPipelineReportsFirstFailureButReapsAll(t *testing.T) {
	_, _, err := Pipeline(
		"",
		[][]string{
			{"sh", "-c", "echo hi; exit 5"},
			{"cat"},
		},
		Null(), Bytes(nil), Bytes(nil),
	)
	pf, ok := err.(*ProcessFailure)
	if !ok {
		t.Fatalf("err = %v (%T), want *ProcessFailure", err, err)
	}
	if pf.Status != 5 {
		t.Fatalf("Status = %d, want 5", pf.Status)
	}
}
