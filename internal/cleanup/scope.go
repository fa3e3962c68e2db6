// Copyright (C) 2015  Daniel Mueller <deso@posteo.net>
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

// Package cleanup provides a LIFO stack of deferred actions that, unlike
// the built-in defer statement, supports releasing or running individual
// entries early. It exists so that file-descriptor lifetimes inside the
// process executor (internal/gitexec) can be split across a short-lived
// "here" scope (descriptors closed right after fork) and a long-lived
// "later" scope (descriptors that must stay open until polling completes),
// without hand-rolling two parallel defer chains at every call site.
package cleanup

// Scope is a LIFO stack of deferred actions.
type Scope struct {
	actions []*Handle
}

// New returns a fresh, empty Scope.
func New() *Scope {
	return &Scope{}
}

// Handle refers to one action registered with Defer. It can be run early
// or cancelled independently of the rest of the scope.
type Handle struct {
	fn func()
}

// RunNow runs the action immediately, if it hasn't run or been released
// yet. Idempotent: a second call is a no-op.
func (h *Handle) RunNow() {
	if h.fn != nil {
		fn := h.fn
		h.fn = nil
		fn()
	}
}

// Release cancels the action without running it.
func (h *Handle) Release() {
	h.fn = nil
}

// Defer registers fn to run on Scope.Destroy (or Handle.RunNow), in
// reverse order of registration relative to sibling actions. fn is
// expected never to fail; if it can fail, it should log and continue -
// cleanup actions never propagate failures through Destroy.
func (s *Scope) Defer(fn func()) *Handle {
	h := &Handle{fn: fn}
	s.actions = append(s.actions, h)
	return h
}

// ReleaseAll cancels every action registered so far without running any
// of them.
func (s *Scope) ReleaseAll() {
	s.actions = nil
}

// Destroy runs every action still registered, in reverse registration
// order, then empties the scope. Safe to call multiple times.
func (s *Scope) Destroy() {
	for i := len(s.actions) - 1; i >= 0; i-- {
		s.actions[i].RunNow()
	}
	s.actions = nil
}
