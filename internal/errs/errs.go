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

// Package errs implements Python-style exceptions on top of panic/recover.
//
// Engine code raises an error with Raise/Raiseif; a single Errcatch at the
// outer boundary (CLI dispatch, or a test's top-level defer) recovers it,
// prints a one-line diagnostic, and decides the exit code. Context is
// attached to an error as it propagates up the call stack via
// AddCallingContext, so a deeply nested failure still reads like a
// traceback of named steps instead of a bare git error.
package errs

import (
	"fmt"
	"runtime"
	"strings"
)

// Error is the payload every Raise/Raiseif panics with. It wraps an
// underlying cause (often a *gitexec.ProcessFailure, sometimes a plain
// error or a string) with a chain of calling contexts accumulated as the
// panic unwinds.
type Error struct {
	Cause   interface{}
	Context []string
}

func (e *Error) Error() string {
	msg := fmt.Sprint(e.Cause)
	if len(e.Context) == 0 {
		return msg
	}
	return strings.Join(e.Context, ": ") + ": " + msg
}

// Unwrap lets errors.Is/errors.As see through to the underlying cause
// when it is itself an error.
func (e *Error) Unwrap() error {
	if err, ok := e.Cause.(error); ok {
		return err
	}
	return nil
}

// Raise panics with info wrapped as *Error, unless info already is one.
func Raise(info interface{}) {
	if e, ok := info.(*Error); ok {
		panic(e)
	}
	panic(&Error{Cause: info})
}

// Raiseif raises err if it is non-nil. No-op otherwise.
func Raiseif(err error) {
	if err != nil {
		Raise(err)
	}
}

// AddCallingContext returns e with "while in <funcname>" appended to its
// context chain, used when re-reporting across a function boundary (the
// single errcatch at the CLI dispatch).
func AddCallingContext(funcname string, e *Error) *Error {
	e.Context = append(append([]string{}, e.Context...), "while in "+funcname)
	return e
}

// MyFuncName returns the name of the calling function, for use in
// `here := errs.MyFuncName()` + deferred errcatch idiom.
func MyFuncName() string {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		return "?"
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?"
	}
	return fn.Name()
}

// Errcatch recovers a panic raised via Raise/Raiseif and invokes handle
// with it. Panics that are not *Error are re-panicked untouched - only
// this package's own exception protocol is intercepted.
//
// Usage:
//
//	here := errs.MyFuncName()
//	defer errs.Errcatch(func(e *errs.Error) {
//	    e = errs.AddCallingContext(here, e)
//	    ...
//	})
func Errcatch(handle func(e *Error)) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(*Error)
	if !ok {
		panic(r)
	}
	handle(e)
}
