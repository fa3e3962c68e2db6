// Copyright (C) 2016  Daniel Mueller <deso@posteo.net>
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

// Package argcomplete implements shell-completion for the CLI's flag and
// subcommand surface without depending on a full argument-parsing
// library: the CLI's own flag.FlagSet definitions are mirrored into a
// small Arguments tree once, and that tree is walked to answer "what
// words could come next" queries from --_complete.
package argcomplete

import "math"

// Unbounded is an argument count ceiling that is never actually reached,
// standing in for "as many values as the shell cares to supply".
const Unbounded = math.MaxInt

// Argument bounds how many values a keyword (or a positional slot)
// consumes: [Min, Max] inclusive, Max possibly Unbounded.
type Argument struct {
	Min, Max int
}

// decrement returns a copy of a with both bounds reduced by one, used
// while walking words already consumed by an open argument.
func (a Argument) decrement() Argument {
	return Argument{a.Min - 1, a.Max - 1}
}

// Arguments describes one (sub)command: its positional argument slots in
// declaration order, and its keyword arguments (flags and subcommand
// names) by name. A keyword's value is either an Argument (an ordinary
// flag, possibly consuming its own following values) or a nested
// Arguments (a subparser).
type Arguments struct {
	Positionals []Argument
	Keywords    map[string]interface{} // Argument | *Arguments
}

// NewArguments returns an empty Arguments ready to be populated.
func NewArguments() *Arguments {
	return &Arguments{Keywords: make(map[string]interface{})}
}

// AddPositional appends a positional argument slot.
func (a *Arguments) AddPositional(arg Argument) {
	a.Positionals = append(a.Positionals, arg)
}

// AddKeyword registers a flag's name against the number of values it
// consumes.
func (a *Arguments) AddKeyword(name string, arg Argument) {
	a.Keywords[name] = arg
}

// AddSubcommand registers name as a subparser and returns its (initially
// empty) Arguments for the caller to populate.
func (a *Arguments) AddSubcommand(name string) *Arguments {
	sub := NewArguments()
	a.Keywords[name] = sub
	return sub
}
