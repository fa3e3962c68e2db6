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

import "strings"

// FormatCommand renders a single command as a space-joined string.
func FormatCommand(argv []string) string {
	return strings.Join(argv, " ")
}

// FormatPipeline renders a pipeline as " | "-joined command strings.
func FormatPipeline(cmds [][]string) string {
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = FormatCommand(c)
	}
	return strings.Join(parts, " | ")
}

// FormatSpring renders a spring (serial head commands feeding a trailing
// pipeline): the head is "(a + b + c)"-joined, the tail is " | "-joined,
// and the two halves are joined with " | " as well since the head's
// concatenated output is itself the tail's input.
func FormatSpring(head [][]string, tail [][]string) string {
	parts := make([]string, len(head))
	for i, c := range head {
		parts[i] = FormatCommand(c)
	}
	headStr := "(" + strings.Join(parts, " + ") + ")"
	if len(tail) == 0 {
		return headStr
	}
	return headStr + " | " + FormatPipeline(tail)
}
