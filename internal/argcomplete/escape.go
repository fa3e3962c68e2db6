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

package argcomplete

import "strings"

// EscapeDoubleDash escapes every "--" token found at or after index in
// args, turning it into "\--" so that flag parsing downstream does not
// treat a to-be-completed "--" prefix as end-of-options. It is the
// inverse of UnescapeDoubleDash.
func EscapeDoubleDash(args []string, index int) []string {
	out := make([]string, len(args))
	copy(out, args[:index])
	for i := index; i < len(args); i++ {
		out[i] = strings.ReplaceAll(args[i], "--", `\--`)
	}
	return out
}

// UnescapeDoubleDash reverses EscapeDoubleDash.
func UnescapeDoubleDash(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = strings.ReplaceAll(a, `\--`, "--")
	}
	return out
}
