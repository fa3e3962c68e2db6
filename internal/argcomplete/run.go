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

// Run implements the "--_complete <index> <argv0> <word>..." protocol.
// argv0 is the program name as the shell invoked it ($COMP_WORDS[0]); it
// plays no role in the walk itself (the program name is never a
// candidate-bearing word) and is accepted only for parity with the wire
// protocol. words is the remainder of $COMP_WORDS; index bounds how many
// of them are relevant (normally len(words), with the cursor sitting on
// the last one — index exists to guard against a shell passing a stale
// cursor position). The last relevant word is the one being completed;
// every word before it is walked to find the active Arguments scope.
//
// Run returns the completion candidates and whether any were found —
// callers print one candidate per line and exit 0 if found is true, 1
// otherwise.
func Run(arguments *Arguments, index int, argv0 string, words []string) (candidates []string, found bool) {
	_ = argv0

	words = UnescapeDoubleDash(words)
	if index < 0 {
		index = 0
	}
	if index > len(words) {
		index = len(words)
	}
	trimmed := words[:index]
	if len(trimmed) == 0 {
		return nil, false
	}

	toComplete := trimmed[len(trimmed)-1]
	prior := trimmed[:len(trimmed)-1]

	candidates = Complete(arguments, prior, toComplete)
	return candidates, len(candidates) > 0
}
