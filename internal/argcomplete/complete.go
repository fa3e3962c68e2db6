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

// Complete returns every keyword name of arguments (after walking words)
// that has toComplete as a prefix. words is every already-typed word
// preceding the one being completed; toComplete is the partial last word.
//
// Words are walked left-to-right. A word matching a known keyword name
// switches the current Arguments (if the keyword is a subparser) or opens
// a keyword-level positional run (if it's a plain Argument); keyword-level
// positionals take precedence over command-level ones. A word matching
// neither advances the command-level positional cursor instead. If no
// positional slot can absorb an unrecognized word, completion gives up
// and returns no candidates.
func Complete(arguments *Arguments, words []string, toComplete string) []string {
	current := arguments
	posIdx := 0
	pos := positionalAt(current, posIdx)
	key := Argument{}

	getPositional := func() Argument {
		return positionalAt(current, posIdx)
	}

	for _, word := range words {
		if val, ok := current.Keywords[word]; ok {
			key = Argument{}
			switch v := val.(type) {
			case *Arguments:
				current = v
				posIdx = 0
				pos = getPositional()
			case Arguments:
				current = &v
				posIdx = 0
				pos = getPositional()
			case Argument:
				key = v
			}
			continue
		}

		if key.Max > 0 {
			key = key.decrement()
			continue
		}
		if pos.Max > 0 {
			pos = pos.decrement()
			continue
		}

		found := false
		for i := posIdx + 1; i < len(current.Positionals); i++ {
			posIdx = i
			pos = getPositional()
			if pos.Max > 0 {
				pos = pos.decrement()
				found = true
				break
			}
		}
		if !found {
			return nil
		}
	}

	// An open keyword-level positional run suppresses keyword completion:
	// the shell still owes that keyword its remaining values.
	if key.Min > 0 {
		return nil
	}

	var candidates []string
	for name := range current.Keywords {
		if strings.HasPrefix(name, toComplete) {
			candidates = append(candidates, name)
		}
	}
	return candidates
}

func positionalAt(a *Arguments, idx int) Argument {
	if idx < len(a.Positionals) {
		return a.Positionals[idx]
	}
	return Argument{}
}
