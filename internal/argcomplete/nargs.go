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

import "strconv"

// DecodeNargs turns an argparse-style nargs token into the (min, max)
// bounds it implies:
//
//	"?"        -> (0, 1)       zero or one value
//	"*"        -> (0, Unbounded) any number of values
//	"+"        -> (1, Unbounded) one or more values
//	"" (flag)  -> (0, 0)       action-only, consumes nothing
//	"3" etc.   -> (3, 3)       an exact count
func DecodeNargs(nargs string) Argument {
	switch nargs {
	case "*":
		return Argument{0, Unbounded}
	case "?":
		return Argument{0, 1}
	case "+":
		return Argument{1, Unbounded}
	case "":
		return Argument{0, 0}
	default:
		n, err := strconv.Atoi(nargs)
		if err != nil {
			// Not a recognized token: a plain store action, one value.
			return Argument{1, 1}
		}
		return Argument{n, n}
	}
}
