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

package gitcmd

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/deso/git-subrepo/internal/gitexec"
)

var dummySeq int64

// dummyPatchName returns a basename unique to this process that is never
// created on disk — it only ever appears as a --exclude pattern and as
// the path named inside the synthetic patch text below.
func dummyPatchName() string {
	return fmt.Sprintf(".git-subrepo-safe-apply-%d-%d", os.Getpid(), atomic.AddInt64(&dummySeq, 1))
}

// dummyPatch renders a minimal valid "new empty file" patch for name. It
// parses as one hunk-less diff entry, which is all git apply needs to
// consider its input non-empty.
func dummyPatch(name string) string {
	return fmt.Sprintf("diff --git %s %s\nnew file mode 100644\nindex 000000..000000\n", name, name)
}

// SafeApplySpring runs patchHeads serially, with a synthetic no-op patch
// prepended, feeding the concatenation into "git apply --index", excluding
// the synthetic patch's path so it never touches the working tree. This
// guarantees git apply always sees non-empty input, even when patchHeads
// alone would produce zero hunks (re-importing the exact current state, or
// reverting nothing).
func (b *Builder) SafeApplySpring(patchHeads [][]string, stdout, stderr gitexec.Stream) ([]byte, []byte, error) {
	name := dummyPatchName()

	head := make([][]string, 0, len(patchHeads)+1)
	head = append(head, []string{"printf", "%s", dummyPatch(name)})
	for _, c := range patchHeads {
		head = append(head, b.Argv(c...))
	}

	tail := [][]string{b.Argv(ApplyArgv("--exclude=" + name)...)}

	return gitexec.Spring("", head, tail, stdout, stderr)
}
