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

package subrepo

import (
	"regexp"
	"sort"
	"strings"

	"github.com/deso/git-subrepo/internal/strutil"
)

// importRe and deleteRe implement the grammar from the commit-message
// grammar section verbatim:
//
//	IMPORT = "import subrepo " PREFIX ":" REPO " at " SHA40
//	DELETE = "delete subrepo " PREFIX ":" REPO
//	PREFIX = [^:\n]+
//	REPO   = [^ \n]+
//	SHA40  = [0-9a-f]{40}
var (
	importRe = regexp.MustCompile(`^import subrepo ([^:\n]+):([^ \n]+) at ([0-9a-f]{40})$`)
	deleteRe = regexp.MustCompile(`^delete subrepo ([^:\n]+):([^ \n]+)$`)
)

// Record is one parsed import or delete line.
type Record struct {
	Delete bool
	Identity
	Sha strutil.Sha1 // null for a delete record
}

func (r Record) String() string {
	if r.Delete {
		return "delete subrepo " + r.Prefix + ":" + r.Repo
	}
	return "import subrepo " + r.Prefix + ":" + r.Repo + " at " + r.Sha.String()
}

// ParseRecordLine matches a single line against IMPORT/DELETE and reports
// whether it is a record at all.
func ParseRecordLine(line string) (Record, bool) {
	if m := importRe.FindStringSubmatch(line); m != nil {
		sha1, err := strutil.Sha1Parse(m[3])
		if err != nil {
			return Record{}, false
		}
		return Record{Identity: Identity{Prefix: m[1], Repo: m[2]}, Sha: sha1}, true
	}
	if m := deleteRe.FindStringSubmatch(line); m != nil {
		return Record{Delete: true, Identity: Identity{Prefix: m[1], Repo: m[2]}}, true
	}
	return Record{}, false
}

// InvalidImportMessage is raised when a message starts a record block that
// isn't entirely made of valid records through to its end.
type InvalidImportMessage struct {
	Reason string
}

func (e *InvalidImportMessage) Error() string { return "invalid import message: " + e.Reason }

// ParseMessage extracts the record block from a commit message, enforcing
// the commit-message invariants: once the first record line is seen, every
// subsequent non-blank line through the end of the message must itself be
// a valid record. Returns nil, nil if the message carries no records at
// all (an ordinary commit).
func ParseMessage(msg string) ([]Record, error) {
	lines := strings.Split(msg, "\n")

	firstRecord := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if _, ok := ParseRecordLine(line); ok {
			firstRecord = i
			break
		}
		// The subject doesn't look like a record; the record block may
		// still start further down in the body, so keep scanning.
	}
	if firstRecord == -1 {
		return nil, nil
	}

	var records []Record
	for _, line := range lines[firstRecord:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, ok := ParseRecordLine(line)
		if !ok {
			return nil, &InvalidImportMessage{Reason: "non-record line after first record: " + line}
		}
		records = append(records, rec)
	}
	return records, nil
}

// CraftImportMessage builds the subject+body for an import commit: subject
// is the top-level import, body lists every transitive import sorted
// lexicographically by "prefix:repo", separated from the subject by a
// blank line.
func CraftImportMessage(subject Record, transitive []Record) string {
	return craftMessage(subject, transitive)
}

// CraftDeleteMessage builds the subject+body for a delete commit: subject
// is the top-level delete, body lists every dependent deletion sorted the
// same way.
func CraftDeleteMessage(subject Record, dependents []Record) string {
	return craftMessage(subject, dependents)
}

func craftMessage(subject Record, rest []Record) string {
	sorted := append([]Record(nil), rest...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Identity.String() < sorted[j].Identity.String()
	})

	var b strings.Builder
	b.WriteString(subject.String())
	if len(sorted) > 0 {
		b.WriteString("\n\n")
		for i, r := range sorted {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(r.String())
		}
	}
	return b.String()
}

// ReconstructMessage preserves prefix (the original subject and body text
// up to, but not including, the first record line) and re-emits a fresh
// record block built from subject and rest — used when amending a message
// whose import/delete records live in the body of an otherwise unrelated
// commit.
func ReconstructMessage(prefix string, subject Record, rest []Record) string {
	block := craftMessage(subject, rest)
	if prefix == "" {
		return block
	}
	prefix = strings.TrimRight(prefix, "\n")
	return prefix + "\n\n" + block
}
