// Package reconciler implements the Section Reconciler: given a target
// memory-file path and an ordered list of enriched memories, it locates
// or synthesises the "SVCMS Memories" section and merges in any entries
// not already present by commit hash, leaving every other byte of the
// file untouched.
package reconciler

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/synaptic-mem/synaptic/internal/model"
)

const (
	sectionMarker = "SVCMS Memories"
	byline        = "*Auto-maintained by synaptic. Entries below are keyed by commit hash; hand-written prose above them is preserved.*"
)

var (
	headingLine = regexp.MustCompile(`(?m)^##[ \t]+(.*)$`)
	entryHash   = regexp.MustCompile(`\(([0-9a-f]{7,8})\)(?:\s*\[[^\]]*\])?\s*$`)
)

// Result is the outcome of reconciling one target file.
type Result struct {
	NewContent       string
	Created          bool
	EntriesAdded     int
	EntriesSkipped   int
	Warnings         []string
	PostMergeEntries int
}

// Merge computes the new content for a target file given its current
// content (empty string if the file does not yet exist) and the ordered
// (chronological ascending by author date) slice of memories to merge
// in. It performs no I/O; callers are responsible for writing NewContent.
func Merge(path, existing string, entries []model.EnrichedMemory, entryCap *int) Result {
	created := existing == ""

	var pre, heading, body, post string
	if created {
		pre = "# Project Memory\n\nMaintained by synaptic; hand-edit freely outside the " + sectionMarker + " section.\n\n"
		heading, body, post = "## "+sectionMarker, "\n"+byline+"\n", ""
	} else {
		var ok bool
		pre, heading, body, post, ok = splitSection(existing)
		if !ok {
			// No valid section found: append a fresh one at end of file,
			// preserving exactly one blank line above it (§4.6 step 2,
			// and the malformed-section fallback of §4.6 failure semantics).
			pre = strings.TrimRight(existing, "\n") + "\n\n"
			heading = "## " + sectionMarker
			body = "\n" + byline + "\n"
			post = ""
		}
	}

	existingIdentities := collectIdentities(body)

	var added, skipped int
	var newLines []string
	for _, m := range entries {
		if _, dup := existingIdentities[m.Identity.Short]; dup {
			skipped++
			continue
		}
		existingIdentities[m.Identity.Short] = struct{}{}
		newLines = append(newLines, formatEntry(m))
		added++
	}

	if len(newLines) > 0 {
		// Insert after the last non-blank line, keeping any blank lines that
		// separated the section from what follows it.
		trimmed := strings.TrimRight(body, "\n")
		trailing := body[len(trimmed):]
		if trailing == "" {
			trailing = "\n"
		}
		body = trimmed + "\n" + strings.Join(newLines, "\n") + trailing
	} else if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}

	var warnings []string
	postCount := countEntries(body)
	if entryCap != nil && postCount > *entryCap {
		warnings = append(warnings, fmt.Sprintf("%s: post-merge entry count %d exceeds per_file_entry_cap %d", path, postCount, *entryCap))
	}

	full := pre + heading + "\n" + body + post

	return Result{
		NewContent:       full,
		Created:          created,
		EntriesAdded:     added,
		EntriesSkipped:   skipped,
		Warnings:         warnings,
		PostMergeEntries: postCount,
	}
}

// splitSection locates the memories section within content and returns
// (prefix, headingLineText, sectionBody, suffix, true). Prefix includes
// everything up to and including the blank line before the heading;
// suffix is everything from the next level-2 heading (or EOF) onward.
// ok is false if no matching heading is present.
func splitSection(content string) (prefix, heading, body, suffix string, ok bool) {
	matches := headingLine.FindAllStringSubmatchIndex(content, -1)
	for i, m := range matches {
		title := content[m[2]:m[3]]
		if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(title)), strings.ToLower(sectionMarker)) {
			continue
		}
		headStart, headEnd := m[0], m[1]
		bodyStart := headEnd
		if bodyStart < len(content) && content[bodyStart] == '\n' {
			bodyStart++
		}
		bodyEnd := len(content)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}
		return content[:headStart], content[headStart:headEnd], content[bodyStart:bodyEnd], content[bodyEnd:], true
	}
	return "", "", "", "", false
}

// collectIdentities scans body line-by-line for bullet lines matching the
// entry format and returns the set of short hashes already present.
func collectIdentities(body string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "- ") {
			continue
		}
		m := entryHash.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		set[m[1]] = struct{}{}
	}
	return set
}

// countEntries counts bullet lines in body that match the entry format.
func countEntries(body string) int {
	n := 0
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(strings.TrimSpace(line), "- ") {
			continue
		}
		if entryHash.MatchString(line) {
			n++
		}
	}
	return n
}

// formatEntry renders one memory as the exact bullet shape from §6:
//
//	- <memory text>: <type> `<header-line>` (<short-hash>) [<tag>, <tag>, …]
//
// The tag list (brackets and all) is omitted entirely when there are no
// tags.
func formatEntry(m model.EnrichedMemory) string {
	tagSuffix := ""
	if len(m.DisplayTags) > 0 {
		tagSuffix = " [" + strings.Join(m.DisplayTags, ", ") + "]"
	}
	return fmt.Sprintf("- %s: %s `%s` (%s)%s", m.Memory, m.Type, headerLineFor(m.SemanticCommit), m.Identity.Short, tagSuffix)
}

// headerLineFor reconstructs the original header line (without body or
// trailers) from a parsed SemanticCommit, satisfying the parser
// round-trip property for any valid header.
func headerLineFor(sc model.SemanticCommit) string {
	typeToken := sc.Type
	if sc.Category != "" {
		typeToken = sc.Category + "." + sc.Type
	}
	if sc.Scope != "" {
		return fmt.Sprintf("%s(%s): %s", typeToken, sc.Scope, sc.Summary)
	}
	return fmt.Sprintf("%s: %s", typeToken, sc.Summary)
}
