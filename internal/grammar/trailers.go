package grammar

import (
	"fmt"
	"regexp"
	"strings"
)

var trailerLine = regexp.MustCompile(`^([A-Za-z]+):[ \t]*(.*)$`)

var recognisedTrailerKeys = map[string]string{
	"context":  "Context",
	"refs":     "Refs",
	"memory":   "Memory",
	"location": "Location",
	"tags":     "Tags",
}

// attributionFooterPrefixes are bot/tool signature lines stripped from the
// body when they sit directly above the trailer block.
var attributionFooterPrefixes = []string{
	"signed-off-by:",
	"co-authored-by:",
	"generated-by:",
	"generated with",
}

type trailerSet struct {
	Context  string
	Refs     []string
	Memory   string
	Location string
	Tags     []string
}

// splitTrailers separates a commit message's post-header text into a body
// and a trailer set, per §4.3's reverse-scan algorithm: walk upward from
// the last non-blank line, collecting contiguous trailer lines; the first
// non-trailer line terminates the block. Attribution-footer lines
// (Signed-off-by, Co-Authored-By, and similar) are hyphenated and so never
// match the generic trailer shape, but they're tolerated as part of the
// same trailing block rather than treated as its terminator — otherwise a
// footer sitting directly below real trailers (the common `git commit -s`
// shape) would abort the scan before reaching them.
func splitTrailers(rest string) (string, trailerSet, []string) {
	lines := strings.Split(rest, "\n")

	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}

	start := end
	seen := map[string]int{} // canonical key -> index into collected; marks keys already taken
	type kv struct{ key, value string }
	var collected []kv
	var warnings []string

	for start > 0 {
		line := lines[start-1]
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			break
		}
		if isAttributionFooter(strings.ToLower(trimmed)) {
			start--
			continue
		}
		m := trailerLine.FindStringSubmatch(line)
		if m == nil {
			break
		}
		canon, ok := recognisedTrailerKeys[strings.ToLower(m[1])]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("unknown trailer key %q ignored", m[1]))
			start--
			continue
		}
		if _, dup := seen[canon]; dup {
			// Scanning bottom-up, the occurrence already collected is the
			// later one in the message, so it is kept.
			warnings = append(warnings, fmt.Sprintf("duplicate trailer %q; later occurrence wins", canon))
		} else {
			seen[canon] = len(collected)
			collected = append(collected, kv{canon, strings.TrimSpace(m[2])})
		}
		start--
	}

	var set trailerSet
	for _, e := range collected {
		switch e.key {
		case "Context":
			set.Context = e.value
		case "Memory":
			set.Memory = e.value
		case "Location":
			set.Location = e.value
		case "Refs":
			set.Refs = splitAndTrim(e.value, false)
		case "Tags":
			set.Tags = splitAndTrim(e.value, true)
		}
	}

	body := strings.Join(lines[:start], "\n")
	body = stripAttributionFooter(body)
	body = strings.TrimSpace(body)

	return body, set, warnings
}

func splitAndTrim(value string, lower bool) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if lower {
			p = strings.ToLower(p)
		}
		out = append(out, p)
	}
	return out
}

// isAttributionFooter reports whether a trimmed, lowercased line looks
// like a bot/tool signature (Signed-off-by, Co-Authored-By, and similar).
func isAttributionFooter(trimmedLower string) bool {
	for _, prefix := range attributionFooterPrefixes {
		if strings.HasPrefix(trimmedLower, prefix) {
			return true
		}
	}
	return false
}

// stripAttributionFooter removes a trailing bot/tool signature line that
// sits directly above the trailer block, so it doesn't pollute the stored
// body prose. Acts as a safety net for footers the reverse scan in
// splitTrailers didn't reach (e.g. one glued directly to body prose with
// no trailers at all above it).
func stripAttributionFooter(body string) string {
	lines := strings.Split(body, "\n")
	end := len(lines)
	for end > 0 {
		candidate := strings.TrimSpace(lines[end-1])
		if candidate == "" {
			end--
			continue
		}
		if !isAttributionFooter(strings.ToLower(candidate)) {
			break
		}
		end--
	}
	return strings.Join(lines[:end], "\n")
}
