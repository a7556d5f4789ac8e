// Package router implements the Router stage: a pure function mapping a
// parsed commit's scope/location to the memory-file path it belongs in.
package router

import (
	"path"
	"strings"

	"github.com/synaptic-mem/synaptic/internal/config"
)

const memoryFileName = "CLAUDE.md"

// Route computes the target memory-file path for a commit's scope and
// location trailer, first-match-wins per §4.5. It is pure: the same
// (location, scope, cfg) triple always returns the same path.
func Route(cfg *config.EffectiveConfig, location, scope string) string {
	if location != "" {
		return canonicaliseLocation(location)
	}
	if scope == "" {
		return memoryFileName
	}
	if explicit, ok := cfg.ExplicitLocations[scope]; ok {
		return explicit
	}
	if _, ok := cfg.ProjectWideScopes[scope]; ok {
		return memoryFileName
	}
	return path.Join("src", scope, memoryFileName)
}

// canonicaliseLocation implements §4.5 step 1: strip a leading "./",
// preserve a leading "~/" verbatim, and append "/CLAUDE.md" if the value
// doesn't already end in it.
func canonicaliseLocation(location string) string {
	loc := location
	if strings.HasPrefix(loc, "./") {
		loc = strings.TrimPrefix(loc, "./")
	}

	if strings.HasSuffix(loc, memoryFileName) {
		return loc
	}

	loc = strings.TrimSuffix(loc, "/")
	if loc == "" {
		return memoryFileName
	}
	return loc + "/" + memoryFileName
}
