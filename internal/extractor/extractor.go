// Package extractor implements the Memory Extractor stage: it filters
// parsed commits down to those carrying a non-empty Memory trailer,
// normalises their tags, and asks the Router for a target path.
package extractor

import (
	"sort"
	"strings"

	"github.com/synaptic-mem/synaptic/internal/config"
	"github.com/synaptic-mem/synaptic/internal/model"
	"github.com/synaptic-mem/synaptic/internal/router"
)

// Extract converts SemanticCommits into EnrichedMemory values. A commit
// whose Memory trailer is empty (or empty after trimming) is silently
// skipped — not a warning, since the grammar permits memory-less carriers
// such as a plain feat commit.
func Extract(cfg *config.EffectiveConfig, commits []model.SemanticCommit) []model.EnrichedMemory {
	out := make([]model.EnrichedMemory, 0, len(commits))
	for _, sc := range commits {
		if strings.TrimSpace(sc.Memory) == "" {
			continue
		}
		out = append(out, model.EnrichedMemory{
			SemanticCommit: sc,
			TargetPath:     router.Route(cfg, sc.Location, sc.Scope),
			DisplayTags:    normaliseTags(sc.Tags),
		})
	}
	return out
}

// normaliseTags returns a lexicographically sorted, deduplicated,
// lowercase copy of tags.
func normaliseTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := map[string]struct{}{}
	var out []string
	for _, t := range tags {
		t = strings.ToLower(t)
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
