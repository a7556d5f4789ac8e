// Package grammar implements the Commit Grammar Parser: it turns a raw
// commit message into a typed model.SemanticCommit or rejects it,
// validating the result against an EffectiveConfig.
package grammar

import (
	"strings"

	"github.com/synaptic-mem/synaptic/internal/config"
	"github.com/synaptic-mem/synaptic/internal/model"
)

// Parse attempts to parse raw's message against the SVCMS grammar. It
// returns (nil, warnings, false) when the commit is not semantic — an
// unrecognised header shape or an unrecognised type — which is the normal
// path for ordinary commits and is not itself a warning. Validation
// downgrades (two-tier reinterpreted as single-tier) and trailer
// anomalies do produce warnings.
func Parse(cfg *config.EffectiveConfig, raw model.RawCommit) (*model.SemanticCommit, []string, bool) {
	lines := strings.SplitN(raw.Message, "\n", 2)
	headerLine := strings.TrimSpace(lines[0])
	var rest string
	if len(lines) == 2 {
		rest = lines[1]
	}

	h, ok := parseHeader(headerLine)
	if !ok {
		return nil, nil, false
	}

	var warnings []string

	if h.TwoTier {
		if !validTwoTier(cfg, h) {
			warnings = append(warnings, "two-tier header \""+headerLine+"\" has an unpermitted category/scope pairing; reinterpreted as single-tier")
			h = header{Type: h.Type, Scope: h.Scope, Summary: h.Summary}
		}
	}

	canonType, known := cfg.CanonicalType(h.Type, h.Scope)
	if !known {
		return nil, warnings, false
	}

	body, trailers, trailerWarnings := splitTrailers(rest)
	warnings = append(warnings, trailerWarnings...)

	sc := &model.SemanticCommit{
		Identity: raw.Identity,
		Author:   raw.AuthorName,
		Date:     raw.AuthorDate,
		Type:     canonType,
		Scope:    h.Scope,
		Summary:  h.Summary,
		Body:     body,
		Context:  trailers.Context,
		Memory:   trailers.Memory,
		Location: trailers.Location,
		Refs:     trailers.Refs,
		Tags:     trailers.Tags,
	}
	if h.TwoTier {
		sc.Category = h.Category
	}

	return sc, warnings, true
}

// validTwoTier reports whether a two-tier header's category is admitted
// by configuration and, when a scope is present, whether the scope's
// matrix entry admits that category (or the "all" wildcard).
func validTwoTier(cfg *config.EffectiveConfig, h header) bool {
	if _, ok := cfg.Categories[h.Category]; !ok {
		return false
	}
	if h.Scope == "" {
		return true
	}
	rule, ok := cfg.ScopeMatrix[h.Scope]
	if !ok {
		// No explicit scope rule: a scope with no matrix entry places no
		// additional restriction on category admission.
		return true
	}
	return rule.Admits(h.Category)
}
