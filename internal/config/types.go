package config

// ScopeRule is the admission rule for one scope: which categories (or the
// wildcard "all") it permits, plus any custom types it grants regardless
// of the category/type grammar.
type ScopeRule struct {
	Categories     map[string]struct{}
	AdmitAll       bool
	AdditionalType map[string]struct{}
}

// Admits reports whether this scope permits the given category, either
// directly or via the "all" wildcard.
func (r ScopeRule) Admits(category string) bool {
	if r.AdmitAll {
		return true
	}
	_, ok := r.Categories[category]
	return ok
}

// EffectiveConfig is the frozen, merged configuration consumed read-only
// by every pipeline stage. Construct one with Resolve; never mutate a
// value returned from it.
type EffectiveConfig struct {
	RecognisedTypes   map[string]struct{}
	TypeAliases       map[string]string
	Categories        map[string][]string // category -> admissible types
	ScopeMatrix       map[string]ScopeRule
	ExplicitLocations map[string]string
	ProjectWideScopes map[string]struct{}
	DefaultDepth      int
	PerFileEntryCap   *int
}

// CanonicalType resolves a raw type token through TypeAliases and reports
// whether the result is recognised, either globally via RecognisedTypes or
// because scope's scope_matrix entry grants it as an additional type. scope
// may be empty, in which case only the global recognised-types set is
// consulted.
func (c *EffectiveConfig) CanonicalType(raw, scope string) (string, bool) {
	canon := raw
	if alias, ok := c.TypeAliases[raw]; ok {
		canon = alias
	}
	if _, ok := c.RecognisedTypes[canon]; ok {
		return canon, true
	}
	if scope != "" {
		if rule, ok := c.ScopeMatrix[scope]; ok {
			if _, ok := rule.AdditionalType[canon]; ok {
				return canon, true
			}
		}
	}
	return canon, false
}

// scopeRuleDoc is the on-disk shape of a scope_matrix entry, shared by
// both the TOML (global) and YAML (project) documents.
type scopeRuleDoc struct {
	Categories     []string `toml:"categories" yaml:"categories" mapstructure:"categories"`
	AdditionalType []string `toml:"additional_types" yaml:"additional_types" mapstructure:"additional_types"`
}

func (d scopeRuleDoc) toRule() ScopeRule {
	rule := ScopeRule{
		Categories:     map[string]struct{}{},
		AdditionalType: map[string]struct{}{},
	}
	for _, c := range d.Categories {
		if c == "all" {
			rule.AdmitAll = true
			continue
		}
		rule.Categories[c] = struct{}{}
	}
	for _, t := range d.AdditionalType {
		rule.AdditionalType[t] = struct{}{}
	}
	return rule
}

// document is the schema shared by both configuration sources. The global
// source is decoded with BurntSushi/toml, the project source with
// gopkg.in/yaml.v3; both land in this same struct so the merge logic in
// resolve.go only has to deal with one shape.
type document struct {
	AdditionalTypes   []string                `toml:"additional_types" yaml:"additional_types" mapstructure:"additional_types"`
	TypeAliases       map[string]string       `toml:"type_aliases" yaml:"type_aliases" mapstructure:"type_aliases"`
	Categories        map[string][]string     `toml:"categories" yaml:"categories" mapstructure:"categories"`
	ScopeMatrix       map[string]scopeRuleDoc `toml:"scope_matrix" yaml:"scope_matrix" mapstructure:"scope_matrix"`
	ExplicitLocations map[string]string       `toml:"explicit_locations" yaml:"explicit_locations" mapstructure:"explicit_locations"`
	ProjectWideScopes []string                `toml:"project_wide_scopes" yaml:"project_wide_scopes" mapstructure:"project_wide_scopes"`
	DefaultDepth      *int                    `toml:"default_depth" yaml:"default_depth" mapstructure:"default_depth"`
	PerFileEntryCap   *int                    `toml:"per_file_entry_cap" yaml:"per_file_entry_cap" mapstructure:"per_file_entry_cap"`
}
