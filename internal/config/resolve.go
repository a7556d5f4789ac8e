package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Resolve merges a global (TOML) and a project (YAML) configuration
// source into a frozen EffectiveConfig. Either source may be empty, in
// which case it contributes nothing beyond the built-in defaults. Resolve
// is pure: the same two strings always produce the same EffectiveConfig
// and the same warning set.
//
// Parse failures are fatal (returned as an error naming the offending
// source). A scope_matrix entry admitting an unknown category degrades to
// a warning and that category is dropped from the scope's rule.
// type_aliases entries are merged without any check and never produce a
// warning.
func Resolve(globalSrc, projectSrc string) (*EffectiveConfig, []string, error) {
	var global document
	if globalSrc != "" {
		if _, err := toml.Decode(globalSrc, &global); err != nil {
			return nil, nil, fmt.Errorf("global config: %w", err)
		}
	}

	var project document
	if projectSrc != "" {
		if err := yaml.Unmarshal([]byte(projectSrc), &project); err != nil {
			return nil, nil, fmt.Errorf("project config: %w", err)
		}
	}

	var warnings []string
	cfg := &EffectiveConfig{
		RecognisedTypes:   newSet(builtinTypes),
		TypeAliases:       map[string]string{},
		Categories:        map[string][]string{},
		ScopeMatrix:       map[string]ScopeRule{},
		ExplicitLocations: map[string]string{},
		ProjectWideScopes: newSet(defaultProjectWideScopes),
		DefaultDepth:      defaultDepth,
	}

	for k, v := range builtinAliases {
		cfg.TypeAliases[k] = v
	}

	// recognised_types: union of builtin, global.additional, project.additional
	for _, t := range global.AdditionalTypes {
		cfg.RecognisedTypes[t] = struct{}{}
	}
	for _, t := range project.AdditionalTypes {
		cfg.RecognisedTypes[t] = struct{}{}
	}

	// type_aliases: union, project wins ties
	for k, v := range global.TypeAliases {
		cfg.TypeAliases[k] = v
	}
	for k, v := range project.TypeAliases {
		cfg.TypeAliases[k] = v
	}

	// categories: mapping merge, project keys replace global keys of the
	// same name
	for k, v := range global.Categories {
		cfg.Categories[k] = v
	}
	for k, v := range project.Categories {
		cfg.Categories[k] = v
	}

	// project_wide_scopes and default_depth/per_file_entry_cap: project
	// overrides global wholesale when present, global overrides the
	// built-in default when present.
	if len(global.ProjectWideScopes) > 0 {
		cfg.ProjectWideScopes = newSet(global.ProjectWideScopes)
	}
	if len(project.ProjectWideScopes) > 0 {
		cfg.ProjectWideScopes = newSet(project.ProjectWideScopes)
	}
	if global.DefaultDepth != nil {
		cfg.DefaultDepth = *global.DefaultDepth
	}
	if project.DefaultDepth != nil {
		cfg.DefaultDepth = *project.DefaultDepth
	}
	if global.PerFileEntryCap != nil {
		cfg.PerFileEntryCap = global.PerFileEntryCap
	}
	if project.PerFileEntryCap != nil {
		cfg.PerFileEntryCap = project.PerFileEntryCap
	}

	// explicit_locations: mapping merge, project keys replace global
	for k, v := range global.ExplicitLocations {
		cfg.ExplicitLocations[k] = v
	}
	for k, v := range project.ExplicitLocations {
		cfg.ExplicitLocations[k] = v
	}

	// scope_matrix: mapping merge, project keys replace global keys of the
	// same name; schema-checked against the merged categories below.
	merged := map[string]scopeRuleDoc{}
	for k, v := range global.ScopeMatrix {
		merged[k] = v
	}
	for k, v := range project.ScopeMatrix {
		merged[k] = v
	}
	for scope, doc := range merged {
		rule := doc.toRule()
		for cat := range rule.Categories {
			if cat == "all" {
				continue
			}
			if _, ok := cfg.Categories[cat]; !ok {
				warnings = append(warnings, fmt.Sprintf(
					"scope %q admits unknown category %q; rule dropped", scope, cat))
				delete(rule.Categories, cat)
			}
		}
		cfg.ScopeMatrix[scope] = rule
	}

	return cfg, warnings, nil
}
