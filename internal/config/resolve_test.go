package config

import "testing"

func TestResolveDefaults(t *testing.T) {
	cfg, warnings, err := Resolve("", "")
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if _, ok := cfg.RecognisedTypes["feat"]; !ok {
		t.Error("builtin type feat missing")
	}
	if got, ok := cfg.CanonicalType("decided", ""); !ok || got != "decision" {
		t.Errorf("CanonicalType(decided) = (%q, %v), want (decision, true)", got, ok)
	}
	if cfg.DefaultDepth != defaultDepth {
		t.Errorf("DefaultDepth = %d, want %d", cfg.DefaultDepth, defaultDepth)
	}
	if _, ok := cfg.ProjectWideScopes["test"]; !ok {
		t.Error("default project-wide scope test missing")
	}
}

func TestResolveProjectOverridesGlobal(t *testing.T) {
	global := `
default_depth = 50
[type_aliases]
decided = "decision"
`
	project := `
default_depth: 10
type_aliases:
  decided: custom-decision
additional_types:
  - custom-decision
`
	cfg, _, err := Resolve(global, project)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if cfg.DefaultDepth != 10 {
		t.Errorf("DefaultDepth = %d, want 10 (project wins)", cfg.DefaultDepth)
	}
	if got := cfg.TypeAliases["decided"]; got != "custom-decision" {
		t.Errorf("TypeAliases[decided] = %q, want custom-decision", got)
	}
}

func TestResolveScopeMatrixDropsUnknownCategory(t *testing.T) {
	project := `
categories:
  knowledge:
    - learned
scope_matrix:
  auth:
    categories: [knowledge, ghost]
`
	cfg, warnings, err := Resolve("", project)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a schema warning for the unknown category")
	}
	rule := cfg.ScopeMatrix["auth"]
	if rule.Admits("ghost") {
		t.Error("scope should not admit the unknown category")
	}
	if !rule.Admits("knowledge") {
		t.Error("scope should still admit the known category")
	}
}

func TestScopeAdditionalTypeGrantsAdmissionOnlyForThatScope(t *testing.T) {
	project := `
scope_matrix:
  ops:
    additional_types: [incident]
`
	cfg, _, err := Resolve("", project)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if _, ok := cfg.RecognisedTypes["incident"]; ok {
		t.Fatal("incident must not be a globally recognised type")
	}
	if got, ok := cfg.CanonicalType("incident", "ops"); !ok || got != "incident" {
		t.Errorf("CanonicalType(incident, ops) = (%q, %v), want (incident, true)", got, ok)
	}
	if _, ok := cfg.CanonicalType("incident", "billing"); ok {
		t.Error("incident must not be admitted for a scope that didn't grant it")
	}
	if _, ok := cfg.CanonicalType("incident", ""); ok {
		t.Error("incident must not be admitted with no scope at all")
	}
}

func TestResolveSyntaxErrorIsFatal(t *testing.T) {
	if _, _, err := Resolve("not valid [[[ toml", ""); err == nil {
		t.Fatal("expected a parse error for malformed global config")
	}
	if _, _, err := Resolve("", "categories: [unterminated"); err == nil {
		t.Fatal("expected a parse error for malformed project config")
	}
}
