package config

// builtinTypes is the SVCMS grammar's baseline set of recognised type
// tokens, always present regardless of configuration.
var builtinTypes = []string{
	"feat", "fix", "decision", "learned", "chore",
	"test", "build", "docs", "refactor", "perf", "revert",
}

// builtinAliases canonicalises a handful of alternate spellings that show
// up in practice (past tense, synonyms) onto a builtin type.
var builtinAliases = map[string]string{
	"decided":    "decision",
	"learn":      "learned",
	"discovered": "learned",
}

// defaultProjectWideScopes route to the repository-root memory file
// unless overridden by configuration.
var defaultProjectWideScopes = []string{
	"test", "build", "chore", "project", "global", "architecture", "config",
}

// defaultDepth is the number of commits walked when neither configuration
// nor a CLI flag specifies one.
const defaultDepth = 200

func newSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
