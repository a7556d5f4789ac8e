package grammar

import "regexp"

const identFragment = `[a-z][a-z0-9_-]*`

var (
	scopePattern = identFragment + `(?:/` + identFragment + `)*`

	twoTierHeader = regexp.MustCompile(
		`^(` + identFragment + `)\.(` + identFragment + `)(?:\((` + scopePattern + `)\))?:[ \t]*(.+)$`)

	singleTierHeader = regexp.MustCompile(
		`^(` + identFragment + `)(?:\((` + scopePattern + `)\))?:[ \t]*(.+)$`)
)

// header is the raw result of matching the header line against one of the
// two SVCMS grammars, before alias/membership validation.
type header struct {
	TwoTier  bool
	Category string
	Type     string
	Scope    string
	Summary  string
}

// parseHeader matches line against the two-tier grammar first, then the
// single-tier grammar, per §4.3. Returns ok=false if neither matches or
// the summary is empty.
func parseHeader(line string) (header, bool) {
	if m := twoTierHeader.FindStringSubmatch(line); m != nil {
		if m[4] == "" {
			return header{}, false
		}
		return header{TwoTier: true, Category: m[1], Type: m[2], Scope: m[3], Summary: m[4]}, true
	}
	if m := singleTierHeader.FindStringSubmatch(line); m != nil {
		if m[3] == "" {
			return header{}, false
		}
		return header{Type: m[1], Scope: m[2], Summary: m[3]}, true
	}
	return header{}, false
}
