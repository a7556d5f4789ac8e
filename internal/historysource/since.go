package historysource

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var sinceParser = newSinceParser()

func newSinceParser() *when.Parser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return w
}

// ParseSince converts a --since value into a time.Time. It accepts
// RFC3339 timestamps, bare dates (2006-01-02), and natural-language
// expressions ("2 weeks ago", "yesterday") via olebedev/when. An empty
// string yields the zero time (no lower bound).
func ParseSince(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t.UTC(), nil
	}
	res, err := sinceParser.Parse(raw, time.Now())
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --since %q: %w", raw, err)
	}
	if res == nil {
		return time.Time{}, fmt.Errorf("could not understand --since %q", raw)
	}
	return res.Time.UTC(), nil
}
