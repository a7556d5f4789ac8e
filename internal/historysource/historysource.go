// Package historysource implements the History Source stage: it walks a
// git repository's first-parent commit history newest-first and yields
// RawCommit values for the Commit Grammar Parser.
package historysource

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/synaptic-mem/synaptic/internal/git"
	"github.com/synaptic-mem/synaptic/internal/model"
)

// record/field separators chosen to avoid any byte a commit message is
// likely to contain; %B can legitimately contain tabs and newlines but
// not these C0 control points.
const (
	recordSep = "\x02"
	fieldSep  = "\x01"
	headerEnd = "\x03"
)

// Walk yields RawCommit values newest-first from repoRoot's first-parent
// history. limit <= 0 means unbounded (bounded only by since). A zero
// since means no lower bound. Walk tolerates a repository with no
// commits, returning an empty slice.
func Walk(ctx context.Context, repoRoot string, limit int, since time.Time) ([]model.RawCommit, error) {
	args := []string{
		"-C", repoRoot,
		"log", "--first-parent", "--name-only",
		"--pretty=format:" + recordSep + "%H" + fieldSep + "%an" + fieldSep + "%aI" + fieldSep + "%B" + headerEnd,
	}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	if !since.IsZero() {
		args = append(args, "--since="+since.Format(time.RFC3339))
	}

	out, err := git.Run(ctx, "", args...)
	if err != nil {
		if isEmptyRepo(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("walking history: %w", err)
	}

	return parseLog(out), nil
}

func isEmptyRepo(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "does not have any commits yet") ||
		strings.Contains(msg, "bad default revision")
}

func parseLog(out string) []model.RawCommit {
	var commits []model.RawCommit
	for _, rec := range strings.Split(out, recordSep) {
		if strings.TrimSpace(rec) == "" {
			continue
		}
		header, rest, ok := strings.Cut(rec, headerEnd)
		if !ok {
			continue
		}
		fields := strings.SplitN(header, fieldSep, 4)
		if len(fields) != 4 {
			continue
		}
		hash, author, dateStr, message := fields[0], fields[1], fields[2], fields[3]

		date, err := time.Parse(time.RFC3339, dateStr)
		if err != nil {
			date = time.Time{}
		}

		commits = append(commits, model.RawCommit{
			Identity:    identity(hash),
			AuthorName:  author,
			AuthorDate:  date.UTC(),
			Message:     strings.TrimRight(message, "\n"),
			IsEmptyTree: strings.TrimSpace(rest) == "",
		})
	}
	return commits
}

func identity(full string) model.CommitIdentity {
	short := full
	if len(short) > 8 {
		short = short[:8]
	}
	return model.CommitIdentity{Full: full, Short: short}
}
