// Package sync implements the Sync Orchestrator: it composes the History
// Source, Commit Grammar Parser, Memory Extractor, Router, and Section
// Reconciler into one run, groups enriched memories by target path,
// honours dry-run, and isolates per-target failures so one bad file
// never aborts the rest of the sync.
package sync

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/synaptic-mem/synaptic/internal/config"
	"github.com/synaptic-mem/synaptic/internal/extractor"
	"github.com/synaptic-mem/synaptic/internal/grammar"
	"github.com/synaptic-mem/synaptic/internal/historysource"
	"github.com/synaptic-mem/synaptic/internal/model"
	"github.com/synaptic-mem/synaptic/internal/reconciler"
)

// Observer is the sibling rendering sink referenced in §6: an optional
// collaborator that sees the same EnrichedMemory values the reconciler
// does, in the same order, invoked after the reconciler has durably
// placed each target's entries so an observer failure can never affect
// primary memory placement.
type Observer interface {
	Observe(target string, entries []model.EnrichedMemory)
}

// Options configures one Run.
type Options struct {
	RepoRoot string
	Depth    int       // <=0 means unbounded
	Since    time.Time // zero means unbounded
	DryRun   bool
	Config   *config.EffectiveConfig
	Observer Observer // may be nil
}

// Run executes one sync: walk history, parse, extract, route, group, and
// reconcile, returning an aggregate report. It never returns an error for
// per-target reconciliation failures — those land in Report.Errors so the
// rest of the run completes; it returns an error only when an earlier,
// whole-run stage (history walk) fails outright.
func Run(ctx context.Context, opts Options) (*model.SyncReport, error) {
	cfg := opts.Config

	depth := opts.Depth
	if depth <= 0 {
		depth = cfg.DefaultDepth
	}

	raws, err := historysource.Walk(ctx, opts.RepoRoot, depth, opts.Since)
	if err != nil {
		return nil, fmt.Errorf("walking history: %w", err)
	}

	report := &model.SyncReport{CommitsSeen: len(raws)}
	if opts.DryRun {
		report.DryRunPreviews = map[string]string{}
	}

	var semantic []model.SemanticCommit
	for _, raw := range raws {
		sc, warnings, ok := grammar.Parse(cfg, raw)
		report.Warnings = append(report.Warnings, warnings...)
		if !ok {
			continue
		}
		semantic = append(semantic, *sc)
		report.CommitsParsed++
	}

	memories := extractor.Extract(cfg, semantic)
	report.MemoriesExtracted = len(memories)

	byTarget := groupByTarget(memories)

	targets := make([]string, 0, len(byTarget))
	for t := range byTarget {
		targets = append(targets, t)
	}
	sort.Strings(targets)

	for _, target := range targets {
		entries := byTarget[target]

		var result reconciler.Result
		var err error
		if opts.DryRun {
			result, err = reconciler.Preview(opts.RepoRoot, target, entries, cfg.PerFileEntryCap)
		} else {
			result, err = reconciler.Write(opts.RepoRoot, target, entries, cfg.PerFileEntryCap)
		}
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", target, err))
			continue
		}

		if opts.DryRun {
			report.DryRunPreviews[target] = result.NewContent
		} else {
			if result.Created {
				report.FilesCreated++
			} else if result.EntriesAdded > 0 {
				report.FilesUpdated++
			}
			if opts.Observer != nil {
				opts.Observer.Observe(target, entries)
			}
		}

		report.EntriesAdded += result.EntriesAdded
		report.EntriesSkippedDuplicate += result.EntriesSkipped
		report.Warnings = append(report.Warnings, result.Warnings...)
	}

	return report, nil
}

// groupByTarget partitions memories by TargetPath, sorting each group
// ascending by author date per §4.7's "sorted ascending by author-date"
// requirement on the entries handed to each Reconciler invocation.
func groupByTarget(memories []model.EnrichedMemory) map[string][]model.EnrichedMemory {
	out := map[string][]model.EnrichedMemory{}
	for _, m := range memories {
		out[m.TargetPath] = append(out[m.TargetPath], m)
	}
	for target, group := range out {
		group := group
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})
		out[target] = group
	}
	return out
}
