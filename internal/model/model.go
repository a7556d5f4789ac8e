// Package model holds the data types shared across the synaptic pipeline:
// raw commits from history, parsed semantic commits, and the enriched
// memories handed to the reconciler. Every stage of the pipeline depends
// on this package; it depends on nothing else in the module.
package model

import "time"

// CommitIdentity is a git commit hash. Full is used for identity
// comparisons; Short is the display projection (7-8 hex chars).
type CommitIdentity struct {
	Full  string
	Short string
}

// RawCommit is one entry yielded by the History Source, newest-first.
type RawCommit struct {
	Identity    CommitIdentity
	AuthorName  string
	AuthorDate  time.Time
	Message     string
	IsEmptyTree bool
}

// SemanticCommit is the outcome of successfully parsing a RawCommit's
// message against the SVCMS grammar.
type SemanticCommit struct {
	Identity CommitIdentity
	Author   string
	Date     time.Time

	Category string // empty for single-tier headers
	Type     string // canonical, post-alias, always present
	Scope    string // empty when the header carries no scope
	Summary  string

	Body string

	Context  string
	Memory   string
	Location string
	Refs     []string
	Tags     []string
}

// EnrichedMemory is a SemanticCommit known to carry a non-empty Memory
// trailer, plus the routing decision computed for it. Produced by the
// Memory Extractor, consumed by the Section Reconciler, never persisted.
type EnrichedMemory struct {
	SemanticCommit
	TargetPath  string
	DisplayTags []string
}

// SyncReport aggregates the outcome of one orchestrator run.
type SyncReport struct {
	CommitsSeen             int
	CommitsParsed           int
	MemoriesExtracted       int
	FilesCreated            int
	FilesUpdated            int
	EntriesAdded            int
	EntriesSkippedDuplicate int
	Warnings                []string
	Errors                  []string

	// DryRunPreviews holds, for dry-run invocations only, the post-merge
	// body that would have been written per target path.
	DryRunPreviews map[string]string
}
