package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/synaptic-mem/synaptic/internal/config"
	"github.com/synaptic-mem/synaptic/internal/git"
	"github.com/synaptic-mem/synaptic/internal/historysource"
	"github.com/synaptic-mem/synaptic/internal/notebook"
	"github.com/synaptic-mem/synaptic/internal/sync"
)

var (
	flagSince        string
	flagDepth        int
	flagDryRun       bool
	flagPrintConfig  bool
	flagSiblingNotes bool
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Walk history and reconcile SVCMS memories into CLAUDE.md files",
	Long: `sync walks the current repository's first-parent commit history,
parses each header against the configured SVCMS grammar, routes every
commit carrying a Memory trailer to its owning CLAUDE.md, and merges in
any entries not already present there.

Use --dry-run to see what would change without writing anything.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&flagSince, "since", "", "only consider commits at or after this time (RFC3339, YYYY-MM-DD, or natural language like \"2 weeks ago\")")
	syncCmd.Flags().IntVar(&flagDepth, "depth", 0, "maximum number of commits to walk (default: the resolved config's default_depth)")
	syncCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "compute the sync without writing any file")
	syncCmd.Flags().BoolVar(&flagPrintConfig, "print-config", false, "print the resolved effective configuration and exit")
	syncCmd.Flags().BoolVar(&flagSiblingNotes, "notes", false, "also render a per-commit note under .synaptic/notes/")
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, warnings, err := loadConfig()
	if err != nil {
		return fmt.Errorf("resolving configuration: %w", err)
	}
	for _, w := range warnings {
		logger.Warn("config", "warning", w)
		fmt.Fprintln(os.Stderr, "warning:", w)
	}

	if flagPrintConfig {
		return printEffectiveConfig(cmd.OutOrStdout(), cfg)
	}

	repoRoot, err := git.RepoRoot(cmd.Context(), ".")
	if err != nil {
		return fmt.Errorf("resolving repository root: %w", err)
	}

	since, err := historysource.ParseSince(flagSince)
	if err != nil {
		return err
	}

	var observer sync.Observer = notebook.Discard
	var writer *notebook.Writer
	if flagSiblingNotes {
		writer = notebook.NewWriter(repoRoot, logger)
		observer = writer
	}

	report, err := sync.Run(cmd.Context(), sync.Options{
		RepoRoot: repoRoot,
		Depth:    flagDepth,
		Since:    since,
		DryRun:   flagDryRun,
		Config:   cfg,
		Observer: observer,
	})
	if err != nil {
		return err
	}
	if writer != nil {
		writer.Wait()
	}

	logger.Info("sync complete",
		"commits_seen", report.CommitsSeen,
		"entries_added", report.EntriesAdded,
		"errors", len(report.Errors),
	)

	if err := printReport(cmd.OutOrStdout(), report, jsonOutput, flagDryRun); err != nil {
		return err
	}

	if len(report.Errors) > 0 {
		return errSyncHadErrors
	}
	return nil
}

// errSyncHadErrors is returned after the report has already been printed,
// so main's top-level error handler exits non-zero without printing the
// errors a second time.
var errSyncHadErrors = errReported{}

type errReported struct{}

func (errReported) Error() string { return "" }

// printEffectiveConfig renders the resolved configuration back out as
// YAML for --print-config, in a shape a user could drop straight into
// .synaptic/config.yaml.
func printEffectiveConfig(w io.Writer, cfg *config.EffectiveConfig) error {
	scopeMatrix := map[string]interface{}{}
	for scope, rule := range cfg.ScopeMatrix {
		cats := sortedKeys(rule.Categories)
		if rule.AdmitAll {
			cats = append(cats, "all")
		}
		scopeMatrix[scope] = map[string][]string{
			"categories":       cats,
			"additional_types": sortedKeys(rule.AdditionalType),
		}
	}

	doc := map[string]interface{}{
		"default_depth":       cfg.DefaultDepth,
		"project_wide_scopes": sortedKeys(cfg.ProjectWideScopes),
		"explicit_locations":  cfg.ExplicitLocations,
		"type_aliases":        cfg.TypeAliases,
		"categories":          cfg.Categories,
		"additional_types":    sortedKeys(cfg.RecognisedTypes),
		"scope_matrix":        scopeMatrix,
	}
	if cfg.PerFileEntryCap != nil {
		doc["per_file_entry_cap"] = *cfg.PerFileEntryCap
	}

	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(doc)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
