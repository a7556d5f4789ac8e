package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/synaptic-mem/synaptic/internal/config"
)

var (
	rootCtx = context.Background()

	cfgDir     string
	jsonOutput bool
	logFile    string

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "synaptic",
	Short: "Mine SVCMS commit grammar into per-scope project memory",
	Long: `synaptic walks a git repository's first-parent history, parses each
commit header against the SVCMS grammar, and reconciles any memories it
carries into the CLAUDE.md files that own their scope.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if logFile != "" {
			logger = slog.New(slog.NewJSONHandler(&lumberjack.Logger{
				Filename:   logFile,
				MaxSize:    10,
				MaxBackups: 3,
				MaxAge:     28,
			}, nil))
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(rootCtx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "directory to resolve .synaptic/config.yaml from (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the sync report as JSON")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log config warnings and a summary of each sync to a rotated log file")
}

func loadConfig() (*config.EffectiveConfig, []string, error) {
	dir := cfgDir
	if dir == "" {
		dir, _ = os.Getwd()
	}
	return config.Load(dir)
}
