package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/log"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:     "warren",
	Version: core.WarrenVersion,
	Short:   "Compliance-aware marketing content for financial advisors",
	Long: `Warren assembles approved examples, required disclosures and session
context from the evidence library, then drafts marketing text through a
tiered generation cascade.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

func setupLogger(ctx context.Context) (context.Context, func()) {
	return log.NewContextWithLogger(ctx, debug || config.IsDebug())
}
