package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/warrenhq/warren/internal/config"
	"github.com/warrenhq/warren/pkg/env"
	"github.com/warrenhq/warren/pkg/log"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:          "init",
	Short:        "Create the runtime directory and pin the configuration",
	SilenceUsage: true,
	Long: `Creates the runtime directory and writes the resolved configuration to
its .env file, so later runs use the same settings regardless of the shell
environment. Existing files are kept unless --force is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		runtimePath := config.GetRuntimePath()
		if err := os.MkdirAll(runtimePath, 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}

		envPath := filepath.Join(runtimePath, ".env")
		if _, err := os.Stat(envPath); err == nil && !initForce {
			return fmt.Errorf(".env already exists at %s (use --force to rewrite)", envPath)
		}

		// Fold an existing file in first so --force re-pins rather than
		// resets.
		if err := initEnv(ctx, runtimePath); err != nil {
			return err
		}

		content, err := env.MarshalSections([]env.Section{
			{Name: "app", Config: config.NewAppConfig(ctx)},
			{Name: "search", Config: config.NewSearchConfig(ctx)},
			{Name: "llm", Config: config.NewLLMConfig(ctx)},
		})
		if err != nil {
			return err
		}

		// May hold API keys.
		if err := os.WriteFile(envPath, []byte(content+"\n"), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", envPath, err)
		}

		logger.Info().Str("path", envPath).Msg("configuration written")
		logger.Info().Msg("Runtime ready. Load evidence with 'warren ingest', then run 'warren generate'.")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "rewrite an existing .env")

	rootCmd.AddCommand(initCmd)
}
