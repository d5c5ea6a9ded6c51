package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/pkg/conv"
	"github.com/warrenhq/warren/pkg/log"
	"github.com/warrenhq/warren/pkg/srv"
)

var (
	genPrompt    string
	genCategory  string
	genAudience  string
	genSession   string
	genType      string
	genDraftFile string
	genFormat    string
	genJSON      bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one piece of marketing content",
	Long: `Runs the full pipeline once: retrieve evidence, assemble the context
window, generate through the tier cascade and print the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		req := core.GenerationRequest{
			Prompt:    genPrompt,
			Category:  genCategory,
			Audience:  genAudience,
			SessionID: genSession,
			Type:      core.RequestType(genType),
		}
		if genDraftFile != "" {
			draft, err := os.ReadFile(genDraftFile)
			if err != nil {
				return fmt.Errorf("failed to read draft file: %w", err)
			}
			req.CurrentContent = string(draft)
		}

		p := newPipeline(ctx)
		srv.StartServices(ctx, p.services)

		result, genErr := p.orchestrator.GenerateContent(ctx, req)

		// Cancel the signal context so the drain below starts immediately.
		stop()
		srv.ShutdownServices(ctx, p.services)

		if genErr != nil {
			return genErr
		}

		logger.Info().
			Str("id", result.ID).
			Str("tier", string(result.Tier)).
			Str("strategy", string(result.SearchStrategy)).
			Bool("fallback", result.FallbackUsed).
			Bool("emergency", result.EmergencyFallback).
			Float64("quality", result.QualityScore).
			Msg("generation finished")

		out, err := renderOutput(result, genFormat, genJSON)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func renderOutput(result core.GenerationResult, format string, asJSON bool) (string, error) {
	if asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal result: %w", err)
		}
		return string(data), nil
	}

	switch format {
	case "md", "markdown":
		return result.Text, nil
	case "html":
		return conv.MarkdownToEmailHTML([]byte(result.Text)), nil
	case "text":
		return conv.MarkdownToPlainText([]byte(result.Text))
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

func init() {
	generateCmd.Flags().StringVarP(&genPrompt, "prompt", "p", "", "what to write (required)")
	generateCmd.Flags().StringVarP(&genCategory, "category", "c", "", "content category, e.g. newsletter or market_commentary (required)")
	generateCmd.Flags().StringVarP(&genAudience, "audience", "a", "", "target audience")
	generateCmd.Flags().StringVarP(&genSession, "session", "s", "", "session id for history and documents")
	generateCmd.Flags().StringVarP(&genType, "type", "t", string(core.RequestCreation), "request type: creation, refinement, analysis or conversation")
	generateCmd.Flags().StringVar(&genDraftFile, "draft-file", "", "file holding the draft to refine")
	generateCmd.Flags().StringVarP(&genFormat, "format", "f", "md", "output format: md, html or text")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "print the full result as JSON")

	_ = generateCmd.MarkFlagRequired("prompt")
	_ = generateCmd.MarkFlagRequired("category")

	rootCmd.AddCommand(generateCmd)
}
