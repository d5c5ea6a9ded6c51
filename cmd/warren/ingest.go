package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/warrenhq/warren/internal/core"
	"github.com/warrenhq/warren/internal/storage/sqlite"
	"github.com/warrenhq/warren/pkg/log"
)

var ingestFile string

// evidenceEntry is one item of the ingest file: a JSON array of approved
// examples and disclaimers. An empty category marks the entry as generic.
type evidenceEntry struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`
}

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load approved examples and disclaimers into the evidence library",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)

		data, err := os.ReadFile(ingestFile)
		if err != nil {
			return fmt.Errorf("failed to read evidence file: %w", err)
		}
		var entries []evidenceEntry
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to parse evidence file: %w", err)
		}

		deps, err := newIngestDeps(ctx)
		if err != nil {
			return err
		}
		defer deps.closeDB()

		inserted := 0
		for i, entry := range entries {
			if entry.Kind != core.KindExample && entry.Kind != core.KindDisclaimer {
				logger.Warn().Int("index", i).Str("kind", entry.Kind).Msg("skipping entry with unknown kind")
				continue
			}
			if strings.TrimSpace(entry.Body) == "" {
				logger.Warn().Int("index", i).Msg("skipping entry with empty body")
				continue
			}

			rec := sqlite.ContentRecord{
				ID:       uuid.NewString(),
				Title:    entry.Title,
				Body:     entry.Body,
				Kind:     entry.Kind,
				Category: entry.Category,
			}

			if deps.embedder != nil {
				vec, err := deps.embedder.Embed(ctx, embedText(entry))
				if err != nil {
					logger.Warn().Err(err).Str("title", entry.Title).Msg("failed to embed entry, storing without vector")
				} else {
					rec.Embedding = vec
				}
			}

			if err := deps.repo.Insert(ctx, rec); err != nil {
				return fmt.Errorf("failed to store entry %d: %w", i, err)
			}
			inserted++
		}

		logger.Info().Int("count", inserted).Int("total", len(entries)).Msg("evidence ingested")
		return nil
	},
}

// embedText folds the title into the embedded text so title-only matches
// still rank.
func embedText(entry evidenceEntry) string {
	if entry.Title == "" {
		return entry.Body
	}
	return entry.Title + "\n" + entry.Body
}

func init() {
	ingestCmd.Flags().StringVar(&ingestFile, "file", "", "JSON file with evidence entries (required)")
	_ = ingestCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(ingestCmd)
}
