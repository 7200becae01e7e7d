package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage/internal/core/domain"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest documents into the store",
	Long: `Reads the given files, normalises them to plain text, chunks and
embeds them, and commits them to the document store and vector index.
Re-ingesting a file replaces the document ingested from it before.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	var raws []*domain.RawUpload
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		raws = append(raws, &domain.RawUpload{
			Filename: filepath.Base(path),
			Content:  content,
		})
	}

	summaries, errs := ingestService.IngestAll(cmd.Context(), raws)

	for i := range summaries {
		cmd.Printf("  %s\n", summaries[i].ID)
		cmd.Printf("    Title:  %s\n", summaries[i].Title)
		cmd.Printf("    Source: %s\n", summaries[i].Source)
		cmd.Printf("    Words:  %d\n", summaries[i].WordCount)
		cmd.Println()
	}
	for _, err := range errs {
		cmd.PrintErrf("Error: %v\n", err)
	}

	cmd.Printf("Ingested %d of %d documents.\n", len(summaries), len(args))

	if len(summaries) == 0 && len(errs) > 0 {
		return errs[0]
	}
	return nil
}
