package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/passage/internal/core/domain"
)

var (
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the indexed documents",
	Long: `Embeds the query, retrieves the most similar chunks from the vector
index and prints them grouped by document, together with a short
extractive summary assembled from the top results.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of chunks to retrieve (0 = default)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}

	result, err := queryService.Answer(cmd.Context(), args[0], queryTopK)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryJSON {
		return outputQueryJSON(cmd, result)
	}
	return outputQueryText(cmd, result)
}

func outputQueryJSON(cmd *cobra.Command, result *domain.QueryResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputQueryText(cmd *cobra.Command, result *domain.QueryResult) error {
	if len(result.Documents) == 0 {
		cmd.Println(result.Synthesis)
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	rank := 0
	for i := range result.Documents {
		group := &result.Documents[i]
		cmd.Printf("  %s (%s)\n", group.Document.Title, group.Document.Source)
		for _, hit := range group.Hits {
			rank++
			cmd.Printf("    [%d] (%.3f) %s\n", rank, hit.Score, snippet(hit.Chunk.Content))
		}
		cmd.Println()
	}

	cmd.Println(result.Synthesis)
	return nil
}

// snippet truncates chunk content for one-line display, cutting on a
// rune boundary so multi-byte characters are never split.
func snippet(content string) string {
	const maxLen = 120
	if len(content) <= maxLen {
		return content
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}
